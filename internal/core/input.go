package core

// FormInput carries the raw values of the multi-step statement form, one
// typed section per step. Fields hold the numeric strings exactly as the
// user entered them; coercion happens inside the aggregators. The engine
// treats a FormInput as immutable.
//
// Cost-to-earn toggle settings travel separately in C2ESettings instead of
// being attached to the form data, so the input is never mutated as a side
// channel.
type FormInput struct {
	Income     IncomeSection     `json:"income"`
	Deductions DeductionsSection `json:"deductions"`
	Needs      NeedsSection      `json:"needs"`
	Savings    SavingsSection    `json:"savings"`
	Wants      WantsSection      `json:"wants"`
	Annual     AnnualSection     `json:"annual"`
	CostToEarn C2ESection        `json:"costToEarn"`
}

// IncomeSection lists every gross revenue line item.
type IncomeSection struct {
	PrimaryIncome    string `json:"primaryIncome"`
	SecondaryIncome  string `json:"secondaryIncome"`
	FreelanceIncome  string `json:"freelanceIncome"`
	BusinessIncome   string `json:"businessIncome"`
	RentalIncome     string `json:"rentalIncome"`
	InvestmentIncome string `json:"investmentIncome"`
	PensionIncome    string `json:"pensionIncome"`
	BenefitsIncome   string `json:"benefitsIncome"`
	OtherIncome      string `json:"otherIncome"`
}

// DeductionsSection lists pre-tax payroll deductions.
type DeductionsSection struct {
	FederalIncomeTax        string `json:"federalIncomeTax"`
	StateIncomeTax          string `json:"stateIncomeTax"`
	SocialSecurityTax       string `json:"socialSecurityTax"`
	MedicareTax             string `json:"medicareTax"`
	RetirementContributions string `json:"retirementContributions"`
	HealthInsurancePremiums string `json:"healthInsurancePremiums"`
	LifeInsurancePremiums   string `json:"lifeInsurancePremiums"`
	HSAContributions        string `json:"hsaContributions"`
	OtherDeductions         string `json:"otherDeductions"`
}

// NeedsSection lists essential monthly expenses.
type NeedsSection struct {
	HousingExpenses         string `json:"housingExpenses"`
	UtilitiesExpenses       string `json:"utilitiesExpenses"`
	GroceriesExpenses       string `json:"groceriesExpenses"`
	TransportationExpenses  string `json:"transportationExpenses"`
	HealthcareExpenses      string `json:"healthcareExpenses"`
	ChildcareExpenses       string `json:"childcareExpenses"`
	MinimumDebtPayments     string `json:"minimumDebtPayments"`
	InsuranceExpenses       string `json:"insuranceExpenses"`
	ProfessionalDevelopment string `json:"professionalDevelopment"`
	OtherEssentialExpenses  string `json:"otherEssentialExpenses"`
}

// SavingsSection lists savings and investment contributions.
type SavingsSection struct {
	EmergencyFund           string `json:"emergencyFund"`
	RetirementSavings       string `json:"retirementSavings"`
	InvestmentContributions string `json:"investmentContributions"`
	EducationSavings        string `json:"educationSavings"`
	DebtRepayment           string `json:"debtRepayment"`
	OtherSavings            string `json:"otherSavings"`
}

// WantsSection lists discretionary monthly expenses.
type WantsSection struct {
	EntertainmentExpenses      string `json:"entertainmentExpenses"`
	DiningOutExpenses          string `json:"diningOutExpenses"`
	ShoppingExpenses           string `json:"shoppingExpenses"`
	TravelExpenses             string `json:"travelExpenses"`
	SubscriptionsExpenses      string `json:"subscriptionsExpenses"`
	HobbiesExpenses            string `json:"hobbiesExpenses"`
	PersonalCareExpenses       string `json:"personalCareExpenses"`
	GiftsExpenses              string `json:"giftsExpenses"`
	OtherDiscretionaryExpenses string `json:"otherDiscretionaryExpenses"`
}

// AnnualSection lists once-a-year expenses entered as annual totals.
// The aggregator amortizes them to a monthly set-aside.
type AnnualSection struct {
	AnnualInsurancePremiums string `json:"annualInsurancePremiums"`
	AnnualPropertyTaxes     string `json:"annualPropertyTaxes"`
	AnnualVehicleExpenses   string `json:"annualVehicleExpenses"`
	AnnualHomeMaintenance   string `json:"annualHomeMaintenance"`
	AnnualMedicalExpenses   string `json:"annualMedicalExpenses"`
	AnnualLicensesFees      string `json:"annualLicensesFees"`
	HolidayGiftsBudget      string `json:"holidayGiftsBudget"`
	VacationBudget          string `json:"vacationBudget"`
	OtherAnnualExpenses     string `json:"otherAnnualExpenses"`
}

// C2ESection lists expenses the user enters directly as cost-to-earn
// amounts. These count at 100%, unlike the toggle-eligible needs fields.
type C2ESection struct {
	CommutingCosts     string `json:"commutingCosts"`
	WorkTechnology     string `json:"workTechnology"`
	DependentCare      string `json:"dependentCare"`
	WorkFromHomeCosts  string `json:"workFromHomeCosts"`
	WorkAttire         string `json:"workAttire"`
	WorkMeals          string `json:"workMeals"`
	LicensingEducation string `json:"licensingEducation"`
	WorkHealth         string `json:"workHealth"`
	WorkRelatedDebt    string `json:"workRelatedDebt"`
}

// lineItem pairs a field name with its raw form value. Aggregators walk
// these ordered lists instead of reaching into the form by string key.
type lineItem struct {
	name string
	raw  string
}

func (s IncomeSection) items() []lineItem {
	return []lineItem{
		{"primaryIncome", s.PrimaryIncome},
		{"secondaryIncome", s.SecondaryIncome},
		{"freelanceIncome", s.FreelanceIncome},
		{"businessIncome", s.BusinessIncome},
		{"rentalIncome", s.RentalIncome},
		{"investmentIncome", s.InvestmentIncome},
		{"pensionIncome", s.PensionIncome},
		{"benefitsIncome", s.BenefitsIncome},
		{"otherIncome", s.OtherIncome},
	}
}

func (s DeductionsSection) items() []lineItem {
	return []lineItem{
		{"federalIncomeTax", s.FederalIncomeTax},
		{"stateIncomeTax", s.StateIncomeTax},
		{"socialSecurityTax", s.SocialSecurityTax},
		{"medicareTax", s.MedicareTax},
		{"retirementContributions", s.RetirementContributions},
		{"healthInsurancePremiums", s.HealthInsurancePremiums},
		{"lifeInsurancePremiums", s.LifeInsurancePremiums},
		{"hsaContributions", s.HSAContributions},
		{"otherDeductions", s.OtherDeductions},
	}
}

func (s NeedsSection) items() []lineItem {
	return []lineItem{
		{"housingExpenses", s.HousingExpenses},
		{"utilitiesExpenses", s.UtilitiesExpenses},
		{"groceriesExpenses", s.GroceriesExpenses},
		{"transportationExpenses", s.TransportationExpenses},
		{"healthcareExpenses", s.HealthcareExpenses},
		{"childcareExpenses", s.ChildcareExpenses},
		{"minimumDebtPayments", s.MinimumDebtPayments},
		{"insuranceExpenses", s.InsuranceExpenses},
		{"professionalDevelopment", s.ProfessionalDevelopment},
		{"otherEssentialExpenses", s.OtherEssentialExpenses},
	}
}

func (s SavingsSection) items() []lineItem {
	return []lineItem{
		{"emergencyFund", s.EmergencyFund},
		{"retirementSavings", s.RetirementSavings},
		{"investmentContributions", s.InvestmentContributions},
		{"educationSavings", s.EducationSavings},
		{"debtRepayment", s.DebtRepayment},
		{"otherSavings", s.OtherSavings},
	}
}

func (s WantsSection) items() []lineItem {
	return []lineItem{
		{"entertainmentExpenses", s.EntertainmentExpenses},
		{"diningOutExpenses", s.DiningOutExpenses},
		{"shoppingExpenses", s.ShoppingExpenses},
		{"travelExpenses", s.TravelExpenses},
		{"subscriptionsExpenses", s.SubscriptionsExpenses},
		{"hobbiesExpenses", s.HobbiesExpenses},
		{"personalCareExpenses", s.PersonalCareExpenses},
		{"giftsExpenses", s.GiftsExpenses},
		{"otherDiscretionaryExpenses", s.OtherDiscretionaryExpenses},
	}
}

func (s AnnualSection) items() []lineItem {
	return []lineItem{
		{"annualInsurancePremiums", s.AnnualInsurancePremiums},
		{"annualPropertyTaxes", s.AnnualPropertyTaxes},
		{"annualVehicleExpenses", s.AnnualVehicleExpenses},
		{"annualHomeMaintenance", s.AnnualHomeMaintenance},
		{"annualMedicalExpenses", s.AnnualMedicalExpenses},
		{"annualLicensesFees", s.AnnualLicensesFees},
		{"holidayGiftsBudget", s.HolidayGiftsBudget},
		{"vacationBudget", s.VacationBudget},
		{"otherAnnualExpenses", s.OtherAnnualExpenses},
	}
}

func (s C2ESection) items() []lineItem {
	return []lineItem{
		{"commutingCosts", s.CommutingCosts},
		{"workTechnology", s.WorkTechnology},
		{"dependentCare", s.DependentCare},
		{"workFromHomeCosts", s.WorkFromHomeCosts},
		{"workAttire", s.WorkAttire},
		{"workMeals", s.WorkMeals},
		{"licensingEducation", s.LicensingEducation},
		{"workHealth", s.WorkHealth},
		{"workRelatedDebt", s.WorkRelatedDebt},
	}
}
