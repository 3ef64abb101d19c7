package core

import (
	"encoding/json"
	"testing"
)

func TestAggregateIncomeSumsFields(t *testing.T) {
	in := &FormInput{Income: IncomeSection{
		PrimaryIncome:   "5000",
		FreelanceIncome: "250.50",
		OtherIncome:     "49.50",
	}}
	got := AggregateIncome(in)
	if got.Total.Value != 5300 {
		t.Fatalf("total = %v, want 5300", got.Total.Value)
	}
	if got.Items["primaryIncome"].Value != 5000 {
		t.Errorf("primaryIncome = %v, want 5000", got.Items["primaryIncome"].Value)
	}
	if got.Items["secondaryIncome"].Value != 0 {
		t.Errorf("empty field should aggregate to 0")
	}
}

func TestAggregateClampsNegatives(t *testing.T) {
	in := &FormInput{Wants: WantsSection{
		EntertainmentExpenses: "-300",
		DiningOutExpenses:     "100",
	}}
	got := AggregateWants(in)
	if got.Total.Value != 100 {
		t.Fatalf("total = %v, want 100 (negative input must clamp to 0)", got.Total.Value)
	}
	if got.Items["entertainmentExpenses"].Value != 0 {
		t.Errorf("negative line item = %v, want 0", got.Items["entertainmentExpenses"].Value)
	}
}

func TestAggregateAnnualAmortizesMonthly(t *testing.T) {
	in := &FormInput{Annual: AnnualSection{
		AnnualPropertyTaxes: "1200",
		VacationBudget:      "600",
	}}
	got := AggregateAnnual(in)
	if got.Items["annualPropertyTaxes"].Value != 100 {
		t.Errorf("annualPropertyTaxes = %v, want 100", got.Items["annualPropertyTaxes"].Value)
	}
	if got.Items["vacationBudget"].Value != 50 {
		t.Errorf("vacationBudget = %v, want 50", got.Items["vacationBudget"].Value)
	}
	if got.Total.Value != 150 {
		t.Errorf("total = %v, want 150", got.Total.Value)
	}
}

// The section total must equal the rounded sum of its siblings for every
// aggregator, recomputed per call.
func TestSumInvariant(t *testing.T) {
	in := &FormInput{
		Income:     IncomeSection{PrimaryIncome: "1234.56", RentalIncome: "0.01", OtherIncome: "99.99"},
		Deductions: DeductionsSection{FederalIncomeTax: "321.12", MedicareTax: "58.88"},
		Needs:      NeedsSection{HousingExpenses: "1500.55", GroceriesExpenses: "433.45"},
		Savings:    SavingsSection{EmergencyFund: "100.10", DebtRepayment: "22.22"},
		Wants:      WantsSection{TravelExpenses: "75.75", HobbiesExpenses: "10.10"},
		Annual:     AnnualSection{AnnualVehicleExpenses: "845", HolidayGiftsBudget: "301"},
	}
	sections := map[string]CategoryTotals{
		"income":     AggregateIncome(in),
		"deductions": AggregateDeductions(in),
		"needs":      AggregateNeeds(in),
		"savings":    AggregateSavings(in),
		"wants":      AggregateWants(in),
		"annual":     AggregateAnnual(in),
	}
	for name, sec := range sections {
		var sum float64
		for _, a := range sec.Items {
			sum += a.Value
		}
		if got, want := sec.Total.Value, RoundTwo(sum); got != want {
			t.Errorf("%s: total %v != rounded sibling sum %v", name, got, want)
		}
	}
}

func TestCategoryTotalsJSONShape(t *testing.T) {
	sec := CategoryTotals{
		Items: map[string]Amount{"housingExpenses": USD(1500)},
		Total: USD(1500),
	}
	data, err := json.Marshal(sec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var flat map[string]Amount
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if flat["total"].Formatted != "$1,500.00" {
		t.Errorf("total = %+v", flat["total"])
	}
	if flat["housingExpenses"].Value != 1500 {
		t.Errorf("housingExpenses = %+v", flat["housingExpenses"])
	}

	var back CategoryTotals
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal into CategoryTotals: %v", err)
	}
	if back.Total.Value != 1500 || back.Items["housingExpenses"].Value != 1500 {
		t.Errorf("round trip lost data: %+v", back)
	}
	if _, ok := back.Items["total"]; ok {
		t.Errorf("total key must not leak into the item map")
	}
}
