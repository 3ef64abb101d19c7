package core

// C2ESetting controls how much of one toggle-eligible expense counts as
// cost to earn. Percentage is clamped to [0,100]; when IsC2E is false the
// field contributes nothing regardless of the percentage.
type C2ESetting struct {
	IsC2E      bool    `json:"isC2E"`
	Percentage float64 `json:"percentage"`
}

// C2ESettings maps toggle-eligible field names to their settings. It is an
// immutable companion to FormInput, keyed by the same field names.
type C2ESettings map[string]C2ESetting

// Toggle-eligible fields: needs expenses that are partly attributable to
// earning income, plus the annual licensing line.
const (
	fieldHousing         = "housingExpenses"
	fieldUtilities       = "utilitiesExpenses"
	fieldTransportation  = "transportationExpenses"
	fieldChildcare       = "childcareExpenses"
	fieldProfessionalDev = "professionalDevelopment"
	fieldAnnualLicenses  = "annualLicensesFees"
)

// C2EResult is the cost-to-earn allocation: the per-field amounts (toggle
// shares plus the dedicated 100% fields), their sum, and the share of net
// revenue the total represents.
type C2EResult struct {
	Totals          CategoryTotals
	Total           Amount
	PercentOfIncome string
}

// AllocateCostToEarn computes the cost-to-earn portion of the statement.
//
// Toggle-eligible fields contribute value*percentage/100 when enabled. The
// annual licensing field is amortized to its monthly value first so the
// allocation stays on a monthly basis. Dedicated cost-to-earn fields are
// entered by the user as already-C2E amounts and count in full.
//
// PercentOfIncome is 0.0% when netRevenue is not positive; the ratio must
// never become NaN or Inf.
func AllocateCostToEarn(in *FormInput, settings C2ESettings, netRevenue float64) C2EResult {
	toggles := []lineItem{
		{fieldHousing, in.Needs.HousingExpenses},
		{fieldUtilities, in.Needs.UtilitiesExpenses},
		{fieldTransportation, in.Needs.TransportationExpenses},
		{fieldChildcare, in.Needs.ChildcareExpenses},
		{fieldProfessionalDev, in.Needs.ProfessionalDevelopment},
		{fieldAnnualLicenses, in.Annual.AnnualLicensesFees},
	}

	items := make(map[string]Amount, len(toggles)+9)
	var sum float64
	for _, t := range toggles {
		base := SafeNumber(t.raw)
		if t.name == fieldAnnualLicenses {
			base /= 12
		}
		share := RoundTwo(base * clampPercentage(settings[t.name]) / 100)
		items[t.name] = USD(share)
		sum += share
	}
	for _, it := range in.CostToEarn.items() {
		v := RoundTwo(SafeNumber(it.raw))
		items[it.name] = USD(v)
		sum += v
	}

	total := USD(sum)
	return C2EResult{
		Totals:          CategoryTotals{Items: items, Total: total},
		Total:           total,
		PercentOfIncome: FormatPercent(percentOf(total.Value, netRevenue)),
	}
}

func clampPercentage(s C2ESetting) float64 {
	if !s.IsC2E {
		return 0
	}
	switch {
	case s.Percentage < 0:
		return 0
	case s.Percentage > 100:
		return 100
	}
	return s.Percentage
}
