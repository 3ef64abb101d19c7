package core

// Statement is the full derived income statement. It is built fresh on
// every submission, serialized as JSON for storage, and replaced wholesale
// on update. Field names are a wire contract shared with every downstream
// consumer of stored statements.
type Statement struct {
	GrossRevenue          Amount `json:"grossRevenue"`
	TotalPreTaxDeductions Amount `json:"totalPreTaxDeductions"`
	NetRevenue            Amount `json:"netRevenue"`

	TotalNeedsExpenses      Amount `json:"totalNeedsExpenses"`
	TotalSavingsInvestments Amount `json:"totalSavingsInvestments"`
	TotalWantsExpenses      Amount `json:"totalWantsExpenses"`
	TotalAnnualExpenses     Amount `json:"totalAnnualExpenses"`

	GrossProfit    Amount `json:"grossProfit"`
	NetProfit      Amount `json:"netProfit"`
	FinalNetIncome Amount `json:"finalNetIncome"`

	TotalC2E            Amount `json:"totalC2E"`
	C2EPercentOfIncome  string `json:"c2ePercentOfIncome"`
	AdjustedNetRevenue  Amount `json:"adjustedNetRevenue"`
	GrossProfitAfterC2E Amount `json:"grossProfitAfterC2E"`
	NetProfitAfterC2E   Amount `json:"netProfitAfterC2E"`
	FinalNetIncomeC2E   Amount `json:"finalNetIncomeAfterC2E"`

	Income     CategoryTotals `json:"income"`
	Deductions CategoryTotals `json:"deductions"`
	Needs      CategoryTotals `json:"needs"`
	Savings    CategoryTotals `json:"savings"`
	Wants      CategoryTotals `json:"wants"`
	Annual     CategoryTotals `json:"annual"`
	CostToEarn CategoryTotals `json:"costToEarn"`

	Recommendations         Recommendations `json:"recommendations"`
	RecommendationsAfterC2E Recommendations `json:"recommendationsAfterC2E"`

	Insights []string `json:"insights"`
}

// ComputeStatement derives the full statement from raw form input and the
// cost-to-earn settings. Pure function: no I/O, no retained state, safe to
// call concurrently for independent inputs.
//
// The figure chain is order-dependent and must not be reordered: gross
// revenue and deductions give net revenue; subtracting needs and savings
// gives gross profit; subtracting wants gives net profit; subtracting the
// monthly-amortized annual expenses gives final net income. The parallel
// chain repeats the same subtractions from the cost-to-earn adjusted net
// revenue.
func ComputeStatement(in *FormInput, settings C2ESettings) *Statement {
	st := &Statement{
		Income:     AggregateIncome(in),
		Deductions: AggregateDeductions(in),
		Needs:      AggregateNeeds(in),
		Savings:    AggregateSavings(in),
		Wants:      AggregateWants(in),
		Annual:     AggregateAnnual(in),
	}

	st.GrossRevenue = st.Income.Total
	st.TotalPreTaxDeductions = st.Deductions.Total
	st.NetRevenue = USD(st.GrossRevenue.Value - st.TotalPreTaxDeductions.Value)

	st.TotalNeedsExpenses = st.Needs.Total
	st.TotalSavingsInvestments = st.Savings.Total
	st.TotalWantsExpenses = st.Wants.Total
	st.TotalAnnualExpenses = st.Annual.Total

	st.GrossProfit = USD(st.NetRevenue.Value - st.TotalNeedsExpenses.Value - st.TotalSavingsInvestments.Value)
	st.NetProfit = USD(st.GrossProfit.Value - st.TotalWantsExpenses.Value)
	st.FinalNetIncome = USD(st.NetProfit.Value - st.TotalAnnualExpenses.Value)

	c2e := AllocateCostToEarn(in, settings, st.NetRevenue.Value)
	st.CostToEarn = c2e.Totals
	st.TotalC2E = c2e.Total
	st.C2EPercentOfIncome = c2e.PercentOfIncome

	st.AdjustedNetRevenue = USD(st.NetRevenue.Value - st.TotalC2E.Value)
	st.GrossProfitAfterC2E = USD(st.AdjustedNetRevenue.Value - st.TotalNeedsExpenses.Value - st.TotalSavingsInvestments.Value)
	st.NetProfitAfterC2E = USD(st.GrossProfitAfterC2E.Value - st.TotalWantsExpenses.Value)
	st.FinalNetIncomeC2E = USD(st.NetProfitAfterC2E.Value - st.TotalAnnualExpenses.Value)

	st.Recommendations = Recommend(st.NetRevenue.Value,
		st.TotalNeedsExpenses.Value, st.TotalWantsExpenses.Value, st.TotalSavingsInvestments.Value)
	st.RecommendationsAfterC2E = Recommend(st.AdjustedNetRevenue.Value,
		st.TotalNeedsExpenses.Value, st.TotalWantsExpenses.Value, st.TotalSavingsInvestments.Value)

	st.Insights = GenerateInsights(st)
	return st
}
