package core

import (
	"fmt"
	"math"
)

// InsightEnterIncome is the single insight emitted when no income has been
// entered at all. Its exact wording is relied on by the frontend.
const InsightEnterIncome = "Please enter your income details to generate personalized insights."

// insightView is a read-only snapshot of the figures the rules inspect.
// The same rule list runs twice: once over the base figures and once over
// the cost-to-earn adjusted ones, with adjusted batches phrased against the
// adjusted revenue.
type insightView struct {
	grossRevenue   float64
	netRevenue     float64
	finalNetIncome float64

	needs   float64
	wants   float64
	savings float64
	annual  float64
	c2e     float64

	housing           float64
	transportation    float64
	entertainmentOut  float64
	debtPayments      float64
	emergencyFund     float64
	retirementSavings float64
	recommendedWants  float64

	adjusted bool
}

func (v insightView) revenueLabel() string {
	if v.adjusted {
		return "net revenue after cost to earn"
	}
	return "net revenue"
}

// pctInt is a zero-guarded integer percentage for insight text.
func pctInt(part, whole float64) int {
	return int(math.Round(percentOf(part, whole)))
}

// insightRule is one ordered heuristic: it inspects the snapshot and emits
// zero or more messages. halt stops evaluation of the remaining rules in
// the current batch.
type insightRule struct {
	name string
	eval func(v insightView) (msgs []string, halt bool)
}

// statementRules run in this order. The ordering is significant: insights
// are displayed exactly as appended.
var statementRules = []insightRule{
	{name: "profit-margin", eval: profitMarginRule},
	{name: "net-revenue", eval: netRevenueRule},
	{name: "needs-ratio", eval: needsRatioRule},
	{name: "wants-ratio", eval: wantsRatioRule},
	{name: "savings-ratio", eval: savingsRatioRule},
	{name: "debt-load", eval: debtLoadRule},
	{name: "cost-to-earn", eval: costToEarnRule},
	{name: "annual-planning", eval: annualPlanningRule},
	{name: "values-alignment", eval: valuesAlignmentRule},
}

// GenerateInsights evaluates the rule list against the assembled statement,
// then again against the cost-to-earn adjusted figures, and returns both
// batches concatenated. Deterministic for identical statements.
func GenerateInsights(st *Statement) []string {
	if st.GrossRevenue.Value == 0 {
		return []string{InsightEnterIncome}
	}

	out := runRules(viewOf(st, false))
	return append(out, runRules(viewOf(st, true))...)
}

func runRules(v insightView) []string {
	var out []string
	for _, rule := range statementRules {
		msgs, halt := rule.eval(v)
		out = append(out, msgs...)
		if halt {
			break
		}
	}
	return out
}

func viewOf(st *Statement, adjusted bool) insightView {
	v := insightView{
		grossRevenue:   st.GrossRevenue.Value,
		netRevenue:     st.NetRevenue.Value,
		finalNetIncome: st.FinalNetIncome.Value,

		needs:   st.TotalNeedsExpenses.Value,
		wants:   st.TotalWantsExpenses.Value,
		savings: st.TotalSavingsInvestments.Value,
		annual:  st.TotalAnnualExpenses.Value,
		c2e:     st.TotalC2E.Value,

		housing:           st.Needs.Get("housingExpenses"),
		transportation:    st.Needs.Get("transportationExpenses"),
		entertainmentOut:  st.Wants.Get("entertainmentExpenses") + st.Wants.Get("diningOutExpenses"),
		debtPayments:      st.Needs.Get("minimumDebtPayments") + st.Savings.Get("debtRepayment"),
		emergencyFund:     st.Savings.Get("emergencyFund"),
		retirementSavings: st.Savings.Get("retirementSavings"),
		recommendedWants:  st.Recommendations.Wants.Recommended.Value,

		adjusted: adjusted,
	}
	if adjusted {
		v.netRevenue = st.AdjustedNetRevenue.Value
		v.finalNetIncome = st.FinalNetIncomeC2E.Value
		v.recommendedWants = st.RecommendationsAfterC2E.Wants.Recommended.Value
	}
	return v
}

// profitMarginRule warns on a deficit, with follow-ups for oversized
// discretionary spending and a heavy cost-to-earn burden; otherwise it
// reports the profit margin against a 10% floor.
func profitMarginRule(v insightView) ([]string, bool) {
	if v.finalNetIncome < 0 {
		msgs := []string{fmt.Sprintf(
			"You are running a monthly deficit of %s. Your expenses exceed your %s.",
			FormatUSD(-v.finalNetIncome), v.revenueLabel())}
		if v.wants > v.recommendedWants {
			msgs = append(msgs, fmt.Sprintf(
				"Reducing discretionary spending by %s would bring your budget back into balance.",
				FormatUSD(v.wants-v.recommendedWants)))
		}
		if percentOf(v.c2e, v.netRevenue) > 20 {
			msgs = append(msgs, fmt.Sprintf(
				"Work-related expenses take %d%% of your %s. Lowering your cost to earn would ease the deficit.",
				pctInt(v.c2e, v.netRevenue), v.revenueLabel()))
		}
		return msgs, false
	}

	margin := pctInt(v.finalNetIncome, v.grossRevenue)
	if margin < 10 {
		return []string{fmt.Sprintf(
			"Your profit margin is %d%% of gross revenue, below 10%%. Aim higher by trimming expenses or growing income.",
			margin)}, false
	}
	return []string{fmt.Sprintf(
		"You keep a healthy profit margin of %d%% of gross revenue.", margin)}, false
}

// netRevenueRule stops the batch when there is nothing left after
// deductions; ratio insights against a non-positive base are meaningless.
func netRevenueRule(v insightView) ([]string, bool) {
	if v.netRevenue <= 0 {
		return []string{fmt.Sprintf(
			"Your %s is zero or negative. Review your income and deductions before planning spending.",
			v.revenueLabel())}, true
	}
	return nil, false
}

func needsRatioRule(v insightView) ([]string, bool) {
	pct := pctInt(v.needs, v.netRevenue)
	if pct <= 50 {
		return []string{fmt.Sprintf(
			"Essential needs are well managed at %d%% of your %s.", pct, v.revenueLabel())}, false
	}
	msgs := []string{fmt.Sprintf(
		"Essential needs take %d%% of your %s, above the recommended 50%%.", pct, v.revenueLabel())}
	if percentOf(v.housing, v.netRevenue) > 30 {
		msgs = append(msgs, fmt.Sprintf(
			"Housing alone is %d%% of your %s, above the 30%% guideline. Consider whether a cheaper arrangement could work.",
			pctInt(v.housing, v.netRevenue), v.revenueLabel()))
	}
	if percentOf(v.transportation, v.netRevenue) > 15 {
		msgs = append(msgs, fmt.Sprintf(
			"Transportation costs are %d%% of your %s, above the 15%% guideline. Transit, carpooling, or a cheaper vehicle could help.",
			pctInt(v.transportation, v.netRevenue), v.revenueLabel()))
	}
	return msgs, false
}

func wantsRatioRule(v insightView) ([]string, bool) {
	pct := pctInt(v.wants, v.netRevenue)
	if pct <= 30 {
		return []string{fmt.Sprintf(
			"Discretionary spending is well managed at %d%% of your %s.", pct, v.revenueLabel())}, false
	}
	msgs := []string{fmt.Sprintf(
		"Discretionary spending takes %d%% of your %s, above the recommended 30%%.", pct, v.revenueLabel())}
	if percentOf(v.entertainmentOut, v.netRevenue) > 10 {
		msgs = append(msgs, fmt.Sprintf(
			"Entertainment and dining out together are %d%% of your %s. Small cutbacks here add up quickly.",
			pctInt(v.entertainmentOut, v.netRevenue), v.revenueLabel()))
	}
	return msgs, false
}

func savingsRatioRule(v insightView) ([]string, bool) {
	pct := pctInt(v.savings, v.netRevenue)
	if pct >= 20 {
		return []string{fmt.Sprintf(
			"Your savings rate of %d%% meets or exceeds the recommended 20%%. Keep it up.", pct)}, false
	}
	msgs := []string{fmt.Sprintf(
		"You are saving %d%% of your %s, below the recommended 20%%.", pct, v.revenueLabel())}
	if v.emergencyFund == 0 {
		msgs = append(msgs,
			"Start with an emergency fund covering three to six months of essential expenses.")
	}
	if v.retirementSavings == 0 {
		msgs = append(msgs,
			"Add regular retirement contributions. Starting early matters more than the amount.")
	}
	return msgs, false
}

func debtLoadRule(v insightView) ([]string, bool) {
	if percentOf(v.debtPayments, v.netRevenue) > 15 {
		return []string{fmt.Sprintf(
			"Debt payments take %d%% of your %s. Prioritize debt reduction to free up future income.",
			pctInt(v.debtPayments, v.netRevenue), v.revenueLabel())}, false
	}
	return nil, false
}

func costToEarnRule(v insightView) ([]string, bool) {
	if percentOf(v.c2e, v.netRevenue) > 20 {
		return []string{fmt.Sprintf(
			"Your cost to earn is %d%% of your %s. Look for ways to reduce work-related expenses.",
			pctInt(v.c2e, v.netRevenue), v.revenueLabel())}, false
	}
	return nil, false
}

func annualPlanningRule(v insightView) ([]string, bool) {
	if percentOf(v.annual, v.netRevenue) > 10 {
		return []string{fmt.Sprintf(
			"Periodic expenses average %d%% of your %s each month. Spread out annual costs with a dedicated set-aside.",
			pctInt(v.annual, v.netRevenue), v.revenueLabel())}, false
	}
	return nil, false
}

func valuesAlignmentRule(v insightView) ([]string, bool) {
	if v.netRevenue > 0 && (v.needs > 0 || v.wants > 0) {
		return []string{
			"Map your spending to your core values. Expenses that serve no value you hold are the easiest to cut.",
		}, false
	}
	return nil, false
}
