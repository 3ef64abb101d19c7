package core

// Recommendation statuses. Needs and wants are good at or under their
// recommended share; savings is good at or over it.
const (
	StatusGood = "good"
	StatusHigh = "high"
	StatusLow  = "low"
)

// Recommendation compares one budget category against its 50/30/20 share
// of net revenue. Difference is recommended minus actual and may be
// negative.
type Recommendation struct {
	Recommended Amount `json:"recommended"`
	Actual      Amount `json:"actual"`
	Difference  Amount `json:"difference"`
	Status      string `json:"status"`
}

// Recommendations holds the three 50/30/20 comparisons.
type Recommendations struct {
	Needs   Recommendation `json:"needs"`
	Wants   Recommendation `json:"wants"`
	Savings Recommendation `json:"savings"`
}

// Recommend applies the 50/30/20 rule to netRevenue. When netRevenue is not
// positive every recommended figure is zero rather than a negative target.
func Recommend(netRevenue, needs, wants, savings float64) Recommendations {
	var recNeeds, recWants, recSavings float64
	if netRevenue > 0 {
		recNeeds = netRevenue * 0.5
		recWants = netRevenue * 0.3
		recSavings = netRevenue * 0.2
	}
	return Recommendations{
		Needs:   compare(recNeeds, needs, false),
		Wants:   compare(recWants, wants, false),
		Savings: compare(recSavings, savings, true),
	}
}

// compare builds one category comparison. moreIsBetter flips the favorable
// direction: spending categories should stay under their target, savings
// should meet or exceed it.
func compare(recommended, actual float64, moreIsBetter bool) Recommendation {
	status := StatusGood
	if moreIsBetter {
		if RoundTwo(actual) < RoundTwo(recommended) {
			status = StatusLow
		}
	} else {
		if RoundTwo(actual) > RoundTwo(recommended) {
			status = StatusHigh
		}
	}
	return Recommendation{
		Recommended: USD(recommended),
		Actual:      USD(actual),
		Difference:  USD(recommended - actual),
		Status:      status,
	}
}
