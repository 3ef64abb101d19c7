package core

import (
	"fmt"
	"strings"
)

// QuickReportInput is the single-page report form: a handful of broad
// figures instead of the full multi-step breakdown. This path predates the
// full statement engine and keeps its own minimal rule set.
type QuickReportInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	MonthlyIncome  string `json:"monthlyIncome"`
	Housing        string `json:"housing"`
	Food           string `json:"food"`
	Transportation string `json:"transportation"`
	Utilities      string `json:"utilities"`
	Entertainment  string `json:"entertainment"`
	Savings        string `json:"savings"`
	Other          string `json:"other"`
}

// QuickReport is the condensed result delivered by email.
type QuickReport struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	TotalIncome   Amount   `json:"totalIncome"`
	TotalExpenses Amount   `json:"totalExpenses"`
	Balance       Amount   `json:"balance"`
	SavingsRate   string   `json:"savingsRate"`
	Insights      []string `json:"insights"`
}

// ComputeQuickReport runs the legacy quick-report calculation. Same
// coercion rules as the full engine, far fewer heuristics.
func ComputeQuickReport(in QuickReportInput) QuickReport {
	income := RoundTwo(SafeNumber(in.MonthlyIncome))
	savings := RoundTwo(SafeNumber(in.Savings))
	expenses := RoundTwo(SafeNumber(in.Housing) + SafeNumber(in.Food) +
		SafeNumber(in.Transportation) + SafeNumber(in.Utilities) +
		SafeNumber(in.Entertainment) + SafeNumber(in.Other))
	balance := RoundTwo(income - expenses - savings)

	rpt := QuickReport{
		Name:          in.Name,
		Email:         in.Email,
		TotalIncome:   USD(income),
		TotalExpenses: USD(expenses),
		Balance:       USD(balance),
		SavingsRate:   FormatPercent(percentOf(savings, income)),
	}

	if income == 0 {
		rpt.Insights = []string{InsightEnterIncome}
		return rpt
	}
	if balance < 0 {
		rpt.Insights = append(rpt.Insights, fmt.Sprintf(
			"You are spending %s more than you earn each month.", FormatUSD(-balance)))
	} else {
		rpt.Insights = append(rpt.Insights, fmt.Sprintf(
			"You have %s left over each month after expenses and savings.", FormatUSD(balance)))
	}
	if percentOf(savings, income) < 10 {
		rpt.Insights = append(rpt.Insights,
			"Your savings rate is under 10%. Try to set aside a little more each month.")
	}
	if percentOf(SafeNumber(in.Housing), income) > 35 {
		rpt.Insights = append(rpt.Insights,
			"Housing takes more than 35% of your income, which leaves little room for everything else.")
	}
	return rpt
}

// RenderText formats the report as the plain-text email body.
func (r QuickReport) RenderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nHere is your quick household report:\n\n", r.Name)
	fmt.Fprintf(&b, "Monthly income:   %s\n", r.TotalIncome.Formatted)
	fmt.Fprintf(&b, "Monthly expenses: %s\n", r.TotalExpenses.Formatted)
	fmt.Fprintf(&b, "Monthly balance:  %s\n", r.Balance.Formatted)
	fmt.Fprintf(&b, "Savings rate:     %s\n\n", r.SavingsRate)
	for _, ins := range r.Insights {
		fmt.Fprintf(&b, "- %s\n", ins)
	}
	b.WriteString("\nBest regards,\nThe Homeledger Team\n")
	return b.String()
}
