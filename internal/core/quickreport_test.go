package core

import (
	"strings"
	"testing"
)

func TestComputeQuickReportSurplus(t *testing.T) {
	rpt := ComputeQuickReport(QuickReportInput{
		Name:          "Sam",
		Email:         "sam@example.com",
		MonthlyIncome: "4000",
		Housing:       "1200",
		Food:          "500",
		Savings:       "600",
	})
	if rpt.TotalExpenses.Value != 1700 {
		t.Errorf("totalExpenses = %v, want 1700", rpt.TotalExpenses.Value)
	}
	if rpt.Balance.Value != 1700 {
		t.Errorf("balance = %v, want 1700", rpt.Balance.Value)
	}
	if rpt.SavingsRate != "15.0%" {
		t.Errorf("savingsRate = %q, want 15.0%%", rpt.SavingsRate)
	}
	if len(rpt.Insights) == 0 || !strings.Contains(rpt.Insights[0], "left over") {
		t.Errorf("insights = %v", rpt.Insights)
	}
}

func TestComputeQuickReportDeficitAndHousing(t *testing.T) {
	rpt := ComputeQuickReport(QuickReportInput{
		MonthlyIncome: "2000",
		Housing:       "900",
		Food:          "700",
		Other:         "600",
	})
	if rpt.Balance.Value != -200 {
		t.Fatalf("balance = %v, want -200", rpt.Balance.Value)
	}
	if !containsSubstring(rpt.Insights, "more than you earn") {
		t.Errorf("missing overspending insight: %v", rpt.Insights)
	}
	if !containsSubstring(rpt.Insights, "35%") {
		t.Errorf("missing housing insight: %v", rpt.Insights)
	}
}

func TestComputeQuickReportNoIncome(t *testing.T) {
	rpt := ComputeQuickReport(QuickReportInput{Housing: "500"})
	if len(rpt.Insights) != 1 || rpt.Insights[0] != InsightEnterIncome {
		t.Fatalf("insights = %v", rpt.Insights)
	}
	if rpt.SavingsRate != "0.0%" {
		t.Errorf("savingsRate = %q, want 0.0%%", rpt.SavingsRate)
	}
}

func TestQuickReportRenderText(t *testing.T) {
	rpt := ComputeQuickReport(QuickReportInput{Name: "Sam", MonthlyIncome: "3000", Savings: "300"})
	body := rpt.RenderText()
	if !strings.Contains(body, "Hi Sam,") {
		t.Errorf("body missing greeting:\n%s", body)
	}
	if !strings.Contains(body, "$3,000.00") {
		t.Errorf("body missing income figure:\n%s", body)
	}
}
