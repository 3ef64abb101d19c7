// Package sheets defines the outbound spreadsheet port for statement
// exports, with a Google Sheets adapter and an in-memory fake.
package sheets

import (
	"context"
	"errors"
	"time"

	"homeledger/internal/core"
)

// SummaryRow is the flattened view of a statement appended to the export
// spreadsheet, one row per statement.
type SummaryRow struct {
	StatementID     string
	ExportedAt      time.Time
	GrossRevenue    float64
	TotalDeductions float64
	NetRevenue      float64
	NeedsTotal      float64
	WantsTotal      float64
	SavingsTotal    float64
	CostToEarnTotal float64
	FinalNetIncome  float64
}

// NewSummaryRow flattens a computed statement into an export row.
func NewSummaryRow(statementID string, st *core.Statement) SummaryRow {
	return SummaryRow{
		StatementID:     statementID,
		ExportedAt:      time.Now().UTC(),
		GrossRevenue:    st.GrossRevenue.Value,
		TotalDeductions: st.TotalPreTaxDeductions.Value,
		NetRevenue:      st.NetRevenue.Value,
		NeedsTotal:      st.Needs.Total.Value,
		WantsTotal:      st.Wants.Total.Value,
		SavingsTotal:    st.Savings.Total.Value,
		CostToEarnTotal: st.CostToEarn.Total.Value,
		FinalNetIncome:  st.FinalNetIncome.Value,
	}
}

// Validate rejects rows that would write an unidentifiable line.
func (r SummaryRow) Validate() error {
	if r.StatementID == "" {
		return errors.New("summary row missing statement id")
	}
	return nil
}

// StatementWriter appends one statement summary row to the export target.
type StatementWriter interface {
	Append(ctx context.Context, row SummaryRow) (rowRef string, err error)
}
