package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("connection refused"), true},
		{"connection closed", errors.New("connection closed"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"unrelated error", errors.New("statement not found"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestJobMessageRoundTrip(t *testing.T) {
	msg := NewStatementExportMessage("stmt-1", "user-1")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := JobMessageFromJSON(data)
	if err != nil {
		t.Fatalf("JobMessageFromJSON: %v", err)
	}
	if got.Kind != KindStatementExport {
		t.Errorf("kind = %q, want %q", got.Kind, KindStatementExport)
	}
	if got.Statement == nil || got.Statement.StatementID != "stmt-1" || got.Statement.UserID != "user-1" {
		t.Errorf("statement payload = %+v", got.Statement)
	}
}

func TestJobMessageValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown kind", `{"kind":"mystery"}`},
		{"export without payload", `{"kind":"statement_export"}`},
		{"email without payload", `{"kind":"report_email"}`},
		{"not json", `{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := JobMessageFromJSON([]byte(tt.data)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReportEmailMessage(t *testing.T) {
	msg := NewReportEmailMessage("Ada", "ada@example.com", "Hi Ada,\nyour monthly balance is $100.00.")
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := JobMessageFromJSON(data)
	if err != nil {
		t.Fatalf("JobMessageFromJSON: %v", err)
	}
	if got.Report == nil || got.Report.Recipient != "ada@example.com" || got.Report.Name != "Ada" {
		t.Errorf("report payload = %+v", got.Report)
	}
}
