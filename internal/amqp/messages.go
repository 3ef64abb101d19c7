package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Job kinds carried on the statement jobs queue.
const (
	KindStatementExport = "statement_export"
	KindReportEmail     = "report_email"
)

// StatementExportMessage asks the worker to push one statement to the
// spreadsheet. It carries only the id; the worker fetches the payload
// from the database so the queue never holds stale statement data.
type StatementExportMessage struct {
	StatementID string `json:"statement_id"`
	UserID      string `json:"user_id"`
}

// ReportEmailMessage asks the worker to email a rendered quick report.
type ReportEmailMessage struct {
	Name      string `json:"name"`
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
}

// JobMessage is the envelope published to the jobs queue. Exactly one of
// Statement and Report is set, selected by Kind.
type JobMessage struct {
	Kind      string                  `json:"kind"`
	Statement *StatementExportMessage `json:"statement,omitempty"`
	Report    *ReportEmailMessage     `json:"report,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
}

func NewStatementExportMessage(statementID, userID string) *JobMessage {
	return &JobMessage{
		Kind:      KindStatementExport,
		Statement: &StatementExportMessage{StatementID: statementID, UserID: userID},
		Timestamp: time.Now(),
	}
}

func NewReportEmailMessage(name, recipient, body string) *JobMessage {
	return &JobMessage{
		Kind:      KindReportEmail,
		Report:    &ReportEmailMessage{Name: name, Recipient: recipient, Body: body},
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *JobMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// JobMessageFromJSON parses a message and checks that its payload matches
// its declared kind.
func JobMessageFromJSON(data []byte) (*JobMessage, error) {
	var msg JobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Kind {
	case KindStatementExport:
		if msg.Statement == nil {
			return nil, fmt.Errorf("message kind %q missing statement payload", msg.Kind)
		}
	case KindReportEmail:
		if msg.Report == nil {
			return nil, fmt.Errorf("message kind %q missing report payload", msg.Kind)
		}
	default:
		return nil, fmt.Errorf("unknown message kind %q", msg.Kind)
	}
	return &msg, nil
}
