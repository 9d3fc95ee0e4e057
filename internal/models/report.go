package models

import "fmt"

// Message severity levels shown to the administrator.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Message is one user-visible notice produced during a scan or fix pass.
type Message struct {
	Severity string `json:"severity"`
	Text     string `json:"text"`
}

// Report collects the messages of one operation. Per-record failures are
// appended as warnings and processing continues; batch-fatal conditions are
// appended as errors.
type Report struct {
	Messages []Message `json:"messages"`
}

func (r *Report) add(severity, format string, args ...interface{}) {
	r.Messages = append(r.Messages, Message{Severity: severity, Text: fmt.Sprintf(format, args...)})
}

// Errorf appends an error-severity message.
func (r *Report) Errorf(format string, args ...interface{}) {
	r.add(SeverityError, format, args...)
}

// Warnf appends a warning-severity message.
func (r *Report) Warnf(format string, args ...interface{}) {
	r.add(SeverityWarning, format, args...)
}

// Infof appends an info-severity message.
func (r *Report) Infof(format string, args ...interface{}) {
	r.add(SeverityInfo, format, args...)
}

// HasErrors reports whether any error-severity message was recorded.
func (r *Report) HasErrors() bool {
	for _, m := range r.Messages {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}
