package models

import "time"

// Session is one administrator review session. The token is the
// double-submit value required on every state-changing request.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PendingSelection is the session-scoped result of the most recent scan,
// held between the scan step and the review/fix step. Each new scan
// overwrites it; cancel clears it.
type PendingSelection struct {
	SessionID string    `json:"session_id"`
	Matches   []Match   `json:"matches"`
	ScannedAt time.Time `json:"scanned_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
