package domain

// UserClicks holds the click counters for a single user. Total always
// equals the sum of ByProduct values; the ledger enforces this by bumping
// both under one lock.
type UserClicks struct {
	Total     int            `json:"total"`
	ByProduct map[string]int `json:"byProduct"`
}

// LedgerSnapshot is a point-in-time copy of the full click ledger, keyed by
// user identifier.
type LedgerSnapshot map[string]UserClicks
