// Package events provides event management functionality.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	ErrorOccurred        EventType = "ERROR_OCCURRED"
	MarketsStatusChanged EventType = "MARKETS_STATUS_CHANGED"
	SystemStatusChanged  EventType = "SYSTEM_STATUS_CHANGED"
	TransferAuthorized   EventType = "TRANSFER_AUTHORIZED"
	TransferRejected     EventType = "TRANSFER_REJECTED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}
