package events

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// MarketStatusData represents the status of a single market
type MarketStatusData struct {
	Code      string `json:"code"`
	Status    string `json:"status"` // "open" or "closed"
	Reason    string `json:"reason"` // open, weekend, holiday, before_open, after_close
	Holiday   string `json:"holiday,omitempty"`
	LocalTime string `json:"local_time"`
	UpdatedAt string `json:"updated_at"` // ISO 8601 timestamp
}

// MarketsStatusChangedData contains data for MarketsStatusChanged events
type MarketsStatusChangedData struct {
	Markets     map[string]MarketStatusData `json:"markets"` // Keyed by exchange code
	OpenCount   int                         `json:"open_count"`
	ClosedCount int                         `json:"closed_count"`
	LastUpdated string                      `json:"last_updated"` // ISO 8601 timestamp
}

// EventType returns the event type for MarketsStatusChangedData
func (d *MarketsStatusChangedData) EventType() EventType {
	return MarketsStatusChanged
}

// TransferDecisionData contains data for TransferAuthorized and TransferRejected events
type TransferDecisionData struct {
	DecisionID string `json:"decision_id"`
	Asset      string `json:"asset"`
	Allowed    bool   `json:"allowed"`
	Code       uint32 `json:"code,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// EventType returns TransferAuthorized or TransferRejected depending on the outcome
func (d *TransferDecisionData) EventType() EventType {
	if d.Allowed {
		return TransferAuthorized
	}
	return TransferRejected
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}
