package kafka

import "time"

// TransactionEvent is published on every successful status transition.
type TransactionEvent struct {
	TransactionID string    `json:"transaction_id"`
	Reference     string    `json:"reference"`
	GatewayName   string    `json:"gateway_name"`
	OldStatus     string    `json:"old_status,omitempty"`
	NewStatus     string    `json:"new_status"`
	AmountFiat    float64   `json:"amount_fiat"`
	Currency      string    `json:"currency"`
	TrackingToken string    `json:"tracking_token,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
