package payment

type CreateIntentRequest struct {
	JobID int64 `json:"job_id" binding:"required"`
}

type CreateIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// WebhookEvent is the gateway's signed callback payload. The transaction id
// keys the payment record, so re-delivery dedupes naturally.
type WebhookEvent struct {
	Type       string `json:"type"` // payment.succeeded | payment.failed
	TxnID      string `json:"txn_id"`
	JobID      int64  `json:"job_id"`
	ProviderID int64  `json:"provider_id"`
	OwnerID    int64  `json:"owner_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
}
