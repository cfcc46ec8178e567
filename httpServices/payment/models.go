package httpServices

// ChargeRequest is the body of POST /charges. Amount is in the smallest
// currency unit (satang for THB).
type ChargeRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Card        string            `json:"card"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type Charge struct {
	Object         string            `json:"object"`
	ID             string            `json:"id"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	Paid           bool              `json:"paid"`
	Created        string            `json:"created_at"`
	FailureCode    *string           `json:"failure_code"`
	FailureMessage *string           `json:"failure_message"`
	Metadata       map[string]string `json:"metadata"`
}

// Successful reports whether the card was charged.
func (c Charge) Successful() bool {
	return c.Paid && c.Status == "successful"
}

// APIError is the error object Omise returns with non-2xx responses.
type APIError struct {
	Object     string `json:"object"`
	Location   string `json:"location"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return "omise: " + e.Code + ": " + e.Message
}
