package payment

import (
	"encoding/json"
	"strconv"
)

const (
	MsgTokenRequired   = "Payment token is required"
	MsgAmountInvalid   = "Valid payment amount is required"
	MsgBookingRequired = "Booking ID is required"
	MsgChargeRequired  = "Charge ID is required"
)

// CreateChargeRequest is the body of POST /api/payment/create-charge.
// Amount is in satang, as produced by the checkout page.
type CreateChargeRequest struct {
	Token       string      `json:"token"`
	Amount      json.Number `json:"amount"`
	BookingID   json.Number `json:"bookingId"`
	Description string      `json:"description"`
}

// ChargeInput is a validated CreateChargeRequest.
type ChargeInput struct {
	Token       string
	Amount      int64
	BookingID   uint
	Description string
}

func (r CreateChargeRequest) Validate() (ChargeInput, []string) {
	input := ChargeInput{Token: r.Token, Description: r.Description}
	var violations []string

	if r.Token == "" {
		violations = append(violations, MsgTokenRequired)
	}

	amount, err := strconv.ParseInt(r.Amount.String(), 10, 64)
	if err != nil || amount <= 0 {
		violations = append(violations, MsgAmountInvalid)
	}
	input.Amount = amount

	bookingID, err := strconv.ParseUint(r.BookingID.String(), 10, 64)
	if err != nil || bookingID == 0 {
		violations = append(violations, MsgBookingRequired)
	}
	input.BookingID = uint(bookingID)

	return input, violations
}

// ChargeSummary is the charge view returned to the frontend.
type ChargeSummary struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Created  string `json:"created"`
	Paid     bool   `json:"paid"`
}

// ChargeResult is the response of a successful create-charge call.
type ChargeResult struct {
	Charge        ChargeSummary `json:"charge"`
	BookingID     uint          `json:"booking_id"`
	BookingStatus string        `json:"booking_status"`
}
