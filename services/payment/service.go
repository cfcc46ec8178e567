package payment

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"dormly/apperror"
	httpServices "dormly/httpServices/payment"
	"dormly/logger"
	bookingModel "dormly/models/booking"
	bookingTypes "dormly/types/booking"
	paymentTypes "dormly/types/payment"
)

const currencyTHB = "thb"

var ErrChargeNotFound = apperror.NotFound("Charge not found")

// Gateway is the card processor.
type Gateway interface {
	CreateCharge(ctx context.Context, req httpServices.ChargeRequest) (*httpServices.Charge, error)
	GetCharge(ctx context.Context, chargeID string) (*httpServices.Charge, error)
}

// Bookings is the part of the booking service payments depend on.
type Bookings interface {
	PayableBooking(ctx context.Context, bookingID, userID uint) (*bookingTypes.BookingDetail, error)
	ConfirmBooking(ctx context.Context, bookingID, userID uint) (*bookingModel.Booking, error)
}

// Service charges pending bookings and confirms them when the charge
// succeeds.
type Service struct {
	gateway  Gateway
	bookings Bookings
}

// NewService creates a new payment service
func NewService(gateway Gateway, bookings Bookings) *Service {
	return &Service{gateway: gateway, bookings: bookings}
}

func summarize(c *httpServices.Charge) paymentTypes.ChargeSummary {
	return paymentTypes.ChargeSummary{
		ID:       c.ID,
		Amount:   c.Amount,
		Currency: c.Currency,
		Status:   c.Status,
		Created:  c.Created,
		Paid:     c.Paid,
	}
}

// gatewayError maps a processor failure. Client side rejections such as a
// bad card token are reported to the caller, the rest are infrastructure
// failures.
func gatewayError(err error) error {
	var apiErr *httpServices.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			return ErrChargeNotFound
		}
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusUnauthorized {
			return apperror.Validation(apiErr.Message)
		}
	}
	return apperror.Storage(err)
}

// CreateCharge charges the card for one of userID's pending bookings and
// confirms the booking when the charge succeeds.
func (s *Service) CreateCharge(ctx context.Context, req paymentTypes.CreateChargeRequest, userID uint) (*paymentTypes.ChargeResult, error) {
	input, violations := req.Validate()
	if len(violations) > 0 {
		return nil, apperror.Validation(violations...)
	}

	booking, err := s.bookings.PayableBooking(ctx, input.BookingID, userID)
	if err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = "Dormly booking #" + strconv.FormatUint(uint64(booking.ID), 10) + " " + booking.DormName
	}

	charge, err := s.gateway.CreateCharge(ctx, httpServices.ChargeRequest{
		Amount:      input.Amount,
		Currency:    currencyTHB,
		Card:        input.Token,
		Description: description,
		Metadata: map[string]string{
			"booking_id": strconv.FormatUint(uint64(booking.ID), 10),
			"user_id":    strconv.FormatUint(uint64(userID), 10),
		},
	})
	if err != nil {
		return nil, gatewayError(err)
	}

	if !charge.Successful() {
		msg := "Payment failed"
		if charge.FailureMessage != nil && *charge.FailureMessage != "" {
			msg += ": " + *charge.FailureMessage
		}
		logger.Warning("Charge " + charge.ID + " was not successful for booking " + strconv.FormatUint(uint64(booking.ID), 10))
		return nil, apperror.Validation(msg)
	}

	confirmed, err := s.bookings.ConfirmBooking(ctx, booking.ID, userID)
	if err != nil {
		// The card is charged; keep the charge id in the log for a manual fix.
		logger.Error("Charge "+charge.ID+" succeeded but booking confirmation failed", err)
		return nil, err
	}

	return &paymentTypes.ChargeResult{
		Charge:        summarize(charge),
		BookingID:     confirmed.ID,
		BookingStatus: confirmed.Status.String(),
	}, nil
}

// VerifyCharge looks up a charge.
func (s *Service) VerifyCharge(ctx context.Context, chargeID string) (*paymentTypes.ChargeSummary, error) {
	if chargeID == "" {
		return nil, apperror.Validation(paymentTypes.MsgChargeRequired)
	}

	charge, err := s.gateway.GetCharge(ctx, chargeID)
	if err != nil {
		return nil, gatewayError(err)
	}
	summary := summarize(charge)
	return &summary, nil
}
