package http

import (
	"io"
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// webhookSignatureHeader carries the gateway's HMAC of the raw body.
const webhookSignatureHeader = "x-paystack-signature"

type initializePaymentRequest struct {
	OrderID     uuid.UUID `json:"order_id"`
	Email       string    `json:"email"`
	CallbackURL string    `json:"callback_url"`
}

type paymentResponse struct {
	Reference        string     `json:"reference"`
	OrderID          string     `json:"order_id"`
	Amount           string     `json:"amount"`
	Currency         string     `json:"currency"`
	Status           string     `json:"status"`
	AuthorizationURL string     `json:"authorization_url,omitempty"`
	AccessCode       string     `json:"access_code,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

func toPaymentResponse(r commands.PaymentResult) paymentResponse {
	return paymentResponse{
		Reference:        r.Reference,
		OrderID:          r.OrderID.String(),
		Amount:           r.Amount.StringFixed(2),
		Currency:         r.Currency,
		Status:           r.Status.String(),
		AuthorizationURL: r.AuthorizationURL,
		AccessCode:       r.AccessCode,
		PaidAt:           r.PaidAt,
	}
}

func (s *Server) initializePayment(c echo.Context) error {
	var req initializePaymentRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(req.OrderID.String())
	if err != nil {
		return err
	}
	cmd, err := commands.NewInitializePaymentCommand(orderID, req.Email, req.CallbackURL)
	if err != nil {
		return err
	}
	result, err := s.h.InitializePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPaymentResponse(result))
}

func (s *Server) verifyPayment(c echo.Context) error {
	reference, err := pathString(c, "reference")
	if err != nil {
		return err
	}
	cmd, err := commands.NewVerifyPaymentCommand(reference)
	if err != nil {
		return err
	}
	result, err := s.h.VerifyPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPaymentResponse(result))
}

// paymentWebhook is public; the handler authenticates the payload by signature.
func (s *Server) paymentWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	signature := c.Request().Header.Get(webhookSignatureHeader)
	if err := s.h.PaymentWebhook.Handle(c.Request().Context(), payload, signature); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
