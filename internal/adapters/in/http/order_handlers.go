package http

import (
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type addressRequest struct {
	Line      string   `json:"line"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (a addressRequest) toInput() commands.AddressInput {
	return commands.AddressInput{Line: a.Line, Latitude: a.Latitude, Longitude: a.Longitude}
}

type createOrderRequest struct {
	CustomerName       string         `json:"customer_name"`
	CustomerPhone      string         `json:"customer_phone"`
	CustomerEmail      string         `json:"customer_email"`
	Pickup             addressRequest `json:"pickup"`
	Delivery           addressRequest `json:"delivery"`
	PackageDescription string         `json:"package_description"`
	PackageWeightKg    *float64       `json:"package_weight_kg"`
	DeliveryFee        *string        `json:"delivery_fee"`
}

type createOrderResponse struct {
	ID          string   `json:"id"`
	Number      string   `json:"number"`
	DeliveryFee string   `json:"delivery_fee"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
}

type riderRefRequest struct {
	RiderID string `json:"rider_id"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type proofUploadRequest struct {
	ContentType string `json:"content_type"`
}

type proofConfirmRequest struct {
	Key string `json:"key"`
}

type presignedURLResponse struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

func toPresignedURLResponse(p ports.PresignedURL) presignedURLResponse {
	return presignedURLResponse{URL: p.URL, Method: p.Method, Key: p.Key, ExpiresAt: p.ExpiresAt}
}

type addressResponse struct {
	Line      string   `json:"line"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func toAddressResponse(a queries.AddressView) addressResponse {
	return addressResponse{Line: a.Line, Latitude: a.Latitude, Longitude: a.Longitude}
}

type statusLogResponse struct {
	Status    string    `json:"status"`
	ChangedBy *string   `json:"changed_by,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type orderResponse struct {
	ID                 string              `json:"id"`
	Number             string              `json:"number"`
	CustomerName       string              `json:"customer_name"`
	CustomerPhone      string              `json:"customer_phone"`
	CustomerEmail      string              `json:"customer_email,omitempty"`
	Pickup             addressResponse     `json:"pickup"`
	Delivery           addressResponse     `json:"delivery"`
	PackageDescription string              `json:"package_description,omitempty"`
	PackageWeightKg    *float64            `json:"package_weight_kg,omitempty"`
	DeliveryFee        string              `json:"delivery_fee"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"payment_status"`
	RiderID            *string             `json:"rider_id,omitempty"`
	RiderName          string              `json:"rider_name,omitempty"`
	HasProof           bool                `json:"has_proof"`
	DeliveryNotes      string              `json:"delivery_notes,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	AssignedAt         *time.Time          `json:"assigned_at,omitempty"`
	PickedAt           *time.Time          `json:"picked_at,omitempty"`
	DeliveredAt        *time.Time          `json:"delivered_at,omitempty"`
	StatusHistory      []statusLogResponse `json:"status_history"`
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toOrderResponse(v queries.OrderView) orderResponse {
	logs := make([]statusLogResponse, len(v.Logs))
	for i, l := range v.Logs {
		logs[i] = statusLogResponse{
			Status:    l.Status.String(),
			ChangedBy: optionalID(l.ChangedBy),
			Notes:     l.Notes,
			CreatedAt: l.CreatedAt,
		}
	}
	return orderResponse{
		ID:                 v.ID.String(),
		Number:             v.Number,
		CustomerName:       v.CustomerName,
		CustomerPhone:      v.CustomerPhone,
		CustomerEmail:      v.CustomerEmail,
		Pickup:             toAddressResponse(v.Pickup),
		Delivery:           toAddressResponse(v.Delivery),
		PackageDescription: v.PackageDescription,
		PackageWeightKg:    v.PackageWeightKg,
		DeliveryFee:        v.DeliveryFee.StringFixed(2),
		Status:             v.Status.String(),
		PaymentStatus:      v.PaymentStatus.String(),
		RiderID:            optionalID(v.RiderID),
		RiderName:          v.RiderName,
		HasProof:           v.HasProof,
		DeliveryNotes:      v.DeliveryNotes,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
		AssignedAt:         v.AssignedAt,
		PickedAt:           v.PickedAt,
		DeliveredAt:        v.DeliveredAt,
		StatusHistory:      logs,
	}
}

// createOrder handles POST /api/v1/orders.
func (s *Server) createOrder(c echo.Context) error {
	var req createOrderRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := commands.CreateOrderInput{
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		CustomerEmail:      req.CustomerEmail,
		Pickup:             req.Pickup.toInput(),
		Delivery:           req.Delivery.toInput(),
		PackageDescription: req.PackageDescription,
		PackageWeightKg:    req.PackageWeightKg,
	}
	if req.DeliveryFee != nil {
		fee, err := decimal.NewFromString(*req.DeliveryFee)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("delivery fee", err)
		}
		in.DeliveryFee = &fee
	}

	cmd, err := commands.NewCreateOrderCommand(actorFrom(c), in)
	if err != nil {
		return err
	}
	result, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOrderResponse{
		ID:          result.ID.String(),
		Number:      result.Number,
		DeliveryFee: result.DeliveryFee.StringFixed(2),
		DistanceKm:  result.DistanceKm,
	})
}

// getOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) getOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(actorFrom(c), orderID)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(view))
}

func (s *Server) assignOrder(c echo.Context) error {
	orderID, riderID, err := orderAndRider(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAssignOrderCommand(actorFrom(c), orderID, riderID)
	if err != nil {
		return err
	}
	if err := s.h.AssignOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) reassignOrder(c echo.Context) error {
	orderID, riderID, err := orderAndRider(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewReassignOrderCommand(actorFrom(c), orderID, riderID)
	if err != nil {
		return err
	}
	if err := s.h.ReassignOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func orderAndRider(c echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	var req riderRefRequest
	if err := bindBody(c, &req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	riderID, err := kernel.UUIDFromString(req.RiderID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, err
	}
	return orderID, riderID, nil
}

func (s *Server) cancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req cancelOrderRequest
	if c.Request().ContentLength != 0 {
		if err := bindBody(c, &req); err != nil {
			return err
		}
	}
	cmd, err := commands.NewCancelOrderCommand(actorFrom(c), orderID, req.Reason)
	if err != nil {
		return err
	}
	if err := s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) updateOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req statusUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateOrderStatusCommand(actorFrom(c), orderID, status, req.Notes)
	if err != nil {
		return err
	}
	if err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) setOrderPaymentStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req paymentStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	status, err := order.ParsePaymentStatus(req.PaymentStatus)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSetOrderPaymentStatusCommand(actorFrom(c), orderID, status)
	if err != nil {
		return err
	}
	if err := s.h.SetOrderPaymentStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) requestProofUpload(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req proofUploadRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewRequestProofUploadCommand(actorFrom(c), orderID, req.ContentType)
	if err != nil {
		return err
	}
	signed, err := s.h.RequestProofUpload.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPresignedURLResponse(signed))
}

func (s *Server) confirmProofUpload(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	var req proofConfirmRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewConfirmProofUploadCommand(actorFrom(c), orderID, req.Key)
	if err != nil {
		return err
	}
	if err := s.h.ConfirmProofUpload.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getProofURL(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetProofURLQuery(actorFrom(c), orderID)
	if err != nil {
		return err
	}
	signed, err := s.h.GetProofURL.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPresignedURLResponse(signed))
}
