// Package http is the REST adapter. Requests are validated against the
// embedded OpenAPI document, the caller is taken from a bearer JWT, and each
// route calls exactly one command or query handler.
package http

import (
	"context"
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	AssignOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrderCommand) error
	}
	ReassignOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ReassignOrderCommand) error
	}
	CancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) error
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error
	}
	SetOrderPaymentStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetOrderPaymentStatusCommand) error
	}
	RequestProofUploadHandler interface {
		Handle(ctx context.Context, cmd commands.RequestProofUploadCommand) (ports.PresignedURL, error)
	}
	ConfirmProofUploadHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmProofUploadCommand) error
	}
	RegisterRiderHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterRiderCommand) (kernel.UUID, error)
	}
	SetRiderProfileStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetRiderProfileStatusCommand) error
	}
	SetRiderAvailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.SetRiderAvailabilityCommand) error
	}
	UpdateRiderVehicleHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateRiderVehicleCommand) error
	}
	UpdateRiderLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateRiderLocationCommand) error
	}
	InitializePaymentHandler interface {
		Handle(ctx context.Context, cmd commands.InitializePaymentCommand) (commands.PaymentResult, error)
	}
	VerifyPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.VerifyPaymentCommand) (commands.PaymentResult, error)
	}
	PaymentWebhookHandler interface {
		Handle(ctx context.Context, payload []byte, signature string) error
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	GetOrderTrackingHandler interface {
		Handle(ctx context.Context, query queries.GetOrderTrackingQuery) (queries.OrderTrackingView, error)
	}
	GetProofURLHandler interface {
		Handle(ctx context.Context, query queries.GetProofURLQuery) (ports.PresignedURL, error)
	}
	GetAvailableRidersHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableRidersQuery) ([]queries.AvailableRiderView, error)
	}
	GetRiderEarningsHandler interface {
		Handle(ctx context.Context, query queries.GetRiderEarningsQuery) (queries.RiderEarningsView, error)
	}
	GetRiderLocationHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetRiderLocationHistoryQuery) ([]queries.LocationView, error)
	}
	QuoteDeliveryFeeHandler interface {
		Handle(query queries.QuoteDeliveryFeeQuery) (queries.Quote, error)
	}
)

// Handlers are the use cases the server exposes.
type Handlers struct {
	CreateOrder           CreateOrderHandler
	AssignOrder           AssignOrderHandler
	ReassignOrder         ReassignOrderHandler
	CancelOrder           CancelOrderHandler
	UpdateOrderStatus     UpdateOrderStatusHandler
	SetOrderPaymentStatus SetOrderPaymentStatusHandler
	RequestProofUpload    RequestProofUploadHandler
	ConfirmProofUpload    ConfirmProofUploadHandler
	RegisterRider         RegisterRiderHandler
	SetRiderProfileStatus SetRiderProfileStatusHandler
	SetRiderAvailability  SetRiderAvailabilityHandler
	UpdateRiderVehicle    UpdateRiderVehicleHandler
	UpdateRiderLocation   UpdateRiderLocationHandler
	InitializePayment     InitializePaymentHandler
	VerifyPayment         VerifyPaymentHandler
	PaymentWebhook        PaymentWebhookHandler

	GetOrder                GetOrderHandler
	GetOrderTracking        GetOrderTrackingHandler
	GetProofURL             GetProofURLHandler
	GetAvailableRiders      GetAvailableRidersHandler
	GetRiderEarnings        GetRiderEarningsHandler
	GetRiderLocationHistory GetRiderLocationHistoryHandler
	QuoteDeliveryFee        QuoteDeliveryFeeHandler
}

type Server struct {
	h         Handlers
	jwtSecret []byte
	logger    *zap.Logger
}

func NewServer(handlers Handlers, jwtSecret string, logger *zap.Logger) *Server {
	return &Server{
		h:         handlers,
		jwtSecret: []byte(jwtSecret),
		logger:    logger.With(zap.String("component", "http")),
	}
}

// NewEcho builds the echo instance with middleware, docs and every route.
func (s *Server) NewEcho(doc *openapi3.T) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		_ = s.writeError(c, err)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(s.requestLogger())
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	s.register(e)
	return e, nil
}

func (s *Server) register(e *echo.Echo) {
	api := e.Group("/api/v1")
	auth := s.Authenticate

	api.POST("/orders", s.createOrder, auth)
	api.GET("/orders/:orderId", s.getOrder, auth)
	api.POST("/orders/:orderId/assign", s.assignOrder, auth)
	api.POST("/orders/:orderId/reassign", s.reassignOrder, auth)
	api.POST("/orders/:orderId/cancel", s.cancelOrder, auth)
	api.POST("/orders/:orderId/status", s.updateOrderStatus, auth)
	api.PUT("/orders/:orderId/payment-status", s.setOrderPaymentStatus, auth)
	api.POST("/orders/:orderId/proof/upload-url", s.requestProofUpload, auth)
	api.POST("/orders/:orderId/proof/confirm", s.confirmProofUpload, auth)
	api.GET("/orders/:orderId/proof", s.getProofURL, auth)
	api.GET("/track/:number", s.trackOrder)
	api.GET("/quote", s.quoteDeliveryFee)

	api.POST("/riders/register", s.registerRider)
	api.GET("/riders/available", s.getAvailableRiders, auth)
	api.PUT("/riders/me/availability", s.setRiderAvailability, auth)
	api.PUT("/riders/me/vehicle", s.updateRiderVehicle, auth)
	api.POST("/riders/me/location", s.updateRiderLocation, auth)
	api.PUT("/riders/:riderId/status", s.setRiderProfileStatus, auth)
	api.GET("/riders/:riderId/earnings", s.getRiderEarnings, auth)
	api.GET("/riders/:riderId/locations", s.getRiderLocationHistory, auth)

	api.POST("/payments/initialize", s.initializePayment, auth)
	api.GET("/payments/verify/:reference", s.verifyPayment, auth)
	api.POST("/payments/webhook", s.paymentWebhook)
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			s.logger.Info("request", fields...)
			return nil
		},
	})
}
