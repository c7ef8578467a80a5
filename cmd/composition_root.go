package cmd

import (
	"context"
	"errors"
	"fmt"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/paystack"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/s3storage"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/ports"
	"logistics/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// notificationSink is a ports.NotificationSink that must be flushed on shutdown.
type notificationSink interface {
	ports.NotificationSink
	Close() error
}

type CompositionRoot struct {
	cfg        Config
	logger     *zap.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	sink       notificationSink
	storage    ports.ProofStorage
	gateway    ports.PaymentGateway
}

func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	var sink notificationSink = kafka.NewLogSink(logger)
	if cfg.KafkaEnabled {
		s, err := kafka.NewOrderEventSink(cfg.KafkaBrokers, cfg.KafkaOrderEventsTopic, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to kafka: %w", err)
		}
		sink = s
	}

	storage, err := s3storage.New(ctx, s3storage.Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		URLTTL:    cfg.ProofURLTTL,
	})
	if err != nil {
		return nil, errors.Join(err, sink.Close())
	}

	return &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		sink:       sink,
		storage:    storage,
		gateway:    paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey),
	}, nil
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.sink)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uow(), c.sink)
}

func (c *CompositionRoot) CreateReassignOrderCommandHandler() commands.ReassignOrderCommandHandler {
	return commands.NewReassignOrderCommandHandler(c.uow(), c.sink)
}

func (c *CompositionRoot) CreateRegisterRiderCommandHandler() commands.RegisterRiderCommandHandler {
	return commands.NewRegisterRiderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateSetRiderProfileStatusCommandHandler() commands.SetRiderProfileStatusCommandHandler {
	return commands.NewSetRiderProfileStatusCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateAbandonStaleTransactionsCommandHandler() commands.AbandonStaleTransactionsCommandHandler {
	return commands.NewAbandonStaleTransactionsCommandHandler(c.uow())
}

// Handlers wires every use case the HTTP adapter exposes.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	uow := c.uow()
	return httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		AssignOrder:           c.CreateAssignOrderCommandHandler(),
		ReassignOrder:         c.CreateReassignOrderCommandHandler(),
		CancelOrder:           commands.NewCancelOrderCommandHandler(uow),
		UpdateOrderStatus:     commands.NewUpdateOrderStatusCommandHandler(uow),
		SetOrderPaymentStatus: commands.NewSetOrderPaymentStatusCommandHandler(uow),
		RequestProofUpload:    commands.NewRequestProofUploadCommandHandler(uow, c.storage),
		ConfirmProofUpload:    commands.NewConfirmProofUploadCommandHandler(uow, c.storage),
		RegisterRider:         c.CreateRegisterRiderCommandHandler(),
		SetRiderProfileStatus: c.CreateSetRiderProfileStatusCommandHandler(),
		SetRiderAvailability:  commands.NewSetRiderAvailabilityCommandHandler(uow),
		UpdateRiderVehicle:    commands.NewUpdateRiderVehicleCommandHandler(uow),
		UpdateRiderLocation:   commands.NewUpdateRiderLocationCommandHandler(uow),
		InitializePayment:     commands.NewInitializePaymentCommandHandler(uow, c.gateway),
		VerifyPayment:         commands.NewVerifyPaymentCommandHandler(uow, c.gateway),
		PaymentWebhook:        commands.NewHandlePaymentWebhookCommandHandler(uow, c.gateway),

		GetOrder:                queries.NewGetOrderQueryHandler(c.gormDB),
		GetOrderTracking:        queries.NewGetOrderTrackingQueryHandler(c.gormDB),
		GetProofURL:             queries.NewGetProofURLQueryHandler(c.gormDB, c.storage),
		GetAvailableRiders:      queries.NewGetAvailableRidersQueryHandler(c.gormDB),
		GetRiderEarnings:        queries.NewGetRiderEarningsQueryHandler(c.gormDB),
		GetRiderLocationHistory: queries.NewGetRiderLocationHistoryQueryHandler(c.gormDB),
		QuoteDeliveryFee:        queries.NewQuoteDeliveryFeeQueryHandler(),
	}
}

func (c *CompositionRoot) Server() *httpin.Server {
	return httpin.NewServer(c.Handlers(), c.cfg.JWTSecret, c.logger)
}

func (c *CompositionRoot) JobManager() *jobs.JobManager {
	abandon := c.CreateAbandonStaleTransactionsCommandHandler()
	return jobs.NewJobManager(c.logger,
		jobs.NewAbandonStaleTransactionsJob(abandon, c.cfg.PaymentAbandonAfter, c.logger),
	)
}

// Close flushes pending notifications.
func (c *CompositionRoot) Close() error {
	return c.sink.Close()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
