package kafka

import (
	"context"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"

	"go.uber.org/zap"
)

// LogSink writes order notifications to the log. It is used when Kafka is disabled.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.With(zap.String("component", "log_sink"))}
}

func (s *LogSink) NotifyOrderCreated(_ context.Context, o *order.Order) {
	s.logger.Info(OrderCreatedEvent,
		zap.String("order_id", o.ID().String()),
		zap.String("order_number", o.Number()),
		zap.String("delivery_fee", o.DeliveryFee().StringFixed(2)))
}

func (s *LogSink) NotifyRiderAssigned(_ context.Context, o *order.Order, r *rider.Profile) {
	fields := []zap.Field{
		zap.String("order_id", o.ID().String()),
		zap.String("order_number", o.Number()),
	}
	if r != nil {
		fields = append(fields, zap.String("rider_id", r.UserID().String()), zap.String("rider_name", r.FullName()))
	}
	s.logger.Info(OrderRiderAssignedEvent, fields...)
}

func (s *LogSink) Close() error { return nil }
