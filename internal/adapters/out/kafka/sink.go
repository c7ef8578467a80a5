// Package kafka publishes order notifications to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/model/rider"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// NewProducerConfig returns the sarama settings used for order events.
// Only errors are returned; successes are not read.
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 100 * time.Millisecond
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true
	cfg.Producer.Flush.Frequency = 200 * time.Millisecond
	cfg.Net.DialTimeout = 10 * time.Second
	cfg.ChannelBufferSize = 1024
	return cfg
}

// OrderEventSink implements ports.NotificationSink on a sarama AsyncProducer.
// Events are keyed by order id so one order's events stay ordered in a partition.
type OrderEventSink struct {
	producer sarama.AsyncProducer
	topic    string
	logger   *zap.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

func NewOrderEventSink(brokers []string, topic string, logger *zap.Logger) (*OrderEventSink, error) {
	producer, err := sarama.NewAsyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, err
	}
	return NewOrderEventSinkWithProducer(producer, topic, logger), nil
}

func NewOrderEventSinkWithProducer(producer sarama.AsyncProducer, topic string, logger *zap.Logger) *OrderEventSink {
	s := &OrderEventSink{
		producer: producer,
		topic:    topic,
		logger:   logger.With(zap.String("component", "kafka_sink"), zap.String("topic", topic)),
		now:      time.Now,
	}
	s.wg.Add(1)
	go s.drainErrors()
	return s
}

func (s *OrderEventSink) NotifyOrderCreated(_ context.Context, o *order.Order) {
	s.publish(newOrderEvent(OrderCreatedEvent, o, s.now()))
}

func (s *OrderEventSink) NotifyRiderAssigned(_ context.Context, o *order.Order, r *rider.Profile) {
	event := newOrderEvent(OrderRiderAssignedEvent, o, s.now())
	if r != nil {
		event.Rider = newRiderInfo(r)
	}
	s.publish(event)
}

// publish never blocks: when the producer buffer is full the event is dropped.
func (s *OrderEventSink) publish(event OrderEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("encode order event", zap.String("event_id", event.ID), zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
		Metadata: event.ID,
	}

	select {
	case s.producer.Input() <- msg:
	default:
		s.logger.Warn("producer buffer full, dropping order event",
			zap.String("event_id", event.ID),
			zap.String("event_type", event.Type),
			zap.String("order_number", event.OrderNumber))
	}
}

func (s *OrderEventSink) drainErrors() {
	defer s.wg.Done()
	for perr := range s.producer.Errors() {
		eventID, _ := perr.Msg.Metadata.(string)
		s.logger.Error("deliver order event", zap.String("event_id", eventID), zap.Error(perr.Err))
	}
}

// Close flushes buffered events and waits for the error reader to finish.
func (s *OrderEventSink) Close() error {
	s.producer.AsyncClose()
	s.wg.Wait()
	return nil
}
