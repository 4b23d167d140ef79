package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-ChaletBookingService/internal/domain"
)

// MessageWriter часть *kafka.Writer, которая нужна издателю
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события смены статуса брони в топик Kafka
// Ключ сообщения - ID брони, поэтому события одной брони попадают в одну партицию по порядку
type KafkaPublisher struct {
	w        MessageWriter
	producer string
	now      func() time.Time
}

// NewKafkaWriter создает writer для топика событий
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// NewKafkaPublisher создает издателя поверх writer
func NewKafkaPublisher(w MessageWriter, producer string) *KafkaPublisher {
	return &KafkaPublisher{
		w:        w,
		producer: producer,
		now:      time.Now,
	}
}

// PublishStatusChanged публикует текущее состояние брони после перехода
func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, b *domain.Booking) error {
	payload, err := json.Marshal(payloadFrom(b))
	if err != nil {
		return fmt.Errorf("%w: PublishStatusChanged - payload: %v", ErrMarshal, err)
	}

	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventTypeFor(b.Status),
		EventVersion:  envelopeVersion,
		OccurredAt:    p.now().UTC(),
		Producer:      p.producer,
		CorrelationID: b.Reference,
		Payload:       payload,
	}

	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: PublishStatusChanged - envelope: %v", ErrMarshal, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(b.ID, 10)),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
		},
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: booking id=%d: %v", ErrPublish, b.ID, err)
	}

	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) PublishStatusChanged(context.Context, *domain.Booking) error { return nil }

func (NopPublisher) Close() error { return nil }
