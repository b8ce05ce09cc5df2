package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Publisher публикует уведомления о бронированиях в Kafka
type Publisher struct {
	writer      MessageWriter
	topicPrefix string
	timeout     time.Duration
	log         Logger

	wg sync.WaitGroup
}

// NewPublisher создает публикатор. При пустом списке брокеров уведомления отключены
func NewPublisher(brokers, topicPrefix string, timeout time.Duration, log Logger) *Publisher {
	addrs := SplitBrokers(brokers)
	if len(addrs) == 0 {
		log.Warn("Notifications disabled: no kafka brokers configured")
		return NewPublisherWithWriter(nil, topicPrefix, timeout, log)
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
	}

	return NewPublisherWithWriter(writer, topicPrefix, timeout, log)
}

// NewPublisherWithWriter создает публикатор поверх готового writer
func NewPublisherWithWriter(writer MessageWriter, topicPrefix string, timeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		writer:      writer,
		topicPrefix: topicPrefix,
		timeout:     timeout,
		log:         log,
	}
}

// Topic возвращает топик для типа события
func (p *Publisher) Topic(eventType EventType) string {
	return p.topicPrefix + "." + string(eventType)
}

// Notify публикует событие в фоне и не ждет результата.
// Отмена ctx вызывающего не прерывает публикацию.
func (p *Publisher) Notify(ctx context.Context, event BookingEvent) {
	if p.writer == nil {
		return
	}

	detached := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.Publish(detached, event); err != nil {
			p.log.Warn("Failed to publish %s notification for project_id=%d: %v", event.Type, event.ProjectID, err)
		}
	}()
}

// Publish синхронно публикует событие
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	if p.writer == nil {
		return ErrDisabled
	}

	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	topic := p.Topic(event.Type)
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(event.ProjectID, 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(topic)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s: %v", ErrPublish, topic, err)
	}

	p.log.Info("Notification published: topic=%s, event_id=%s, project_id=%d", topic, event.EventID, event.ProjectID)
	return nil
}

// Close дожидается фоновых публикаций и закрывает writer
func (p *Publisher) Close() error {
	p.wg.Wait()
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
