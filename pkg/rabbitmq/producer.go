package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher is implemented by event publishers.
type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body any) error
	Close()
}

// EventProducer publishes JSON events on a topic exchange.
// An amqp channel is not safe for concurrent use, so publishes are serialized.
// When the broker drops the connection the next Publish redials, at most once per redialInterval.
type EventProducer struct {
	url     string
	conn    *amqp091.Connection
	channel *amqp091.Channel
	mu      sync.Mutex

	stopped    bool
	nextRedial time.Time
	declared   map[string]bool
	log        *zap.Logger
}

const redialInterval = 5 * time.Second

// EventProducerFallback logs events instead of sending them. Used when no broker is configured or reachable.
type EventProducerFallback struct {
	log *zap.Logger
}

func NewEventProducerFallback(log *zap.Logger) *EventProducerFallback {
	return &EventProducerFallback{log: log.With(zap.String("publisher", "fallback"))}
}

func (p *EventProducerFallback) Publish(ctx context.Context, exchange, routingKey string, body any) error {
	p.log.Info("Event not sent, no broker",
		zap.String("exchange", exchange),
		zap.String("routing_key", routingKey),
		zap.Any("body", body),
	)
	return nil
}

func (p *EventProducerFallback) Close() {}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	lower := strings.ToLower(clean)
	for _, scheme := range []string{"amqp://", "amqps://"} {
		if idx := strings.Index(lower, scheme); idx > 0 {
			clean = clean[idx:]
			break
		}
	}

	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("AMQP scheme must be either 'amqp://' or 'amqps://'")
	}
	return clean, nil
}

func NewEventProducer(amqpURL string, log *zap.Logger) (*EventProducer, error) {
	cleanURL, err := sanitizeAMQPURL(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("amqp url: %w", err)
	}

	p := &EventProducer{
		url:      cleanURL,
		declared: map[string]bool{},
		log:      log.With(zap.String("publisher", "amqp")),
	}
	if err := p.dial(); err != nil {
		return nil, err
	}
	return p, nil
}

// dial opens a connection and channel. Callers hold p.mu, except NewEventProducer.
func (p *EventProducer) dial() error {
	conn, err := amqp091.DialConfig(p.url, amqp091.Config{Dial: amqp091.DefaultDial(10 * time.Second)})
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open amqp channel: %w", err)
	}

	p.conn = conn
	p.channel = ch
	p.declared = map[string]bool{}
	go p.watch(conn, ch)
	return nil
}

// watch drops the channel once the broker closes it or its connection.
func (p *EventProducer) watch(conn *amqp091.Connection, ch *amqp091.Channel) {
	connClosed := conn.NotifyClose(make(chan *amqp091.Error, 1))
	chClosed := ch.NotifyClose(make(chan *amqp091.Error, 1))

	var reason *amqp091.Error
	select {
	case reason = <-connClosed:
	case reason = <-chClosed:
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != ch {
		return
	}
	if !conn.IsClosed() {
		_ = conn.Close()
	}
	p.conn = nil
	p.channel = nil

	if reason != nil {
		p.log.Warn("RabbitMQ connection lost", zap.String("reason", reason.Reason), zap.Int("code", reason.Code))
	}
}

// reconnect must be called with p.mu held.
func (p *EventProducer) reconnect() error {
	if p.stopped {
		return errors.New("rabbitmq producer closed")
	}

	now := time.Now()
	if now.Before(p.nextRedial) {
		return errors.New("rabbitmq unavailable, waiting to redial")
	}
	p.nextRedial = now.Add(redialInterval)

	if err := p.dial(); err != nil {
		return fmt.Errorf("reconnect: %w", err)
	}

	p.log.Info("RabbitMQ reconnected")
	return nil
}

// Publish declares the exchange on first use and sends body as JSON.
func (p *EventProducer) Publish(ctx context.Context, exchange, routingKey string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		if err := p.reconnect(); err != nil {
			return err
		}
	}

	if !p.declared[exchange] {
		if err := p.channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare exchange %s: %w", exchange, err)
		}
		p.declared[exchange] = true
	}

	err = p.channel.PublishWithContext(ctx, exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         payload,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("Event published",
		zap.String("exchange", exchange),
		zap.String("routing_key", routingKey),
	)
	return nil
}

func (p *EventProducer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopped = true
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Connect returns an AMQP producer, or the logging fallback when amqpURL is empty or the broker cannot be reached.
func Connect(amqpURL string, log *zap.Logger) Publisher {
	if strings.TrimSpace(amqpURL) == "" {
		log.Info("AMQP_URL not set, events will only be logged")
		return NewEventProducerFallback(log)
	}

	producer, err := NewEventProducer(amqpURL, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, events will only be logged", zap.Error(err))
		return NewEventProducerFallback(log)
	}

	log.Info("RabbitMQ connected")
	return producer
}
