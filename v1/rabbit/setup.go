package rabbit

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

//go:generate mockgen -source=setup.go -destination=mock_logger.go -package=rabbit

// Logger is the logging surface the package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// RabbitClient publishes to one exchange over a confirm-mode channel and
// reconnects when the broker closes the connection.
type RabbitClient struct {
	cfg    Config
	logger Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	channel *amqp.Channel

	shutdownSignal    chan struct{}
	closeShutdownOnce sync.Once
}

// NewClient connects, opens the channel and declares the exchange.
func NewClient(cfg Config, logger Logger) (*RabbitClient, error) {
	cfg = cfg.withDefaults()

	conn, err := newConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to rabbit: %w", err)
	}
	ch, err := connectToChannel(conn, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("connected to rabbit", nil, map[string]interface{}{
		"host":     cfg.Connection.Host,
		"exchange": cfg.Channel.ExchangeName,
	})
	return &RabbitClient{
		cfg:            cfg,
		logger:         logger,
		conn:           conn,
		channel:        ch,
		shutdownSignal: make(chan struct{}),
	}, nil
}

func amqpURL(c Connection) string {
	scheme := "amqp"
	if c.IsSSLEnabled {
		scheme = "amqps"
	}
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + strconv.FormatUint(uint64(c.Port), 10),
	}
	if c.VHost != "" {
		u.Path = "/" + c.VHost
	}
	return u.String()
}

func newConnection(cfg Config) (*amqp.Connection, error) {
	amqpCfg := amqp.Config{Heartbeat: 10 * time.Second}
	if cfg.Connection.IsSSLEnabled {
		amqpCfg.TLSClientConfig = &tls.Config{ServerName: cfg.Connection.Host}
	}
	return amqp.DialConfig(amqpURL(cfg.Connection), amqpCfg)
}

func connectToChannel(conn *amqp.Connection, cfg Config) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Channel.ExchangeName,
		cfg.Channel.ExchangeType,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return ch, nil
}

// RetryConnection waits for the connection to close and re-establishes
// connection and channel until it succeeds. It returns on shutdown.
func (rb *RabbitClient) RetryConnection() {
outerLoop:
	for {
		rb.mu.RLock()
		errChan := rb.conn.NotifyClose(make(chan *amqp.Error, 1))
		rb.mu.RUnlock()

		select {
		case <-rb.shutdownSignal:
			return
		case amqpErr := <-errChan:
			rb.logger.Warn("rabbit connection closed, reconnecting", amqpErr)
		}

		for {
			select {
			case <-rb.shutdownSignal:
				return
			default:
			}

			conn, err := newConnection(rb.cfg)
			if err != nil {
				rb.logger.Error("rabbit reconnection failed", err)
				time.Sleep(rb.cfg.Channel.DelayToReconnect)
				continue
			}
			ch, err := connectToChannel(conn, rb.cfg)
			if err != nil {
				_ = conn.Close()
				rb.logger.Error("failed to re-establish rabbit channel", err)
				time.Sleep(rb.cfg.Channel.DelayToReconnect)
				continue
			}

			rb.mu.Lock()
			rb.conn, rb.channel = conn, ch
			rb.mu.Unlock()

			rb.logger.Info("reconnected to rabbit", nil)
			continue outerLoop
		}
	}
}

// GracefulShutdown stops the retry loop and closes channel and connection.
func (rb *RabbitClient) GracefulShutdown() error {
	rb.closeShutdownOnce.Do(func() {
		close(rb.shutdownSignal)
	})

	rb.mu.Lock()
	defer rb.mu.Unlock()
	if rb.channel != nil {
		_ = rb.channel.Close()
	}
	if rb.conn != nil && !rb.conn.IsClosed() {
		return rb.conn.Close()
	}
	return nil
}
