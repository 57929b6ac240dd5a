package ingest

import (
	"context"
	"fmt"
	"time"

	"aquabot_telemetry/internal/logger"
	"aquabot_telemetry/internal/models"
	"aquabot_telemetry/internal/service"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout    = 10 * time.Second
	ingestTimeout     = 5 * time.Second
	disconnectQuiesce = 250 // ms
)

// ErrInvalidPayload marks a message that is not a JSON reading object.
var ErrInvalidPayload = models.ErrInvalidReading

// Options configures the MQTT subscription.
type Options struct {
	Broker   string
	Topic    string
	ClientID string
	QoS      byte
	Username string
	Password string
}

// Subscriber feeds readings published by the boat over MQTT into the same ingest
// path as POST /api/data. Messages are handled one at a time in arrival order.
type Subscriber struct {
	client mqtt.Client
	topic  string
	qos    byte
	ingest service.Ingester
	log    *logger.Logger
}

func NewSubscriber(opts Options, ing service.Ingester, log *logger.Logger) *Subscriber {
	if log == nil {
		log = logger.Nop()
	}
	s := &Subscriber{
		topic:  opts.Topic,
		qos:    opts.QoS,
		ingest: ing,
		log:    log,
	}

	co := mqtt.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetAutoReconnect(true).
		SetCleanSession(false).
		SetOnConnectHandler(s.subscribe).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warnw("mqtt_connection_lost", "err", err)
		})
	if opts.Username != "" {
		co.SetUsername(opts.Username)
		co.SetPassword(opts.Password)
	}
	s.client = mqtt.NewClient(co)
	return s
}

// Run connects and consumes until ctx is canceled.
func (s *Subscriber) Run(ctx context.Context) error {
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect: timed out after %s", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect: %w", err)
	}

	<-ctx.Done()
	s.client.Disconnect(disconnectQuiesce)
	return nil
}

// subscribe runs on every (re)connect.
func (s *Subscriber) subscribe(c mqtt.Client) {
	token := c.Subscribe(s.topic, s.qos, s.onMessage)
	if token.WaitTimeout(connectTimeout) && token.Error() == nil {
		s.log.Infow("mqtt_subscribed", "topic", s.topic, "qos", s.qos)
		return
	}
	s.log.Errorw("mqtt_subscribe_failed", "topic", s.topic, "err", token.Error())
}

func (s *Subscriber) onMessage(_ mqtt.Client, msg mqtt.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	if err := s.Handle(ctx, msg.Payload()); err != nil {
		s.log.Errorw("mqtt_ingest_failed", "topic", msg.Topic(), "err", err)
	}
}

// Handle decodes one payload the same way POST /api/data does and ingests it.
func (s *Subscriber) Handle(ctx context.Context, payload []byte) error {
	r, err := models.DecodeReading(payload)
	if err != nil {
		return err
	}
	stored, err := s.ingest.Ingest(ctx, r)
	if err != nil {
		return err
	}
	s.log.Debugw("mqtt_reading_ingested", "id", stored.ID, "alert", stored.Alert)
	return nil
}
