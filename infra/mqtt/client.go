package mqtt

import (
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/tabibiq/matchengine/core/model"
	"github.com/tabibiq/matchengine/infra/logger"
)

// MatchRequestMessage is the wire envelope the directory collaborator
// publishes on the request topic: one consultation request together with
// the candidate pool snapshot it should be matched against.
type MatchRequestMessage struct {
	Request    model.ConsultationRequest `json:"request"`
	Candidates []model.DoctorCandidate   `json:"candidates"`
}

// RequestHandler is invoked for each decoded match request message.
type RequestHandler func(msg MatchRequestMessage)

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// PahoClient connects the engine to the outside world over MQTT: it feeds
// incoming match requests to a handler and publishes allocation results.
type PahoClient struct {
	cli    pahoClient
	cfg    Config
	logger logger.Logger
}

// NewPahoClient connects to the MQTT broker.
func NewPahoClient(cfg Config) (*PahoClient, error) {
	cfg.SetDefaults()
	log := logger.New("mqtt_client")

	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	return &PahoClient{cli: c, cfg: cfg, logger: log}, nil
}

// SubscribeRequests registers the handler for the request topic. Messages
// that do not decode are logged and dropped; a bad message must never take
// the feed down.
func (c *PahoClient) SubscribeRequests(handler RequestHandler) error {
	if handler == nil {
		return fmt.Errorf("mqtt: nil request handler")
	}
	token := c.cli.Subscribe(c.cfg.RequestTopic, c.cfg.QoS, func(_ paho.Client, m paho.Message) {
		var msg MatchRequestMessage
		if err := json.Unmarshal(m.Payload(), &msg); err != nil {
			c.logger.Errorf("dropping malformed match request: %v", err)
			return
		}
		handler(msg)
	})
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// PublishAllocation implements notify.Notifier by publishing the result as
// JSON on the allocation topic.
func (c *PahoClient) PublishAllocation(result model.AllocationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	token := c.cli.Publish(c.cfg.AllocationTopic, c.cfg.QoS, false, payload)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// Close disconnects from the broker.
func (c *PahoClient) Close() {
	if c.cli != nil && c.cli.IsConnected() {
		c.cli.Disconnect(250)
	}
}
