package storage

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/janelia-flyem/downsample/dvid"

	"github.com/Shopify/sarama"
)

// KafkaMaxMessageSize is the max message size in bytes for a Kafka message.
const KafkaMaxMessageSize = 980 * dvid.Kilo

// KafkaConfig describes the kafka servers and topic that receive completion events.
type KafkaConfig struct {
	Servers  []string `toml:"servers" yaml:"servers"`
	Topic    string   `toml:"topic" yaml:"topic"`
	Encoding string   `toml:"encoding" yaml:"encoding"` // "json" (default) or "msgpack"
}

// EventPublisher sends completion events to a kafka topic.
type EventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	msgpack  bool
}

// NewEventPublisher returns a publisher using an established producer.
func NewEventPublisher(producer sarama.SyncProducer, topic, encoding string) (*EventPublisher, error) {
	p := &EventPublisher{producer: producer, topic: topic}
	switch strings.ToLower(encoding) {
	case "", "json":
	case "msgpack":
		p.msgpack = true
	default:
		return nil, dvid.ArgumentError("unknown kafka event encoding %q", encoding)
	}
	if topic == "" {
		return nil, dvid.ArgumentError("kafka servers given without a topic")
	}
	return p, nil
}

// Initialize connects to the configured servers.  It returns nil without error
// if no servers are configured.
func (kc KafkaConfig) Initialize() (*EventPublisher, error) {
	if len(kc.Servers) == 0 {
		dvid.Debugf("No Kafka server specified.\n")
		return nil, nil
	}
	config := sarama.NewConfig()
	config.Producer.MaxMessageBytes = KafkaMaxMessageSize
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true
	producer, err := sarama.NewSyncProducer(kc.Servers, config)
	if err != nil {
		return nil, dvid.IOError(err, "cannot connect to kafka servers %v", kc.Servers)
	}
	p, err := NewEventPublisher(producer, kc.Topic, kc.Encoding)
	if err != nil {
		producer.Close()
		return nil, err
	}
	dvid.Infof("Kafka topic for tile events: %s\n", kc.Topic)
	return p, nil
}

// Encode returns the event in the publisher's encoding.
func (p *EventPublisher) Encode(ev *TileEvent) ([]byte, error) {
	if p.msgpack {
		return ev.MarshalMsg(nil)
	}
	return json.Marshal(ev)
}

// Publish sends the event and waits for the brokers to acknowledge it.
func (p *EventPublisher) Publish(ev *TileEvent) error {
	value, err := p.Encode(ev)
	if err != nil {
		return err
	}
	timeKey := sarama.StringEncoder(strconv.FormatInt(time.Now().UnixNano(), 10))
	msg := &sarama.ProducerMessage{Topic: p.topic, Value: sarama.ByteEncoder(value), Key: timeKey}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return dvid.IOError(err, "cannot produce message to %s", p.topic)
	}
	dvid.Debugf("Published event for split %d to %s:%d @ %d\n", ev.Split, p.topic, partition, offset)
	return nil
}

// Close makes sure that the producer is flushed before stopping.
func (p *EventPublisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		dvid.Errorf("Kafka producer had error on close: %v\n", err)
		return err
	}
	return nil
}
