package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	Publish(ctx context.Context, key string, message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer checks the broker and creates the topic. When the broker is unreachable it
// returns a producer that only logs, so renders keep working without Kafka.
func NewProducer(broker, topic string) Producer {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		logrus.WithFields(logrus.Fields{"broker": broker, "error": err}).Warn("Kafka connection failed, using log producer")
		return NewLogProducer()
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.WithField("topic", topic).Infof("Could not create topic (might already exist): %v", err)
	}

	logrus.WithFields(logrus.Fields{"broker": broker, "topic": topic}).Info("Connected to Kafka")
	return &kafkaProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		topic: topic,
	}
}

func (p *kafkaProducer) Publish(ctx context.Context, key string, message interface{}) error {
	value, err := json.Marshal(message)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"topic": p.topic, "key": key}).Debug("Message sent")
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

type logProducer struct{}

// NewLogProducer returns a producer that logs messages instead of sending them.
func NewLogProducer() Producer {
	return &logProducer{}
}

func (m *logProducer) Publish(ctx context.Context, key string, message interface{}) error {
	logrus.WithField("key", key).Debugf("Event not sent, Kafka disabled: %+v", message)
	return nil
}

func (m *logProducer) Close() error {
	return nil
}
