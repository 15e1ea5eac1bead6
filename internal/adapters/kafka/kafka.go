package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"rotape-service/internal/ports/models"

	"github.com/IBM/sarama"
)

// InitKafkaProducer builds a sarama sync producer for match-result publishing
func InitKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "rotape-service"

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return producer, nil
}

// MatchProducer publishes resolved pairings, keyed by event so all results
// for one event land on the same partition.
type MatchProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewMatchProducer(producer sarama.SyncProducer, topic string) *MatchProducer {
	return &MatchProducer{producer: producer, topic: topic}
}

func (p *MatchProducer) PublishMatches(ctx context.Context, eventID uint, pairs []models.MatchPair) error {
	payload, err := json.Marshal(models.MatchResultMessage{EventID: eventID, Pairs: pairs})
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%d", eventID)),
		Value: sarama.ByteEncoder(payload),
	}
	_, _, err = p.producer.SendMessage(msg)
	return err
}

// Close shuts the underlying producer down
func (p *MatchProducer) Close() error {
	return p.producer.Close()
}
