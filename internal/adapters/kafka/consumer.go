package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"rotape-service/internal/ports/models"
	"rotape-service/internal/server/service"

	"github.com/segmentio/kafka-go"
)

// TallyConsumer reads preference.submitted messages and rebuilds the cached
// tally for the affected event. Recomputation is idempotent, so at-least-once
// delivery is fine.
type TallyConsumer struct {
	reader *kafka.Reader
	prefs  service.PreferenceStore
	tally  service.TallyCache
}

func NewTallyConsumer(brokers []string, topic, group string, prefs service.PreferenceStore, tally service.TallyCache) *TallyConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &TallyConsumer{
		reader: reader,
		prefs:  prefs,
		tally:  tally,
	}
}

// Run consumes until the context is cancelled
func (c *TallyConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		if err := c.handle(ctx, msg.Value); err != nil {
			slog.Error("handling preference message failed", "error", err)
			// Fall through and commit anyway; the next submission for the
			// event triggers another recompute.
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			slog.Error("committing offset failed", "error", err)
		}
	}
}

func (c *TallyConsumer) handle(ctx context.Context, value []byte) error {
	var msg models.PreferenceMessage
	if err := json.Unmarshal(value, &msg); err != nil {
		return err
	}

	list, err := c.prefs.ListByEvent(ctx, msg.EventID)
	if err != nil {
		return err
	}
	if err := c.tally.Set(ctx, service.ComputeVoteTally(msg.EventID, list)); err != nil {
		return err
	}

	slog.Info("tally refreshed", "event_id", msg.EventID, "preferences", len(list))
	return nil
}

// Close shuts the reader down
func (c *TallyConsumer) Close() error {
	return c.reader.Close()
}
