//go:build unit

package messaging_test

import (
	"context"
	"errors"
	"testing"

	"staybook/internal/infra/messaging"
	"staybook/internal/pkg/config"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaProducer_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("sends key, value and headers", func(t *testing.T) {
		sp := mocks.NewSyncProducer(t, nil)
		sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
			if msg.Topic != "booking.events.v1" {
				return errors.New("unexpected topic " + msg.Topic)
			}
			key, _ := msg.Key.Encode()
			if string(key) != "booking-1" {
				return errors.New("unexpected key " + string(key))
			}
			value, _ := msg.Value.Encode()
			if string(value) != `{"ok":true}` {
				return errors.New("unexpected value " + string(value))
			}
			if len(msg.Headers) != 1 || string(msg.Headers[0].Key) != "event-type" {
				return errors.New("unexpected headers")
			}
			return nil
		})

		p := messaging.NewKafkaProducerFrom(sp)
		err := p.Publish(ctx, "booking.events.v1", "booking-1", []byte(`{"ok":true}`), map[string]string{"event-type": "booking.created"})
		require.NoError(t, err)
		require.NoError(t, p.Close())
	})

	t.Run("broker failure is returned", func(t *testing.T) {
		sp := mocks.NewSyncProducer(t, nil)
		sp.ExpectSendMessageAndFail(sarama.ErrNotLeaderForPartition)

		p := messaging.NewKafkaProducerFrom(sp)
		err := p.Publish(ctx, "booking.events.v1", "k", []byte("{}"), nil)
		assert.ErrorIs(t, err, sarama.ErrNotLeaderForPartition)
		require.NoError(t, p.Close())
	})

	t.Run("cancelled context is not sent", func(t *testing.T) {
		sp := mocks.NewSyncProducer(t, nil)
		p := messaging.NewKafkaProducerFrom(sp)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := p.Publish(cctx, "booking.events.v1", "k", []byte("{}"), nil)
		assert.ErrorIs(t, err, context.Canceled)
		require.NoError(t, p.Close())
	})
}

func TestNewSaramaConfig(t *testing.T) {
	sc := messaging.NewSaramaConfig(config.KafkaConfig{Brokers: []string{"localhost:9092"}, ClientID: "staybook-test"})
	require.NoError(t, sc.Validate())
	assert.True(t, sc.Producer.Idempotent)
	assert.Equal(t, sarama.WaitForAll, sc.Producer.RequiredAcks)
	assert.Equal(t, 1, sc.Net.MaxOpenRequests)
	assert.Equal(t, "staybook-test", sc.ClientID)
}
