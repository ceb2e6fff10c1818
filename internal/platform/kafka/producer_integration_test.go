//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/chiboi241-boop/EduScience/internal/platform/config"
	"github.com/chiboi241-boop/EduScience/internal/platform/kafka"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
	"github.com/chiboi241-boop/EduScience/pkg/platform/audit"
	"github.com/chiboi241-boop/EduScience/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	broker   string
	producer *kafka.Producer
	cfg      config.KafkaConfig
	ctx      context.Context
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	s.ctx = context.Background()
	s.broker = containers.GetManager().GetRedpanda(s.T()).Broker
	s.cfg = config.KafkaConfig{
		Brokers:           []string{s.broker},
		AuditTopic:        "registry.audit.test",
		ClientID:          "registry-test",
		Partitions:        2,
		ReplicationFactor: 1,
	}

	producer, err := kafka.NewProducer(s.ctx, s.cfg)
	s.Require().NoError(err)
	s.Require().NotNil(producer)
	s.producer = producer
}

func (s *ProducerSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
}

func (s *ProducerSuite) TestHealth() {
	s.NoError(s.producer.Health(s.ctx))
}

func (s *ProducerSuite) TestEnsureTopicIsIdempotent() {
	s.Require().NoError(s.producer.EnsureTopic(s.ctx, s.cfg.Partitions, s.cfg.ReplicationFactor))
	s.Require().NoError(s.producer.EnsureTopic(s.ctx, s.cfg.Partitions, s.cfg.ReplicationFactor))

	client, err := kgo.NewClient(kgo.SeedBrokers(s.broker))
	s.Require().NoError(err)
	defer client.Close()

	details, err := kadm.NewClient(client).ListTopics(s.ctx, s.cfg.AuditTopic)
	s.Require().NoError(err)
	topic, ok := details[s.cfg.AuditTopic]
	s.Require().True(ok)
	s.Len(topic.Partitions, int(s.cfg.Partitions))
}

func (s *ProducerSuite) TestAuditSinkRoundTrip() {
	s.Require().NoError(s.producer.EnsureTopic(s.ctx, s.cfg.Partitions, s.cfg.ReplicationFactor))

	id := domain.ContributionID(3)
	event := audit.Event{
		Action:         audit.ActionContributionApproved,
		Actor:          "ST1AUTHORITY",
		Height:         9,
		ContributionID: &id,
	}
	event.Normalize(time.Now())
	s.Require().NoError(kafka.NewAuditSink(s.producer).Publish(s.ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.broker),
		kgo.ConsumeTopics(s.cfg.AuditTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	for {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "timed out waiting for audit record")
		var found *kgo.Record
		fetches.EachRecord(func(r *kgo.Record) {
			var got audit.Event
			if json.Unmarshal(r.Value, &got) == nil && got.ID == event.ID {
				found = r
			}
		})
		if found == nil {
			continue
		}
		s.Equal("contribution:3", string(found.Key))
		headers := map[string]string{}
		for _, h := range found.Headers {
			headers[h.Key] = string(h.Value)
		}
		s.Equal(string(audit.ActionContributionApproved), headers["action"])
		s.Equal(event.ID.String(), headers["event_id"])
		return
	}
}
