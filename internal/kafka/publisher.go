// Package kafka publishes completed risk assessments for downstream
// consumers. Inbound data never arrives through here; price ingestion is an
// external collaborator's concern.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/xplaincrypto/risk-engine/pkg/models"
	"github.com/xplaincrypto/risk-engine/pkg/utils/errors"
	"github.com/xplaincrypto/risk-engine/pkg/utils/logger"
)

// PublisherConfig configures the assessment publisher.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// Publisher writes assessments to a Kafka topic as JSON, keyed by portfolio
// ID so all assessments of one portfolio land on the same partition.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(config PublisherConfig) *Publisher {
	batchTimeout := config.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = 100 * time.Millisecond
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(config.Brokers...),
			Topic:        config.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: batchTimeout,
			RequiredAcks: kafka.RequireAll,
		},
		log: logger.GetLogger("kafka.publisher"),
	}
}

// PublishAssessment writes one assessment.
func (p *Publisher) PublishAssessment(ctx context.Context, assessment *models.RiskAssessment) error {
	payload, err := json.Marshal(assessment)
	if err != nil {
		return errors.Wrap(err, "failed to encode assessment")
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(assessment.PortfolioID),
		Value: payload,
		Time:  assessment.Timestamp,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to publish assessment for portfolio %s", assessment.PortfolioID)
	}

	p.log.Debugf("published assessment for portfolio %s (%d bytes)", assessment.PortfolioID, len(payload))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
