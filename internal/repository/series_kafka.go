package repository

import (
	"context"
	"strconv"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
	pkgkafka "Denominator/pkg/kafka"
)

// batchWriter is the slice of pkg/kafka.Producer the publisher needs.
type batchWriter interface {
	PublishBatch(ctx context.Context, messages []pkgkafka.Message) error
	Close() error
}

// SeriesRecord is the Kafka message value: one series row plus its run identity.
type SeriesRecord struct {
	Fingerprint string                    `json:"fingerprint"`
	Mode        string                    `json:"mode"`
	Seed        uint32                    `json:"seed"`
	Ordinal     int                       `json:"ordinal"`
	Row         models.LiquidityDataPoint `json:"row"`
}

// KafkaSeriesPublisher publishes one message per row keyed by the row's date label.
type KafkaSeriesPublisher struct {
	producer  batchWriter
	batchSize int
}

// NewKafkaSeriesPublisher creates the publisher. batchSize bounds rows per write call.
func NewKafkaSeriesPublisher(producer batchWriter, batchSize int) *KafkaSeriesPublisher {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &KafkaSeriesPublisher{producer: producer, batchSize: batchSize}
}

var _ repository.SeriesPublisher = (*KafkaSeriesPublisher)(nil)

func (p *KafkaSeriesPublisher) Publish(ctx context.Context, run repository.ExportRun, rows []models.LiquidityDataPoint) error {
	for start := 0; start < len(rows); start += p.batchSize {
		end := min(start+p.batchSize, len(rows))
		msgs := make([]pkgkafka.Message, 0, end-start)
		for _, r := range rows[start:end] {
			msgs = append(msgs, pkgkafka.Message{
				Key: []byte(r.Date),
				Value: SeriesRecord{
					Fingerprint: run.Fingerprint,
					Mode:        run.Mode,
					Seed:        run.Seed,
					Ordinal:     r.Ordinal(),
					Row:         r,
				},
				Headers: map[string]string{
					"mode":        run.Mode,
					"fingerprint": run.Fingerprint,
					"seed":        strconv.FormatUint(uint64(run.Seed), 10),
				},
			})
		}
		if err := p.producer.PublishBatch(ctx, msgs); err != nil {
			return err
		}
	}
	return nil
}

func (p *KafkaSeriesPublisher) Close() error {
	return p.producer.Close()
}
