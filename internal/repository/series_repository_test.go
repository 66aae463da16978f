package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
	pkgkafka "Denominator/pkg/kafka"
)

var run = repository.ExportRun{Mode: "hybrid", Seed: 42, Fingerprint: "abc123"}

func rows(n int) []models.LiquidityDataPoint {
	out := make([]models.LiquidityDataPoint, n)
	for i := range out {
		out[i] = models.LiquidityDataPoint{Date: models.MonthlyLabel(2020, i%12+1), Year: 2020 + i/12, Month: i%12 + 1}
	}
	return out
}

func TestInsertStatementShape(t *testing.T) {
	q := insertStatement("liquidity_series", 2)
	assert.True(t, strings.HasPrefix(q, "INSERT INTO liquidity_series (fingerprint, mode, seed, ordinal"))
	assert.Equal(t, 2*len(seriesColumns), strings.Count(q, "?"))
	assert.Equal(t, 1, strings.Count(q, "),("))
}

func TestRowArgsMatchColumns(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	row := models.LiquidityDataPoint{Date: "Mar 2021", Year: 2021, Month: 3, DenominatorIndex: 4100.2}
	args := rowArgs(run, row, at)

	require.Len(t, args, len(seriesColumns))
	assert.Equal(t, "abc123", args[0])
	assert.Equal(t, int32(2021*12+2), args[3])
	assert.Equal(t, uint8(3), args[6])
	assert.Equal(t, 4100.2, args[20])
	assert.Equal(t, at, args[len(args)-1])
}

func TestSchemaNamesTable(t *testing.T) {
	e := NewClickHouseSeriesExporter(nil, "liquidity_series")
	ddl := e.Schema()
	require.Len(t, ddl, 1)
	assert.Contains(t, ddl[0], "CREATE TABLE IF NOT EXISTS liquidity_series")
	assert.Contains(t, ddl[0], "ORDER BY (fingerprint, ordinal)")
	for _, col := range seriesColumns {
		assert.Contains(t, ddl[0], col)
	}
}

type fakeProducer struct {
	batches [][]pkgkafka.Message
	err     error
	closed  bool
}

func (f *fakeProducer) PublishBatch(_ context.Context, msgs []pkgkafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, msgs)
	return nil
}

func (f *fakeProducer) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherBatchesRowsByDate(t *testing.T) {
	fp := &fakeProducer{}
	p := NewKafkaSeriesPublisher(fp, 5)

	require.NoError(t, p.Publish(context.Background(), run, rows(12)))
	require.Len(t, fp.batches, 3)
	assert.Len(t, fp.batches[2], 2)

	first := fp.batches[0][0]
	assert.Equal(t, []byte("Jan 2020"), first.Key)
	rec, ok := first.Value.(SeriesRecord)
	require.True(t, ok)
	assert.Equal(t, "abc123", rec.Fingerprint)
	assert.Equal(t, 2020*12, rec.Ordinal)
	assert.Equal(t, "42", first.Headers["seed"])

	require.NoError(t, p.Close())
	assert.True(t, fp.closed)
}

func TestKafkaPublisherPropagatesErrors(t *testing.T) {
	boom := errors.New("broker down")
	p := NewKafkaSeriesPublisher(&fakeProducer{err: boom}, 0)
	assert.ErrorIs(t, p.Publish(context.Background(), run, rows(3)), boom)
	assert.NoError(t, p.Publish(context.Background(), run, nil))
}
