package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"Denominator/internal/domain/models"
	"Denominator/internal/domain/repository"
)

// seriesColumns is the insert column order; rowArgs must match it.
var seriesColumns = []string{
	"fingerprint", "mode", "seed", "ordinal", "date", "year", "month",
	"m2_us", "m2_eu", "m2_japan", "m2_china", "m2_global",
	"fed_bs", "ecb_bs", "boj_bs", "pboc_bs", "cb_total",
	"tga", "rrp", "net_liquidity", "denominator_index",
	"gold_usd", "gold_real", "gold_index",
	"sp500", "equities_mcap", "bonds_mcap", "realestate_mcap", "gold_mcap", "bitcoin_mcap",
	"exported_at",
}

const insertChunk = 500

// ClickHouseSeriesExporter writes series rows into a ReplacingMergeTree keyed by
// (fingerprint, ordinal), so re-exporting the same series is idempotent.
type ClickHouseSeriesExporter struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

// NewClickHouseSeriesExporter creates the exporter.
func NewClickHouseSeriesExporter(db *sql.DB, table string) *ClickHouseSeriesExporter {
	return &ClickHouseSeriesExporter{db: db, table: table, now: time.Now}
}

var _ repository.SeriesExporter = (*ClickHouseSeriesExporter)(nil)

// Schema returns the DDL for the series table.
func (s *ClickHouseSeriesExporter) Schema() []string {
	return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	fingerprint String,
	mode LowCardinality(String),
	seed UInt32,
	ordinal Int32,
	date String,
	year UInt16,
	month UInt8,
	m2_us Float64, m2_eu Float64, m2_japan Float64, m2_china Float64, m2_global Float64,
	fed_bs Float64, ecb_bs Float64, boj_bs Float64, pboc_bs Float64, cb_total Float64,
	tga Float64, rrp Float64, net_liquidity Float64, denominator_index Float64,
	gold_usd Float64, gold_real Float64, gold_index Float64,
	sp500 Float64, equities_mcap Float64, bonds_mcap Float64, realestate_mcap Float64,
	gold_mcap Float64, bitcoin_mcap Float64,
	exported_at DateTime
) ENGINE = ReplacingMergeTree(exported_at)
ORDER BY (fingerprint, ordinal)`, s.table)}
}

func (s *ClickHouseSeriesExporter) Init(ctx context.Context) error {
	for _, stmt := range s.Schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", s.table, err)
		}
	}
	return nil
}

// Export inserts rows in multi-row VALUES chunks.
func (s *ClickHouseSeriesExporter) Export(ctx context.Context, run repository.ExportRun, rows []models.LiquidityDataPoint) error {
	if len(rows) == 0 {
		return nil
	}
	at := s.now().UTC().Truncate(time.Second)

	for start := 0; start < len(rows); start += insertChunk {
		end := min(start+insertChunk, len(rows))
		args := make([]interface{}, 0, (end-start)*len(seriesColumns))
		for _, r := range rows[start:end] {
			args = append(args, rowArgs(run, r, at)...)
		}
		if _, err := s.db.ExecContext(ctx, insertStatement(s.table, end-start), args...); err != nil {
			return fmt.Errorf("insert rows %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func (s *ClickHouseSeriesExporter) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the pool belongs to pkg/clickhouse.Client.
func (s *ClickHouseSeriesExporter) Close() error {
	return nil
}

func insertStatement(table string, n int) string {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(seriesColumns)), ", ") + ")"
	values := make([]string, n)
	for i := range values {
		values[i] = tuple
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(seriesColumns, ", "), strings.Join(values, ","))
}

func rowArgs(run repository.ExportRun, r models.LiquidityDataPoint, at time.Time) []interface{} {
	return []interface{}{
		run.Fingerprint, run.Mode, run.Seed, int32(r.Ordinal()), r.Date, uint16(r.Year), uint8(r.Month),
		r.M2US, r.M2EU, r.M2Japan, r.M2China, r.M2Global,
		r.FedBS, r.ECBBS, r.BoJBS, r.PBoCBS, r.CBTotal,
		r.TGA, r.RRP, r.NetLiquidity, r.DenominatorIndex,
		r.GoldUSD, r.GoldReal, r.GoldIndex,
		r.SP500, r.EquitiesMcap, r.BondsMcap, r.RealEstateMcap, r.GoldMcap, r.BitcoinMcap,
		at,
	}
}
