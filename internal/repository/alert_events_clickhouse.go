package repository

import (
	"context"
	"fmt"
	"strings"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	pkgch "CryptoIntel/pkg/clickhouse"
	applogger "CryptoIntel/pkg/logger"

	"github.com/jmoiron/sqlx"
)

const alertEventColumns = "event_id, alert_id, user_id, token_symbol, alert_type, direction, threshold_value, current_value, triggered_at"

// CHAlertEventStore keeps the triggered alert history in ClickHouse.
type CHAlertEventStore struct {
	db    *sqlx.DB
	table string
	l     *applogger.Logger
}

func NewCHAlertEventStore(ch *pkgch.Client, table string) *CHAlertEventStore {
	if table == "" {
		table = "alert_events"
	}
	return &CHAlertEventStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *CHAlertEventStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHAlertEventStore) Init(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		event_id String,
		alert_id String,
		user_id String,
		token_symbol LowCardinality(String),
		alert_type LowCardinality(String),
		direction LowCardinality(String),
		threshold_value Float64,
		current_value Float64,
		triggered_at DateTime64(3, 'UTC')
	) ENGINE = ReplacingMergeTree
	PARTITION BY toYYYYMM(triggered_at)
	ORDER BY (user_id, triggered_at, event_id)`, s.table)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("init alert events: %w", err)
	}
	return nil
}

func (s *CHAlertEventStore) StoreBatch(ctx context.Context, events []models.AlertTriggeredEvent) error {
	if len(events) == 0 {
		return nil
	}
	const chunkSize = 1000
	for start := 0; start < len(events); start += chunkSize {
		end := min(start+chunkSize, len(events))

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*9)
		for _, e := range events[start:end] {
			if e.AlertID == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				e.EventID, e.AlertID, e.UserID, e.TokenSymbol, e.AlertType, e.Direction,
				e.ThresholdValue, e.CurrentValue, e.TriggeredAt.UTC(),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, alertEventColumns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse alert_events insert error", applogger.Int("rows", len(values)), applogger.Error(err))
			}
			return fmt.Errorf("store alert events: %w", err)
		}
	}
	return nil
}

// Recent returns the newest events of userID, newest first.
func (s *CHAlertEventStore) Recent(ctx context.Context, userID string, limit int) ([]models.AlertTriggeredEvent, error) {
	q := fmt.Sprintf("SELECT %s FROM %s FINAL WHERE user_id = ? ORDER BY triggered_at DESC LIMIT ?", alertEventColumns, s.table)
	out := []models.AlertTriggeredEvent{}
	if err := s.db.SelectContext(ctx, &out, q, userID, limit); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse alert_events query error", applogger.String("user_id", userID), applogger.Error(err))
		}
		return nil, fmt.Errorf("query alert events: %w", err)
	}
	return out, nil
}

func (s *CHAlertEventStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the connection pool belongs to pkg/clickhouse.
func (s *CHAlertEventStore) Close() error { return nil }

var _ drepo.AlertEventStore = (*CHAlertEventStore)(nil)
