package intent_repo

import (
	"context"
	"fmt"
	"time"

	"paymentrelay/internal/domain/callback"
	"paymentrelay/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// PgIntentLog persists transition intents in callback_intents. An intent
// stuck in pending or payment_committed marks a transition that died between
// the two store writes; the reconciler replays or repairs it out of band.
type PgIntentLog struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ callback.IntentLog = (*PgIntentLog)(nil)

func NewPgIntentLog(pg *postgres.Postgres) *PgIntentLog {
	return &PgIntentLog{db: pg.Pool, builder: pg.Builder}
}

func (r *PgIntentLog) Begin(ctx context.Context, intent callback.Intent) error {
	query, args, err := r.builder.Insert("callback_intents").
		Columns("id", "merchant_order_id", "reference", "result_code",
			"payment_status", "order_status", "state", "created_at", "updated_at").
		Values(intent.ID, intent.MerchantOrderID, intent.Reference, intent.ResultCode,
			intent.PaymentStatus, intent.OrderStatus, callback.IntentPending,
			squirrel.Expr("now()"), squirrel.Expr("now()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build intent insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert intent: %w: %w", callback.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *PgIntentLog) MarkState(ctx context.Context, id uuid.UUID, state callback.IntentState) error {
	query, args, err := r.builder.Update("callback_intents").
		Set("state", state).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build intent update: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark intent %s: %w", id, err)
	}
	return nil
}

// FindStale lists intents that never reached fulfilled, for the reconciler.
// The cutoff keeps in-flight callbacks out of the result: an intent only
// counts as stale once it has sat untouched for longer than olderThan.
func (r *PgIntentLog) FindStale(ctx context.Context, olderThan time.Duration, limit uint64) ([]callback.Intent, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	query, args, err := r.builder.
		Select("id", "merchant_order_id", "reference", "result_code", "payment_status", "order_status", "state").
		From("callback_intents").
		Where(squirrel.NotEq{"state": callback.IntentFulfilled}).
		Where(squirrel.Lt{"updated_at": cutoff}).
		OrderBy("created_at").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stale intents query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stale intents: %w", err)
	}
	defer rows.Close()

	var intents []callback.Intent
	for rows.Next() {
		var it callback.Intent
		if err := rows.Scan(&it.ID, &it.MerchantOrderID, &it.Reference,
			&it.ResultCode, &it.PaymentStatus, &it.OrderStatus, &it.State); err != nil {
			return nil, fmt.Errorf("scan intent row: %w", err)
		}
		intents = append(intents, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intent rows: %w", err)
	}

	return intents, nil
}
