package payment_repo

import (
	"context"
	"errors"
	"fmt"

	"paymentrelay/internal/domain/callback"
	"paymentrelay/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgPaymentRepo updates payment rows by (payment_id, reference). Rows are
// created by the order-creation flow outside this service; a conditional
// update that matches nothing is a PaymentNotFound, never an insert.
type PgPaymentRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func NewPgPaymentRepo(pg *postgres.Postgres) *PgPaymentRepo {
	return &PgPaymentRepo{db: pg.Pool, builder: pg.Builder}
}

func (r *PgPaymentRepo) ApplyCallback(ctx context.Context, key callback.PaymentKey, upd callback.PaymentUpdate) (callback.PaymentRecord, error) {
	query, args, err := r.builder.Update("payments").
		Set("payment_method", upd.Method).
		Set("payment_status", upd.Status).
		Set("publisher_order_id", upd.PublisherOrderID).
		Set("merchant_user_id", upd.MerchantUserID).
		Set("sp_user_hash", upd.SpUserHash).
		Set("settlement_date", upd.SettlementDate).
		Set("paid_at", upd.PaidAt).
		Set("issuer_code", upd.IssuerCode).
		Where(squirrel.Eq{"payment_id": key.PaymentID, "reference": key.Reference}).
		Suffix("RETURNING payment_id, reference, order_id, payment_status").
		ToSql()
	if err != nil {
		return callback.PaymentRecord{}, fmt.Errorf("build payment update query: %w", err)
	}

	var record callback.PaymentRecord
	err = r.db.QueryRow(ctx, query, args...).
		Scan(&record.PaymentID, &record.Reference, &record.OrderID, &record.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return callback.PaymentRecord{}, callback.ErrPaymentNotFound
		}
		return callback.PaymentRecord{}, fmt.Errorf("update payment: %w: %w", callback.ErrStoreUnavailable, err)
	}

	return record, nil
}
