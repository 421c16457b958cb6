package health

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresChecker probes the payment and order store.
func NewPostgresChecker(pool *pgxpool.Pool) Checker {
	return pingChecker{name: "postgres", ping: pool.Ping}
}
