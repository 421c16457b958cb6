package order_repo

import (
	"context"
	"fmt"

	"paymentrelay/internal/domain/callback"
	"paymentrelay/internal/domain/order"
	"paymentrelay/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// PgOrderRepo serves both the order read API (order.Repo) and the callback
// pipeline's order-side update (callback.OrderStore).
type PgOrderRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var (
	_ order.Repo          = (*PgOrderRepo)(nil)
	_ callback.OrderStore = (*PgOrderRepo)(nil)
)

func NewPgOrderRepo(pg *postgres.Postgres) *PgOrderRepo {
	return &PgOrderRepo{db: pg.Pool, builder: pg.Builder}
}

// UpdateStatus sets the status on one order row. Zero matched rows map to
// order.ErrNotFound so the pipeline can tell a missing order from a store fault.
func (r *PgOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status order.Status) error {
	query, args, err := r.builder.Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update order: %w: %w", callback.ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *PgOrderRepo) GetOrders(ctx context.Context, q *order.OrdersQuery) ([]order.Order, error) {
	query := r.builder.Select(
		"order_id", "customer_id", "order_date", "status",
		"address", "city", "district", "subdistrict", "province", "postal_code",
		"shipping_name", "service_type", "service_name", "shipping_cost", "is_cod", "estimated_delivery_date",
	).From("orders").OrderBy("order_id")

	if len(q.IDs) > 0 {
		query = query.Where(squirrel.Eq{"order_id": q.IDs})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build orders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders, err := parseOrderRows(rows)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].OrderID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

func (r *PgOrderRepo) getItems(ctx context.Context, orderID int64) ([]order.Item, error) {
	sql, args, err := r.builder.
		Select("p.name", "i.quantity", "i.sku", "i.unit_price").
		From("order_items i").
		Join("products p ON p.sku = i.sku").
		Where(squirrel.Eq{"i.order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var items []order.Item
	for rows.Next() {
		var item order.Item
		if err := rows.Scan(&item.Name, &item.Quantity, &item.SKU, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}

	return items, nil
}

func parseOrderRows(rows pgx.Rows) ([]order.Order, error) {
	var orders []order.Order
	for rows.Next() {
		var (
			o        order.Order
			rawState string
			addr     order.Address
			ship     order.Shipping
		)
		err := rows.Scan(
			&o.OrderID, &o.CustomerID, &o.OrderDate, &rawState,
			&addr.Address, &addr.City, &addr.District, &addr.Subdistrict, &addr.Province, &addr.PostalCode,
			&ship.ShippingName, &ship.ServiceType, &ship.ServiceName, &ship.ShippingCost, &ship.IsCOD, &ship.EstimatedDeliveryDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		status, err := order.NewStatus(rawState)
		if err != nil {
			return nil, fmt.Errorf("invalid status in database: %w", err)
		}
		o.Status = status
		o.Address = &addr
		o.Shipping = &ship

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}
