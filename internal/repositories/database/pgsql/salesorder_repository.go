package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/models"
	"github.com/stocknest/stocknest_backend/internal/utils/mapping"
	"github.com/stocknest/stocknest_backend/internal/utils/pagination"
)

type PgxSalesOrderRepository struct {
	BaseRepository
	customerRepo portsrepo.CustomerRepositoryFacade
	itemRepo     portsrepo.ItemRepositoryFacade
}

// newPgxSalesOrderRepository creates a new repository for sales order data.
// The customer and item repositories are injected so the order workflow can
// reuse their in-transaction lock and delta operations.
func newPgxSalesOrderRepository(pool *pgxpool.Pool, customerRepo portsrepo.CustomerRepositoryFacade, itemRepo portsrepo.ItemRepositoryFacade) portsrepo.SalesOrderRepositoryWithTx {
	return &PgxSalesOrderRepository{
		BaseRepository: BaseRepository{Pool: pool},
		customerRepo:   customerRepo,
		itemRepo:       itemRepo,
	}
}

// Ensure PgxSalesOrderRepository implements portsrepo.SalesOrderRepositoryWithTx
var _ portsrepo.SalesOrderRepositoryWithTx = (*PgxSalesOrderRepository)(nil)

const orderColumns = `o.sales_order_id, o.order_number, o.customer_id, c.customer_name, o.reference, o.order_date, o.expected_shipment_date, o.payment_terms, o.delivery_method, o.sales_person, o.sub_total, o.discount_type, o.discount_value, o.shipping_charges, o.adjustment, o.total, o.payment, o.previous_due, o.due, o.customer_notes, o.status, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by`

func scanOrderRow(row pgx.Row) (*models.SalesOrder, error) {
	var m models.SalesOrder
	err := row.Scan(
		&m.SalesOrderID,
		&m.OrderNumber,
		&m.CustomerID,
		&m.CustomerName,
		&m.Reference,
		&m.OrderDate,
		&m.ExpectedShipmentDate,
		&m.PaymentTerms,
		&m.DeliveryMethod,
		&m.SalesPerson,
		&m.SubTotal,
		&m.DiscountType,
		&m.DiscountValue,
		&m.ShippingCharges,
		&m.Adjustment,
		&m.Total,
		&m.Payment,
		&m.PreviousDue,
		&m.Due,
		&m.CustomerNotes,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ensureReservable checks that qty more units can be reserved from the item:
// the item must be active and hold enough stock. Both the create and the
// update path run this under the item row lock.
func ensureReservable(item domain.Item, qty int64) error {
	if !item.IsActive {
		return apperrors.NewAppError(422, "item "+item.ItemID+" is inactive", apperrors.ErrValidation)
	}
	if item.Quantity < qty {
		return apperrors.NewAppError(400, "insufficient stock for item "+item.Name+": have "+strconv.FormatInt(item.Quantity, 10)+", need "+strconv.FormatInt(qty, 10), apperrors.ErrInsufficientStock)
	}
	return nil
}

// nextOrderNumberInTx derives the next order number for the order's month.
// It reads the current maximum under the transaction; the unique index on
// order_number backstops the race between concurrent creations.
func (r *PgxSalesOrderRepository) nextOrderNumberInTx(ctx context.Context, tx pgx.Tx, orderDate time.Time) (string, error) {
	prefix := domain.OrderNumberPrefix(orderDate)
	query := `
		SELECT COALESCE(MAX(order_number), '')
		FROM sales_orders
		WHERE order_number LIKE $1;
	`
	var last string
	if err := tx.QueryRow(ctx, query, prefix+"%").Scan(&last); err != nil {
		return "", apperrors.NewAppError(500, "failed to read last order number for prefix "+prefix, err)
	}
	return domain.NextOrderNumber(last, orderDate), nil
}

func (r *PgxSalesOrderRepository) insertOrderHeaderInTx(ctx context.Context, tx pgx.Tx, m models.SalesOrder) error {
	query := `
		INSERT INTO sales_orders (
			sales_order_id, order_number, customer_id, reference, order_date,
			expected_shipment_date, payment_terms, delivery_method, sales_person,
			sub_total, discount_type, discount_value, shipping_charges, adjustment,
			total, payment, previous_due, due, customer_notes, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err := tx.Exec(ctx, query,
		m.SalesOrderID,
		m.OrderNumber,
		m.CustomerID,
		m.Reference,
		m.OrderDate,
		m.ExpectedShipmentDate,
		m.PaymentTerms,
		m.DeliveryMethod,
		m.SalesPerson,
		m.SubTotal,
		m.DiscountType,
		m.DiscountValue,
		m.ShippingCharges,
		m.Adjustment,
		m.Total,
		m.Payment,
		m.PreviousDue,
		m.Due,
		m.CustomerNotes,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Lost the order-number race to a concurrent creation.
			return apperrors.NewAppError(409, "order number "+m.OrderNumber+" already taken", apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert sales order "+m.SalesOrderID, err)
	}
	return nil
}

func (r *PgxSalesOrderRepository) insertOrderLinesInTx(ctx context.Context, tx pgx.Tx, orderID string, lines []domain.OrderLine) error {
	query := `
		INSERT INTO sales_order_items (sales_order_id, line_no, item_id, quantity, rate, discount, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelOrderLine(orderID, line)
		batch.Queue(query,
			m.SalesOrderID,
			m.LineNo,
			m.ItemID,
			m.Quantity,
			m.Rate,
			m.Discount,
			m.Amount,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert order lines for "+orderID, err)
	}
	return nil
}

func (r *PgxSalesOrderRepository) findOrderLinesInTx(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, orderID string) ([]domain.OrderLine, error) {
	query := `
		SELECT l.sales_order_id, l.line_no, l.item_id, i.name, l.quantity, l.rate, l.discount, l.amount
		FROM sales_order_items l
		JOIN items i ON l.item_id = i.item_id
		WHERE l.sales_order_id = $1
		ORDER BY l.line_no;
	`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for order "+orderID, err)
	}
	defer rows.Close()

	lines := []models.SalesOrderLine{}
	for rows.Next() {
		var m models.SalesOrderLine
		if err := rows.Scan(
			&m.SalesOrderID,
			&m.LineNo,
			&m.ItemID,
			&m.ItemName,
			&m.Quantity,
			&m.Rate,
			&m.Discount,
			&m.Amount,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for order "+orderID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for order "+orderID, err)
	}
	return mapping.ToDomainOrderLineSlice(lines), nil
}

// CreateOrder persists the order atomically: it locks the customer and the
// referenced items, validates stock under the lock, generates the order
// number, reserves stock and raises the customer's running due.
func (r *PgxSalesOrderRepository) CreateOrder(ctx context.Context, order domain.SalesOrder, reservations map[string]int64) (*domain.SalesOrder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := order.CreatedAt
	userID := order.CreatedBy

	// Customer first, then items: every order transaction takes locks in this
	// order so two concurrent orders cannot deadlock.
	customer, err := r.customerRepo.FindCustomerForUpdate(ctx, tx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive {
		return nil, apperrors.NewAppError(422, "customer "+customer.CustomerID+" is inactive", apperrors.ErrValidation)
	}

	itemIDs := make([]string, 0, len(reservations))
	for itemID := range reservations {
		itemIDs = append(itemIDs, itemID)
	}
	lockedItems, err := r.itemRepo.FindItemsByIDsForUpdate(ctx, tx, itemIDs)
	if err != nil {
		return nil, err
	}
	for itemID, qty := range reservations {
		if err := ensureReservable(lockedItems[itemID], qty); err != nil {
			return nil, err
		}
	}

	orderNumber, err := r.nextOrderNumberInTx(ctx, tx, order.OrderDate)
	if err != nil {
		return nil, err
	}
	order.OrderNumber = orderNumber
	order.CustomerName = customer.CustomerName
	order.PreviousDue = customer.Due
	order.Due = order.Total.Sub(order.Payment).Add(order.PreviousDue)

	if err := r.insertOrderHeaderInTx(ctx, tx, mapping.ToModelSalesOrder(order)); err != nil {
		return nil, err
	}
	if err := r.insertOrderLinesInTx(ctx, tx, order.SalesOrderID, order.Lines); err != nil {
		return nil, err
	}

	deltas := make(map[string]int64, len(reservations))
	for itemID, qty := range reservations {
		deltas[itemID] = -qty
	}
	if err := r.itemRepo.ApplyQuantityDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
		return nil, err
	}
	if err := r.customerRepo.ApplyDueDeltaInTx(ctx, tx, order.CustomerID, order.Outstanding(), userID, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder rewrites the order header and lines, applies net per-item stock
// deltas and shifts the customer due by dueDelta, all in one transaction.
func (r *PgxSalesOrderRepository) UpdateOrder(ctx context.Context, order domain.SalesOrder, quantityDeltas map[string]int64, dueDelta decimal.Decimal) (*domain.SalesOrder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := order.LastUpdatedAt
	userID := order.LastUpdatedBy

	customer, err := r.customerRepo.FindCustomerForUpdate(ctx, tx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	order.CustomerName = customer.CustomerName

	itemIDs := make([]string, 0, len(quantityDeltas))
	for itemID := range quantityDeltas {
		itemIDs = append(itemIDs, itemID)
	}
	lockedItems, err := r.itemRepo.FindItemsByIDsForUpdate(ctx, tx, itemIDs)
	if err != nil {
		return nil, err
	}
	// Only negative deltas take more stock; restores need no guard.
	for itemID, delta := range quantityDeltas {
		if delta >= 0 {
			continue
		}
		if err := ensureReservable(lockedItems[itemID], -delta); err != nil {
			return nil, err
		}
	}

	m := mapping.ToModelSalesOrder(order)
	headerQuery := `
		UPDATE sales_orders
		SET reference = $2,
		    order_date = $3,
		    expected_shipment_date = $4,
		    payment_terms = $5,
		    delivery_method = $6,
		    sales_person = $7,
		    sub_total = $8,
		    discount_type = $9,
		    discount_value = $10,
		    shipping_charges = $11,
		    adjustment = $12,
		    total = $13,
		    payment = $14,
		    due = $15,
		    customer_notes = $16,
		    last_updated_at = $17,
		    last_updated_by = $18
		WHERE sales_order_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		m.SalesOrderID,
		m.Reference,
		m.OrderDate,
		m.ExpectedShipmentDate,
		m.PaymentTerms,
		m.DeliveryMethod,
		m.SalesPerson,
		m.SubTotal,
		m.DiscountType,
		m.DiscountValue,
		m.ShippingCharges,
		m.Adjustment,
		m.Total,
		m.Payment,
		m.Due,
		m.CustomerNotes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update sales order "+m.SalesOrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sales_order_items WHERE sales_order_id = $1;`, order.SalesOrderID); err != nil {
		return nil, apperrors.NewAppError(500, "failed to clear lines for order "+order.SalesOrderID, err)
	}
	if err := r.insertOrderLinesInTx(ctx, tx, order.SalesOrderID, order.Lines); err != nil {
		return nil, err
	}

	if err := r.itemRepo.ApplyQuantityDeltasInTx(ctx, tx, quantityDeltas, userID, now); err != nil {
		return nil, err
	}
	if err := r.customerRepo.ApplyDueDeltaInTx(ctx, tx, order.CustomerID, dueDelta, userID, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets the order status. Stock and dues are untouched;
// cancellation goes through CancelOrder instead. The status column doubles as
// the guard: a row that has moved on from the expected status (for example a
// concurrent cancellation) is left alone and reported as a conflict.
func (r *PgxSalesOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, from, to domain.OrderStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE sales_orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sales_order_id = $1 AND status = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, orderID, string(to), updatedAt, updatedBy, string(from))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status for order "+orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var current string
		err := r.Pool.QueryRow(ctx, `SELECT status FROM sales_orders WHERE sales_order_id = $1;`, orderID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to read status for order "+orderID, err)
		}
		return apperrors.NewAppError(409, "order "+orderID+" is no longer "+string(from)+" (now "+current+")", apperrors.ErrConflict)
	}
	return nil
}

// CancelOrder marks the order Cancelled, restores its reserved stock and
// lowers the customer's running due by the order's outstanding amount.
func (r *PgxSalesOrderRepository) CancelOrder(ctx context.Context, orderID string, updatedBy string, updatedAt time.Time) (*domain.SalesOrder, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	order, lines, err := r.lockOrderWithLinesInTx(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.Cancelled {
		return nil, apperrors.NewAppError(409, "order "+orderID+" is already cancelled", apperrors.ErrConflict)
	}
	if order.Status == domain.Delivered {
		return nil, apperrors.NewAppError(409, "order "+orderID+" is delivered and cannot be cancelled", apperrors.ErrConflict)
	}

	if err := r.compensateOrderInTx(ctx, tx, order, lines, updatedBy, updatedAt); err != nil {
		return nil, err
	}

	statusQuery := `
		UPDATE sales_orders
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sales_order_id = $1;
	`
	if _, err := tx.Exec(ctx, statusQuery, orderID, string(domain.Cancelled), updatedAt, updatedBy); err != nil {
		return nil, apperrors.NewAppError(500, "failed to cancel order "+orderID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	order.Status = domain.Cancelled
	order.Lines = lines
	order.LastUpdatedAt = updatedAt
	order.LastUpdatedBy = updatedBy
	return order, nil
}

// DeleteOrder removes the order and its lines. Orders that are not already
// cancelled are compensated first so stock and dues stay consistent.
func (r *PgxSalesOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	order, lines, err := r.lockOrderWithLinesInTx(ctx, tx, orderID)
	if err != nil {
		return err
	}

	if order.Status != domain.Cancelled {
		now := time.Now().UTC()
		if err := r.compensateOrderInTx(ctx, tx, order, lines, order.LastUpdatedBy, now); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sales_order_items WHERE sales_order_id = $1;`, orderID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for order "+orderID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sales_orders WHERE sales_order_id = $1;`, orderID); err != nil {
		return apperrors.NewAppError(500, "failed to delete order "+orderID, err)
	}

	return r.Commit(ctx, tx)
}

// lockOrderWithLinesInTx locks the order header row and fetches its lines.
func (r *PgxSalesOrderRepository) lockOrderWithLinesInTx(ctx context.Context, tx pgx.Tx, orderID string) (*domain.SalesOrder, []domain.OrderLine, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM sales_orders o
		JOIN customers c ON o.customer_id = c.customer_id
		WHERE o.sales_order_id = $1
		FOR UPDATE OF o;
	`
	m, err := scanOrderRow(tx.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, apperrors.NewAppError(500, "failed to lock order "+orderID, err)
	}
	order := mapping.ToDomainSalesOrder(*m)

	lines, err := r.findOrderLinesInTx(ctx, tx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return &order, lines, nil
}

// compensateOrderInTx restores the stock reserved by the order's lines and
// lowers the customer due by the order's outstanding amount. Lock order
// matches CreateOrder: customer first, then items.
func (r *PgxSalesOrderRepository) compensateOrderInTx(ctx context.Context, tx pgx.Tx, order *domain.SalesOrder, lines []domain.OrderLine, userID string, now time.Time) error {
	if _, err := r.customerRepo.FindCustomerForUpdate(ctx, tx, order.CustomerID); err != nil {
		return err
	}

	restores := make(map[string]int64, len(lines))
	itemIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, seen := restores[line.ItemID]; !seen {
			itemIDs = append(itemIDs, line.ItemID)
		}
		restores[line.ItemID] += line.Quantity
	}
	if _, err := r.itemRepo.FindItemsByIDsForUpdate(ctx, tx, itemIDs); err != nil {
		return err
	}
	if err := r.itemRepo.ApplyQuantityDeltasInTx(ctx, tx, restores, userID, now); err != nil {
		return err
	}
	return r.customerRepo.ApplyDueDeltaInTx(ctx, tx, order.CustomerID, order.Outstanding().Neg(), userID, now)
}

// FindOrderByID retrieves an order with its lines and the customer name joined in.
func (r *PgxSalesOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM sales_orders o
		JOIN customers c ON o.customer_id = c.customer_id
		WHERE o.sales_order_id = $1;
	`
	m, err := scanOrderRow(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find order by ID "+orderID, err)
	}
	order := mapping.ToDomainSalesOrder(*m)

	lines, err := r.findOrderLinesInTx(ctx, r.Pool, orderID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

// ListOrders retrieves a filtered page of orders using token-based pagination
// plus financial aggregates over the whole filtered set. Lines are not
// fetched for listings.
func (r *PgxSalesOrderRepository) ListOrders(ctx context.Context, params dto.ListSalesOrdersParams) ([]domain.SalesOrder, *string, dto.SalesOrderAggregates, error) {
	agg := dto.SalesOrderAggregates{
		TotalAmount:  decimal.Zero,
		TotalPayment: decimal.Zero,
		TotalDue:     decimal.Zero,
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	filterClause := `WHERE 1=1`
	args := []interface{}{}

	if params.SearchTerm != "" {
		args = append(args, "%"+params.SearchTerm+"%")
		idx := strconv.Itoa(len(args))
		filterClause += ` AND (o.order_number ILIKE $` + idx + ` OR c.customer_name ILIKE $` + idx + `)`
	}
	if params.Status != "" {
		args = append(args, params.Status)
		filterClause += ` AND o.status = $` + strconv.Itoa(len(args))
	}
	if params.CustomerID != "" {
		args = append(args, params.CustomerID)
		filterClause += ` AND o.customer_id = $` + strconv.Itoa(len(args))
	}
	if params.FromDate != nil {
		args = append(args, *params.FromDate)
		filterClause += ` AND o.order_date >= $` + strconv.Itoa(len(args))
	}
	if params.ToDate != nil {
		args = append(args, *params.ToDate)
		filterClause += ` AND o.order_date <= $` + strconv.Itoa(len(args))
	}
	if params.MinTotal != nil {
		args = append(args, *params.MinTotal)
		filterClause += ` AND o.total >= $` + strconv.Itoa(len(args))
	}
	if params.MaxTotal != nil {
		args = append(args, *params.MaxTotal)
		filterClause += ` AND o.total <= $` + strconv.Itoa(len(args))
	}

	fromClause := `FROM sales_orders o JOIN customers c ON o.customer_id = c.customer_id`

	// Aggregates cover the whole filtered set, not just this page.
	aggQuery := `
		SELECT COUNT(*),
		       COALESCE(SUM(o.total), 0),
		       COALESCE(SUM(o.payment), 0),
		       COALESCE(SUM(o.total - o.payment), 0)
		` + fromClause + ` ` + filterClause + `;`
	if err := r.Pool.QueryRow(ctx, aggQuery, args...).Scan(&agg.OrderCount, &agg.TotalAmount, &agg.TotalPayment, &agg.TotalDue); err != nil {
		return nil, nil, agg, apperrors.NewAppError(500, "failed to aggregate sales orders", err)
	}

	// Ordering is crucial and must be stable for the cursor to work.
	orderByClause := `ORDER BY o.order_date DESC, o.created_at DESC`

	if params.NextToken != nil && *params.NextToken != "" {
		lastOrderDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*params.NextToken)
		if decodeErr != nil {
			return nil, nil, agg, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastOrderDate)
		dateIdx := strconv.Itoa(len(args))
		args = append(args, lastCreatedAt)
		createdIdx := strconv.Itoa(len(args))
		filterClause += ` AND (o.order_date, o.created_at) < ($` + dateIdx + `, $` + createdIdx + `)`
	}

	args = append(args, fetchLimit)
	query := `
		SELECT ` + orderColumns + `
		` + fromClause + ` ` + filterClause + ` ` + orderByClause + `
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, agg, apperrors.NewAppError(500, "failed to query sales orders", err)
	}
	defer rows.Close()

	modelOrders := make([]models.SalesOrder, 0, fetchLimit)
	for rows.Next() {
		m, err := scanOrderRow(rows)
		if err != nil {
			return nil, nil, agg, apperrors.NewAppError(500, "failed to scan sales order row", err)
		}
		modelOrders = append(modelOrders, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, agg, apperrors.NewAppError(500, "error iterating sales order rows", err)
	}

	var nextTokenVal *string
	results := modelOrders
	if len(modelOrders) > limit {
		lastOrder := modelOrders[limit-1]
		token := pagination.EncodeToken(lastOrder.OrderDate, lastOrder.CreatedAt)
		nextTokenVal = &token
		results = modelOrders[:limit]
	}

	orders := make([]domain.SalesOrder, len(results))
	for i, m := range results {
		orders[i] = mapping.ToDomainSalesOrder(m)
	}
	return orders, nextTokenVal, agg, nil
}
