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
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, customer_name, contact_number, email, address, customer_type, due, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomerRow(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.CustomerName,
		&m.ContactNumber,
		&m.Email,
		&m.Address,
		&m.CustomerType,
		&m.Due,
		&m.IsActive,
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

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.CustomerName,
		m.ContactNumber,
		m.Email,
		m.Address,
		m.CustomerType,
		m.Due,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomerRow(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	d := mapping.ToDomainCustomer(*m)
	return &d, nil
}

// ListCustomers retrieves a filtered, paginated list of customers and the
// total count matching the filter.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, int64, error) {
	filterClause := `WHERE is_active = TRUE`
	args := []interface{}{}

	if params.SearchTerm != "" {
		args = append(args, "%"+params.SearchTerm+"%")
		idx := strconv.Itoa(len(args))
		filterClause += ` AND (customer_name ILIKE $` + idx + ` OR contact_number ILIKE $` + idx + ` OR email ILIKE $` + idx + `)`
	}
	if params.CustomerType != "" {
		args = append(args, params.CustomerType)
		filterClause += ` AND customer_type = $` + strconv.Itoa(len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM customers ` + filterClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count customers", err)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	limitIdx := strconv.Itoa(len(args))
	args = append(args, params.Offset)
	offsetIdx := strconv.Itoa(len(args))

	query := `
		SELECT ` + customerColumns + `
		FROM customers ` + filterClause + `
		ORDER BY customer_name ASC, customer_id ASC
		LIMIT $` + limitIdx + ` OFFSET $` + offsetIdx + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomerRow(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating customer rows", err)
	}

	return customers, total, nil
}

// CountOpenOrders returns the number of non-cancelled orders referencing the customer.
func (r *PgxCustomerRepository) CountOpenOrders(ctx context.Context, customerID string) (int64, error) {
	query := `SELECT COUNT(*) FROM sales_orders WHERE customer_id = $1 AND status != 'Cancelled';`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count open orders for customer "+customerID, err)
	}
	return count, nil
}

// UpdateCustomer updates an existing customer's details.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET customer_name = $2,
		    contact_number = $3,
		    email = $4,
		    address = $5,
		    customer_type = $6,
		    last_updated_at = $7,
		    last_updated_by = $8
		WHERE customer_id = $1;
	`
	// Due is deliberately not updated here; it only moves through
	// ApplyDueDeltaInTx as part of the order workflow.
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.CustomerName,
		m.ContactNumber,
		m.Email,
		m.Address,
		m.CustomerType,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+m.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCustomer marks a customer as inactive.
func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, deactivatedBy string, deactivatedAt time.Time) error {
	query := `
		UPDATE customers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE customer_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, customerID, deactivatedAt, deactivatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate customer "+customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCustomerForUpdate locks the customer row inside tx and returns its current state.
func (r *PgxCustomerRepository) FindCustomerForUpdate(ctx context.Context, tx pgx.Tx, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 FOR UPDATE;`
	m, err := scanCustomerRow(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock customer "+customerID, err)
	}
	d := mapping.ToDomainCustomer(*m)
	return &d, nil
}

// ApplyDueDeltaInTx adjusts the customer's running due by delta inside tx.
func (r *PgxCustomerRepository) ApplyDueDeltaInTx(ctx context.Context, tx pgx.Tx, customerID string, delta decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	if delta.IsZero() {
		return nil
	}
	query := `
		UPDATE customers
		SET due = COALESCE(due, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, customerID, delta, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply due delta for customer "+customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
