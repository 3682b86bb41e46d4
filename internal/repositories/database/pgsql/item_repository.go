package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocknest/stocknest_backend/internal/apperrors"
	"github.com/stocknest/stocknest_backend/internal/core/domain"
	portsrepo "github.com/stocknest/stocknest_backend/internal/core/ports/repositories"
	"github.com/stocknest/stocknest_backend/internal/dto"
	"github.com/stocknest/stocknest_backend/internal/models"
	"github.com/stocknest/stocknest_backend/internal/utils/mapping"
)

type PgxItemRepository struct {
	BaseRepository
}

// newPgxItemRepository creates a new repository for item data.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxItemRepository implements portsrepo.ItemRepositoryFacade
var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

const itemColumns = `item_id, name, sku, unit, description, selling_price, cost_price, quantity, reorder_point, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanItemRow(row pgx.Row) (*models.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.Name,
		&m.SKU,
		&m.Unit,
		&m.Description,
		&m.SellingPrice,
		&m.CostPrice,
		&m.Quantity,
		&m.ReorderPoint,
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

// SaveItem persists a new item. A duplicate SKU maps to ErrDuplicate.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.Name,
		m.SKU,
		m.Unit,
		m.Description,
		m.SellingPrice,
		m.CostPrice,
		m.Quantity,
		m.ReorderPoint,
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
		return apperrors.NewAppError(500, "failed to insert item "+m.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an item by its ID.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1;`
	m, err := scanItemRow(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find item by ID "+itemID, err)
	}
	d := mapping.ToDomainItem(*m)
	return &d, nil
}

// ListItems retrieves a filtered, paginated list of items and the total count
// matching the filter.
func (r *PgxItemRepository) ListItems(ctx context.Context, params dto.ListItemsParams) ([]domain.Item, int64, error) {
	filterClause := `WHERE is_active = TRUE`
	args := []interface{}{}

	if params.SearchTerm != "" {
		args = append(args, "%"+params.SearchTerm+"%")
		idx := strconv.Itoa(len(args))
		filterClause += ` AND (name ILIKE $` + idx + ` OR sku ILIKE $` + idx + `)`
	}
	if params.MinPrice != nil {
		args = append(args, *params.MinPrice)
		filterClause += ` AND selling_price >= $` + strconv.Itoa(len(args))
	}
	if params.MaxPrice != nil {
		args = append(args, *params.MaxPrice)
		filterClause += ` AND selling_price <= $` + strconv.Itoa(len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM items ` + filterClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count items", err)
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
		SELECT ` + itemColumns + `
		FROM items ` + filterClause + `
		ORDER BY name ASC, item_id ASC
		LIMIT $` + limitIdx + ` OFFSET $` + offsetIdx + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query items", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		m, err := scanItemRow(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan item row", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating item rows", err)
	}

	return mapping.ToDomainItemSlice(items), total, nil
}

// ListLowStockItems retrieves active items at or below their reorder point.
func (r *PgxItemRepository) ListLowStockItems(ctx context.Context, limit int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE is_active = TRUE AND quantity <= reorder_point
		ORDER BY quantity ASC, name ASC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query low stock items", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		m, err := scanItemRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan low stock item row", err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating low stock item rows", err)
	}

	return mapping.ToDomainItemSlice(items), nil
}

// UpdateItem updates an existing item's details. Quantity and SKU are not
// touched here: quantity moves through AdjustStock or the order workflow,
// and SKU is immutable after creation.
func (r *PgxItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)
	query := `
		UPDATE items
		SET name = $2,
		    unit = $3,
		    description = $4,
		    selling_price = $5,
		    cost_price = $6,
		    reorder_point = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE item_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.Name,
		m.Unit,
		m.Description,
		m.SellingPrice,
		m.CostPrice,
		m.ReorderPoint,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update item "+m.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustStock applies a manual quantity delta and returns the updated item.
// The guard in the WHERE clause keeps quantity from going negative.
func (r *PgxItemRepository) AdjustStock(ctx context.Context, itemID string, delta int64, updatedBy string, updatedAt time.Time) (*domain.Item, error) {
	query := `
		UPDATE items
		SET quantity = quantity + $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1 AND quantity + $2 >= 0
		RETURNING ` + itemColumns + `;`
	m, err := scanItemRow(r.Pool.QueryRow(ctx, query, itemID, delta, updatedAt, updatedBy))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing item from an underflowing adjustment.
			var exists bool
			checkErr := r.Pool.QueryRow(ctx, `SELECT TRUE FROM items WHERE item_id = $1;`, itemID).Scan(&exists)
			if checkErr != nil {
				if errors.Is(checkErr, pgx.ErrNoRows) {
					return nil, apperrors.ErrNotFound
				}
				return nil, apperrors.NewAppError(500, "failed to check item "+itemID, checkErr)
			}
			return nil, apperrors.ErrInsufficientStock
		}
		return nil, apperrors.NewAppError(500, "failed to adjust stock for item "+itemID, err)
	}
	d := mapping.ToDomainItem(*m)
	return &d, nil
}

// DeactivateItem marks an item as inactive.
func (r *PgxItemRepository) DeactivateItem(ctx context.Context, itemID string, deactivatedBy string, deactivatedAt time.Time) error {
	query := `
		UPDATE items
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE item_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, itemID, deactivatedAt, deactivatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate item "+itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindItemsByIDsForUpdate retrieves multiple items by IDs and locks the rows
// for update. Rows are locked in item_id order to avoid deadlocks between
// concurrent order transactions. Must be called within a transaction.
func (r *PgxItemRepository) FindItemsByIDsForUpdate(ctx context.Context, tx pgx.Tx, itemIDs []string) (map[string]domain.Item, error) {
	if len(itemIDs) == 0 {
		return map[string]domain.Item{}, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE item_id = ANY($1)
		ORDER BY item_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items by IDs for update", err)
	}
	defer rows.Close()

	itemsMap := make(map[string]domain.Item)
	for rows.Next() {
		m, err := scanItemRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked item row", err)
		}
		itemsMap[m.ItemID] = mapping.ToDomainItem(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked item rows", err)
	}

	if len(itemsMap) != len(itemIDs) {
		missing := []string{}
		for _, id := range itemIDs {
			if _, ok := itemsMap[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, apperrors.NewAppError(404, "items not found: "+strings.Join(missing, ", "), apperrors.ErrNotFound)
	}

	return itemsMap, nil
}

// ApplyQuantityDeltasInTx adjusts stock levels by the given per-item deltas
// within a transaction. Callers must have locked and validated the items.
func (r *PgxItemRepository) ApplyQuantityDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int64, updatedBy string, updatedAt time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE items
		SET quantity = quantity + $2, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1;
	`
	batch := &pgx.Batch{}
	itemIDs := make([]string, 0, len(deltas))
	for itemID, delta := range deltas {
		if delta != 0 {
			batch.Queue(query, itemID, delta, updatedAt, updatedBy)
			itemIDs = append(itemIDs, itemID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = apperrors.NewAppError(500, "failed to apply quantity delta for item "+itemIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = apperrors.NewAppError(404, "item "+itemIDs[i]+" not found during stock update", apperrors.ErrNotFound)
			}
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = apperrors.NewAppError(500, "failed to close stock update batch", closeErr)
	}
	return batchErr
}
