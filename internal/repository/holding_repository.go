package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bafang/portfolio-tracker/internal/apperrors"
	"github.com/bafang/portfolio-tracker/internal/model"
)

// HoldingRepository provides data access methods for the holdings table.
type HoldingRepository struct {
	db *sql.DB
}

// NewHoldingRepository creates a new HoldingRepository with the provided
// database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

const holdingColumns = `id, product_code, product_name, product_type, category,
	quantity, purchase_price, current_price, created_at, updated_at`

// GetAll retrieves all holdings ordered by ID. Returns an empty slice when
// the table is empty.
func (r *HoldingRepository) GetAll(ctx context.Context) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, holding)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings table: %w", err)
	}

	return holdings, nil
}

// GetByID retrieves one holding. Returns apperrors.ErrHoldingNotFound when
// no row matches.
func (r *HoldingRepository) GetByID(ctx context.Context, id int64) (model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	holding, err := scanHolding(row)
	if err == sql.ErrNoRows {
		return model.Holding{}, fmt.Errorf("%w: %d", apperrors.ErrHoldingNotFound, id)
	}
	if err != nil {
		return model.Holding{}, err
	}
	return holding, nil
}

// GetByCategory retrieves all holdings in one asset-allocation category.
func (r *HoldingRepository) GetByCategory(ctx context.Context, category model.AssetCategory) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE category = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, holding)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings table: %w", err)
	}

	return holdings, nil
}

// Create inserts a holding and returns its assigned ID. IDs are allocated
// by SQLite AUTOINCREMENT and are never reused after deletion, so a
// deleted holding's ID cannot be silently attached to a later record.
func (r *HoldingRepository) Create(ctx context.Context, holding model.Holding) (int64, error) {
	query := `
		INSERT INTO holdings (
			product_code, product_name, product_type, category,
			quantity, purchase_price, current_price, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.ProductCode,
		holding.ProductName,
		string(holding.ProductType),
		string(holding.Category),
		holding.Quantity,
		holding.PurchasePrice,
		holding.CurrentPrice,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert holding: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted holding ID: %w", err)
	}
	return id, nil
}

// Update replaces the mutable fields of a holding. Returns
// apperrors.ErrHoldingNotFound when the ID does not exist.
func (r *HoldingRepository) Update(ctx context.Context, holding model.Holding) error {
	query := `
		UPDATE holdings
		SET product_code = ?, product_name = ?, product_type = ?, category = ?,
			quantity = ?, purchase_price = ?, current_price = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		holding.ProductCode,
		holding.ProductName,
		string(holding.ProductType),
		string(holding.Category),
		holding.Quantity,
		holding.PurchasePrice,
		holding.CurrentPrice,
		holding.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", apperrors.ErrHoldingNotFound, holding.ID)
	}
	return nil
}

// UpdateCurrentPrice sets only the current price of a holding, used by the
// bulk price refresh so concurrent refreshes of different holdings never
// clobber each other's other fields.
func (r *HoldingRepository) UpdateCurrentPrice(ctx context.Context, id int64, price float64) error {
	query := `
		UPDATE holdings
		SET current_price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, price, id)
	if err != nil {
		return fmt.Errorf("failed to update holding price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", apperrors.ErrHoldingNotFound, id)
	}
	return nil
}

// Delete removes a holding. Returns apperrors.ErrHoldingNotFound when the
// ID does not exist.
func (r *HoldingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", apperrors.ErrHoldingNotFound, id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHolding(s scanner) (model.Holding, error) {
	var h model.Holding
	var productType, category string
	var createdAt, updatedAt string
	var currentPrice sql.NullFloat64

	err := s.Scan(
		&h.ID,
		&h.ProductCode,
		&h.ProductName,
		&productType,
		&category,
		&h.Quantity,
		&h.PurchasePrice,
		&currentPrice,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Holding{}, err
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to scan holdings row: %w", err)
	}

	h.ProductType = model.ProductCategory(productType)
	h.Category = model.AssetCategory(category)
	if currentPrice.Valid {
		h.CurrentPrice = &currentPrice.Float64
	}

	if h.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Holding{}, err
	}
	if h.UpdatedAt, err = ParseTime(updatedAt); err != nil {
		return model.Holding{}, err
	}

	return h, nil
}
