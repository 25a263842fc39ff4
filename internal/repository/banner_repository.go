package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inza-store/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrBannerNotFound = errors.New("banner not found")
)

// BannerRepository defines the interface for promotional banner data access
type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Banner, error)
	Reorder(ctx context.Context, ids []uuid.UUID) error
}

type bannerRepository struct {
	db *sql.DB
}

// NewBannerRepository creates a new instance of BannerRepository
func NewBannerRepository(db *sql.DB) BannerRepository {
	return &bannerRepository{db: db}
}

const bannerColumns = `id, name, image_url, position, is_active, description, button_text, button_link, created_at, updated_at`

// Create inserts a new banner
func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	query := `
		INSERT INTO banners (` + bannerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		banner.ID,
		banner.Name,
		banner.ImageURL,
		banner.Position,
		banner.IsActive,
		banner.Description,
		banner.ButtonText,
		banner.ButtonLink,
		banner.CreatedAt,
		banner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

// Update overwrites an existing banner
func (r *bannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	query := `
		UPDATE banners
		SET name = $2, image_url = $3, position = $4, is_active = $5,
		    description = $6, button_text = $7, button_link = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		banner.ID,
		banner.Name,
		banner.ImageURL,
		banner.Position,
		banner.IsActive,
		banner.Description,
		banner.ButtonText,
		banner.ButtonLink,
		banner.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBannerNotFound
	}

	return nil
}

// Delete removes a banner
func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrBannerNotFound
	}

	return nil
}

// FindByID retrieves a banner by ID
func (r *bannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`

	banner := &domain.Banner{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&banner.ID,
		&banner.Name,
		&banner.ImageURL,
		&banner.Position,
		&banner.IsActive,
		&banner.Description,
		&banner.ButtonText,
		&banner.ButtonLink,
		&banner.CreatedAt,
		&banner.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to find banner by ID: %w", err)
	}

	return banner, nil
}

// List retrieves banners ordered by position, optionally active ones only
func (r *bannerRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer rows.Close()

	banners := []*domain.Banner{}
	for rows.Next() {
		banner := &domain.Banner{}
		err := rows.Scan(
			&banner.ID,
			&banner.Name,
			&banner.ImageURL,
			&banner.Position,
			&banner.IsActive,
			&banner.Description,
			&banner.ButtonText,
			&banner.ButtonLink,
			&banner.CreatedAt,
			&banner.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, banner)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating banners: %w", err)
	}

	return banners, nil
}

// Reorder rewrites banner positions to match the given ID order, producing
// contiguous positions starting at zero.
func (r *bannerRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	for position, id := range ids {
		result, err := tx.ExecContext(ctx,
			`UPDATE banners SET position = $1, updated_at = NOW() WHERE id = $2`,
			position, id,
		)
		if err != nil {
			return fmt.Errorf("failed to reorder banner %s: %w", id, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return ErrBannerNotFound
		}
	}

	return tx.Commit()
}
