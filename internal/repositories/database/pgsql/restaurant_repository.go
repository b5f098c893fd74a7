package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/restopilot/resto_books_app/internal/apperrors"
	"github.com/restopilot/resto_books_app/internal/core/domain"
	portsrepo "github.com/restopilot/resto_books_app/internal/core/ports/repositories"
	"github.com/restopilot/resto_books_app/internal/models"
	"github.com/restopilot/resto_books_app/internal/utils/mapping"
)

const restaurantColumns = `restaurant_id, name, description, default_currency_code, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxRestaurantRepository struct {
	BaseRepository
}

func newPgxRestaurantRepository(pool *pgxpool.Pool) portsrepo.RestaurantRepositoryFacade {
	return &PgxRestaurantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RestaurantRepositoryFacade = (*PgxRestaurantRepository)(nil)

// SaveRestaurant persists a new restaurant. The piece number sequence starts
// at its column default of 1.
func (r *PgxRestaurantRepository) SaveRestaurant(ctx context.Context, restaurant domain.Restaurant) error {
	modelRestaurant := mapping.ToModelRestaurant(restaurant)
	query := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRestaurant.RestaurantID,
		modelRestaurant.Name,
		modelRestaurant.Description,
		modelRestaurant.DefaultCurrencyCode,
		modelRestaurant.IsActive,
		modelRestaurant.CreatedAt,
		modelRestaurant.CreatedBy,
		modelRestaurant.LastUpdatedAt,
		modelRestaurant.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert restaurant "+modelRestaurant.RestaurantID, err)
	}
	return nil
}

// FindRestaurantByID retrieves a restaurant by its ID.
func (r *PgxRestaurantRepository) FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE restaurant_id = $1;
	`
	modelRestaurant, err := scanRestaurantRow(r.Pool.QueryRow(ctx, query, restaurantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find restaurant by ID "+restaurantID, err)
	}

	domainRestaurant := mapping.ToDomainRestaurant(*modelRestaurant)
	return &domainRestaurant, nil
}

// ListRestaurants retrieves active restaurants ordered by name.
func (r *PgxRestaurantRepository) ListRestaurants(ctx context.Context, limit int, offset int) ([]domain.Restaurant, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + restaurantColumns + `
		FROM restaurants
		WHERE is_active = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query restaurants", err)
	}
	defer rows.Close()

	modelRestaurants := []models.Restaurant{}
	for rows.Next() {
		modelRestaurant, scanErr := scanRestaurantRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan restaurant row", scanErr)
		}
		modelRestaurants = append(modelRestaurants, *modelRestaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating restaurant rows", err)
	}

	return mapping.ToDomainRestaurantSlice(modelRestaurants), nil
}

// UpdateRestaurant updates a restaurant's mutable details.
func (r *PgxRestaurantRepository) UpdateRestaurant(ctx context.Context, restaurant domain.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2,
		    description = $3,
		    is_active = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE restaurant_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		restaurant.RestaurantID,
		restaurant.Name,
		restaurant.Description,
		restaurant.IsActive,
		restaurant.LastUpdatedAt,
		restaurant.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update restaurant "+restaurant.RestaurantID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("restaurant " + restaurant.RestaurantID + " not found for update")
	}
	return nil
}

func scanRestaurantRow(row scanTarget) (*models.Restaurant, error) {
	var m models.Restaurant
	err := row.Scan(
		&m.RestaurantID,
		&m.Name,
		&m.Description,
		&m.DefaultCurrencyCode,
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
