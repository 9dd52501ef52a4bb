package items

import (
	"context"

	"github.com/faithguard/faithguard/internal/models"
)

// Repository describes persistence operations for Item records.
// Items are never physically deleted: closed cases stay queryable by id.
type Repository interface {
	// Save inserts a new item or updates an existing one by ID.
	Save(ctx context.Context, item *models.Item) error

	// GetByID returns an item by its identifier, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Item, error)

	// ListByTemple returns the temple's items, newest first. When
	// includeClosed is false, closed cases are excluded (the active feed).
	ListByTemple(ctx context.Context, templeCode string, includeClosed bool) ([]models.Item, error)

	// ListByReporter returns the temple's items owned by the given session.
	ListByReporter(ctx context.Context, templeCode, sessionID string) ([]models.Item, error)
}
