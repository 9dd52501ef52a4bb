package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/dbx"
	"github.com/faithguard/faithguard/internal/models"
)

const itemColumns = `id, title, description, location, image, category, temple_code,
	reporter_session_id, status, created_at, updated_at, found_by_session_id,
	closed_at, reward_amount, reward_given`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save upserts an item by id. On conflict every mutable column is updated.
func (r *SQLiteRepository) Save(ctx context.Context, i *models.Item) error {
	query := `insert into items (` + itemColumns + `)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		on conflict(id) do update set
			title = excluded.title,
			description = excluded.description,
			location = excluded.location,
			image = excluded.image,
			category = excluded.category,
			status = excluded.status,
			updated_at = excluded.updated_at,
			found_by_session_id = excluded.found_by_session_id,
			closed_at = excluded.closed_at,
			reward_amount = excluded.reward_amount,
			reward_given = excluded.reward_given
	`
	_, err := r.db.ExecContext(ctx, query,
		i.ID, i.Title, i.Description, i.Location, i.Image, i.Category, i.TempleCode,
		i.ReporterSessionID, string(i.Status), i.CreatedAt, i.UpdatedAt,
		i.FoundBySessionID, i.ClosedAt, i.RewardAmount, i.RewardGiven)
	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}
	return nil
}

// GetByID returns a single item regardless of status.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	row := r.db.QueryRowContext(ctx, `select `+itemColumns+` from items where id=?`, id)
	item, err := scanItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return item, nil
}

// ListByTemple lists the temple's items newest-first, optionally hiding
// closed cases.
func (r *SQLiteRepository) ListByTemple(ctx context.Context, templeCode string, includeClosed bool) ([]models.Item, error) {
	query := `select ` + itemColumns + ` from items where temple_code=?`
	if !includeClosed {
		query += ` and status != 'closed'`
	}
	query += ` order by created_at desc`

	return r.queryItems(ctx, query, templeCode)
}

// ListByReporter lists the items owned by sessionID within the temple.
func (r *SQLiteRepository) ListByReporter(ctx context.Context, templeCode, sessionID string) ([]models.Item, error) {
	query := `select ` + itemColumns + ` from items
		where temple_code=? and reporter_session_id=? order by created_at desc`
	return r.queryItems(ctx, query, templeCode, sessionID)
}

func (r *SQLiteRepository) queryItems(ctx context.Context, query string, args ...any) ([]models.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	defer rows.Close()

	var result []models.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanItem(scan func(dest ...any) error) (*models.Item, error) {
	i := &models.Item{}
	var status string
	err := scan(&i.ID, &i.Title, &i.Description, &i.Location, &i.Image, &i.Category,
		&i.TempleCode, &i.ReporterSessionID, &status, &i.CreatedAt, &i.UpdatedAt,
		&i.FoundBySessionID, &i.ClosedAt, &i.RewardAmount, &i.RewardGiven)
	if err != nil {
		return nil, err
	}
	i.Status = models.ItemStatus(status)
	return i, nil
}
