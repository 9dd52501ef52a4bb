package messages

import (
	"context"
	"fmt"

	"github.com/faithguard/faithguard/internal/dbx"
	"github.com/faithguard/faithguard/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, m *models.Message) error {
	query := `insert into messages (id, item_id, text, sender_session_id, sender_type, created_at)
		values (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ItemID, m.Text, m.SenderSessionID, string(m.SenderType), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByItem(ctx context.Context, itemID string) ([]models.Message, error) {
	query := `select id, item_id, text, sender_session_id, sender_type, created_at
		from messages where item_id=? order by created_at asc`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []models.Message
	for rows.Next() {
		var m models.Message
		var senderType string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Text, &m.SenderSessionID, &senderType, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.SenderType = models.SenderType(senderType)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
