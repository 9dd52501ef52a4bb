package notifications

import (
	"context"
	"encoding/json"
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

func (r *SQLiteRepository) Save(ctx context.Context, n *models.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal notification data: %w", err)
	}
	query := `insert into notifications
		(id, type, title, body, item_id, data, read, session_id, temple_code, created_at)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		n.ID, string(n.Type), n.Title, n.Body, n.ItemID, string(data), n.Read,
		n.SessionID, n.TempleCode, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListByScope(ctx context.Context, scope Scope) ([]models.Notification, error) {
	query := `select id, type, title, body, item_id, data, read, session_id, temple_code, created_at
		from notifications where session_id=? and temple_code=? order by created_at desc`
	rows, err := r.db.QueryContext(ctx, query, scope.SessionID, scope.TempleCode)
	if err != nil {
		return nil, fmt.Errorf("failed to select notifications: %w", err)
	}
	defer rows.Close()

	var result []models.Notification
	for rows.Next() {
		var n models.Notification
		var typ, data string
		if err := rows.Scan(&n.ID, &typ, &n.Title, &n.Body, &n.ItemID, &data, &n.Read,
			&n.SessionID, &n.TempleCode, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = models.NotificationType(typ)
		if data != "" {
			if err := json.Unmarshal([]byte(data), &n.Data); err != nil {
				return nil, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) MarkRead(ctx context.Context, scope Scope, id string) error {
	query := `update notifications set read=1 where id=? and session_id=? and temple_code=?`
	if _, err := r.db.ExecContext(ctx, query, id, scope.SessionID, scope.TempleCode); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkAllRead(ctx context.Context, scope Scope) error {
	query := `update notifications set read=1 where session_id=? and temple_code=?`
	if _, err := r.db.ExecContext(ctx, query, scope.SessionID, scope.TempleCode); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, scope Scope, id string) error {
	query := `delete from notifications where id=? and session_id=? and temple_code=?`
	if _, err := r.db.ExecContext(ctx, query, id, scope.SessionID, scope.TempleCode); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByScope(ctx context.Context, scope Scope) error {
	query := `delete from notifications where session_id=? and temple_code=?`
	if _, err := r.db.ExecContext(ctx, query, scope.SessionID, scope.TempleCode); err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}
