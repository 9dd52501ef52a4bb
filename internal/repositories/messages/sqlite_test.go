package messages_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/repositories/messages"
	"github.com/faithguard/faithguard/internal/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db
}

func repos(t *testing.T) map[string]messages.Repository {
	return map[string]messages.Repository{
		"sqlite": messages.NewSQLiteRepository(setupDB(t)),
		"memory": messages.NewMemoryRepository(),
	}
}

func TestMessageRepositoryAppendAndList(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().UTC().Truncate(time.Second)

			// insert out of order on purpose
			second := &models.Message{
				ID: "msg_2", ItemID: "item_1", Text: "I think I saw it",
				SenderSessionID: "session_b", SenderType: models.SenderOther,
				CreatedAt: base.Add(time.Minute),
			}
			first := &models.Message{
				ID: "msg_1", ItemID: "item_1", Text: "Please contact me",
				SenderSessionID: "session_a", SenderType: models.SenderReporter,
				CreatedAt: base,
			}
			other := &models.Message{
				ID: "msg_3", ItemID: "item_2", Text: "unrelated",
				SenderSessionID: "session_c", SenderType: models.SenderOther,
				CreatedAt: base,
			}
			for _, m := range []*models.Message{second, first, other} {
				require.NoError(t, repo.Append(ctx, m))
			}

			list, err := repo.ListByItem(ctx, "item_1")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, "msg_1", list[0].ID, "oldest first")
			assert.Equal(t, "msg_2", list[1].ID)
			assert.Equal(t, models.SenderReporter, list[0].SenderType)
			assert.Equal(t, "Please contact me", list[0].Text)
		})
	}
}

func TestMessageRepositoryListUnknownItem(t *testing.T) {
	for name, repo := range repos(t) {
		t.Run(name, func(t *testing.T) {
			list, err := repo.ListByItem(context.Background(), "item_missing")
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}
