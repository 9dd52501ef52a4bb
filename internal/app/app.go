// Package app wires the FaithGuard core together: configuration, logging,
// the migrated local store, the entity stores, the event bus and the
// session-expiry watcher.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/faithguard/faithguard/internal/admin"
	"github.com/faithguard/faithguard/internal/config"
	"github.com/faithguard/faithguard/internal/dbx"
	"github.com/faithguard/faithguard/internal/drafts"
	"github.com/faithguard/faithguard/internal/events"
	"github.com/faithguard/faithguard/internal/items"
	"github.com/faithguard/faithguard/internal/location"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/messages"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/notifications"
	"github.com/faithguard/faithguard/internal/poll"
	"github.com/faithguard/faithguard/internal/push"
	"github.com/faithguard/faithguard/internal/repositories/repomanager"
	"github.com/faithguard/faithguard/internal/sessions"
	"github.com/faithguard/faithguard/internal/storage"
)

// App bundles the wired stores behind one handle.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	Bus      *events.Bus
	Sessions *sessions.Store
	Admin    *admin.Store
	Items    *items.Store
	Advisor  *items.Advisor
	Messages *messages.Store
	Center   *notifications.Center
	Bridge   *push.Bridge
	Drafts   *drafts.Store
	Location *location.Watcher

	detachDispatcher func()
}

// New opens the local store, runs migrations and wires every component.
// pushProvider and locationSource may be nil; the matching features then
// silently disable.
func New(ctx context.Context, cfg *config.Config, pushProvider push.Provider, locationSource location.Source) (*App, error) {
	logger := logging.NewJSON(os.Stdout)

	db, err := sql.Open("sqlite", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	// SQLite allows one writer; a single pooled connection also keeps
	// :memory: databases stable across calls.
	db.SetMaxOpenConns(1)

	rm := repomanager.NewSQLiteRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	kv := rm.KV(db)
	bus := events.NewBus()

	itemsRepo := rm.Items(db)
	sessionStore := sessions.NewStore(kv, logger)
	center := notifications.NewCenter(rm.Notifications(db), logger)
	bridge := push.NewBridge(pushProvider, kv, cfg.Push, logger)

	itemStore := items.NewStore(itemsRepo, bus, logger)

	a := &App{
		config:   cfg,
		logger:   logger,
		db:       db,
		Bus:      bus,
		Sessions: sessionStore,
		Admin:    admin.NewStore(kv, cfg.AdminSecretKey, logger),
		Items:    itemStore,
		Advisor:  items.NewAdvisor(itemStore, cfg.DuplicateDebounce, logger),
		Messages: messages.NewStore(rm.Messages(db), itemsRepo, bus, logger),
		Center:   center,
		Bridge:   bridge,
		Drafts:   drafts.NewStore(kv),
		Location: location.NewWatcher(locationSource, logger),
	}

	a.detachDispatcher = notifications.NewDispatcher(center, logger).Attach(bus)

	// Rebind the notification center if a valid session survived a restart.
	if session, err := sessionStore.Current(ctx); err == nil {
		if err := center.Bind(ctx, session.ID, session.TempleCode); err != nil {
			logger.Warn(ctx, "failed to rebind notification center", "error", err)
		}
	}

	return a, nil
}

// CheckIn starts a session for the temple and rebinds the per-session state.
func (a *App) CheckIn(ctx context.Context, templeCode string, method models.CheckInMethod) (*models.Session, error) {
	session, err := a.Sessions.Create(ctx, templeCode, method)
	if err != nil {
		return nil, err
	}
	if err := a.Center.Bind(ctx, session.ID, session.TempleCode); err != nil {
		return nil, err
	}
	return session, nil
}

// CheckOut ends the visitor session and tears down everything bound to it.
// All session-scoped keys go away in one transaction, so a crash mid-checkout
// cannot leave a half-cleared session behind.
func (a *App) CheckOut(ctx context.Context) error {
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := storage.NewSQLite(tx)
		for _, key := range []string{
			storage.KeySession, storage.KeyTempleCode, storage.KeyReportDraft,
			storage.KeyPushToken, storage.KeyPushSessionID, storage.KeyPushTempleCode,
		} {
			if err := kv.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	a.Center.Reset()
	// Provider-side channel invalidation; the local keys are already gone.
	if err := a.Bridge.ClearToken(ctx); err != nil {
		a.logger.Warn(ctx, "failed to clear push token", "error", err)
	}
	return nil
}

// Run watches session expiry until ctx is cancelled or a termination signal
// arrives, then closes the store.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.initSignalHandler(cancel)

	a.logger.Info(ctx, "starting app", "dsn", a.config.DatabaseDSN)

	watcher := sessions.NewWatcher(a.Sessions, a.config.SessionCheckInterval, func() {
		a.Center.Reset()
		if err := a.Bridge.ClearToken(context.Background()); err != nil {
			a.logger.Warn(context.Background(), "failed to clear push token", "error", err)
		}
	}, a.logger)
	go watcher.Run(ctx)

	<-ctx.Done()
	a.logger.Info(context.Background(), "shutting down")
	return a.Close()
}

// NewFeedPoller returns a poller that re-fetches the temple's active feed on
// the freshness interval. Callers subscribe, then start it with Run.
func (a *App) NewFeedPoller(templeCode string) *poll.Poller[[]models.Item] {
	fetch := func(ctx context.Context) ([]models.Item, error) {
		return a.Items.ListActive(ctx, templeCode)
	}
	return poll.NewPoller(fetch, a.config.FreshnessInterval, a.logger)
}

// Close releases the underlying store.
func (a *App) Close() error {
	a.Advisor.Stop()
	if a.detachDispatcher != nil {
		a.detachDispatcher()
	}
	return a.db.Close()
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}
