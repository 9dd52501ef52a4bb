package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/config"
	"github.com/faithguard/faithguard/internal/items"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabaseDSN = ":memory:"

	a, err := New(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAppLostItemLifecycle(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	// check in as the reporter
	reporter, err := a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)
	require.True(t, a.Sessions.IsValid(ctx))

	// report a lost item
	result, err := a.Items.Create(ctx, items.CreateParams{
		Title:       "Black Wallet",
		Description: "Leather wallet with ID cards inside",
		Location:    "Main Gate",
	}, reporter.ID, "TEMPLE_001")
	require.NoError(t, err)
	itemID := result.Item.ID

	active, err := a.Items.ListActive(ctx, "TEMPLE_001")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, models.StatusActive, active[0].Status)

	// someone else marks it found
	finderID := "session_finder"
	item, err := a.Items.UpdateStatus(ctx, itemID, models.StatusFound, finderID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFound, item.Status)

	// the reporter was alerted about the find and the status change
	notifs := a.Center.List()
	require.Len(t, notifs, 2)
	assert.Equal(t, models.NotifyCaseStatusChange, notifs[0].Type)
	assert.Equal(t, models.NotifyItemFound, notifs[1].Type)
	assert.Equal(t, 2, a.Center.UnreadCount())

	// a conversation happens on the open case
	_, err = a.Messages.Append(ctx, itemID, "Left it at the help desk", finderID, models.SenderOther)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Center.UnreadCount())

	// the reporter closes the case
	item, err = a.Items.UpdateStatus(ctx, itemID, models.StatusClosed, reporter.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, item.Status)
	assert.Nil(t, item.RewardAmount)
	require.NotNil(t, item.ClosedAt)

	// closed cases leave the feed but stay queryable
	active, err = a.Items.ListActive(ctx, "TEMPLE_001")
	require.NoError(t, err)
	assert.Empty(t, active)
	got, err := a.Items.GetByID(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, got.Status)

	// and reject further messages
	_, err = a.Messages.Append(ctx, itemID, "too late", finderID, models.SenderOther)
	assert.ErrorIs(t, err, common.ErrItemClosed)
}

func TestAppCheckInBindsNotificationCenter(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	session, err := a.CheckIn(ctx, "TEMPLE_001", models.CheckInCode)
	require.NoError(t, err)

	scope, bound := a.Center.Scope()
	require.True(t, bound)
	assert.Equal(t, session.ID, scope.SessionID)
	assert.Equal(t, "TEMPLE_001", scope.TempleCode)
}

func TestAppCheckOutTearsDownSessionState(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)

	// leave a draft and a notification behind
	require.NoError(t, a.Drafts.Save(ctx, models.Draft{Title: "half typed"}))
	reporter := "session_other"
	_, err = a.Items.Create(ctx, items.CreateParams{
		Title:       "Red Umbrella",
		Description: "Large umbrella with a wooden handle",
		Location:    "Prayer Hall",
	}, reporter, "TEMPLE_001")
	require.NoError(t, err)
	require.Len(t, a.Center.List(), 1, "someone else's report lands in my center")

	require.NoError(t, a.CheckOut(ctx))

	assert.False(t, a.Sessions.IsValid(ctx))
	assert.Empty(t, a.Center.List())
	_, bound := a.Center.Scope()
	assert.False(t, bound)
	assert.False(t, a.Drafts.Exists(ctx))
}

func TestAppNewSessionStartsWithEmptyCenter(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)

	_, err = a.Items.Create(ctx, items.CreateParams{
		Title:       "Red Umbrella",
		Description: "Large umbrella with a wooden handle",
		Location:    "Prayer Hall",
	}, "session_other", "TEMPLE_001")
	require.NoError(t, err)
	require.Len(t, a.Center.List(), 1)

	// a fresh check-in gets a fresh, empty notification list
	_, err = a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)
	assert.Empty(t, a.Center.List())
}

func TestAppAdminIndependentOfVisitorSession(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	_, err := a.Admin.Login(ctx, "admin@temple.org", "admin123")
	require.NoError(t, err)
	require.True(t, a.Admin.IsAdmin(ctx))

	// visitor checkout does not touch the admin session
	_, err = a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)
	require.NoError(t, a.CheckOut(ctx))
	assert.True(t, a.Admin.IsAdmin(ctx))

	// and admin logout does not touch the visitor session
	_, err = a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)
	require.NoError(t, a.Admin.Logout(ctx))
	assert.True(t, a.Sessions.IsValid(ctx))
}

func TestAppFeedPollerObservesNewItems(t *testing.T) {
	a := newTestApp(t)
	a.config.FreshnessInterval = 5 * time.Millisecond
	ctx := context.Background()

	reporter, err := a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)

	poller := a.NewFeedPoller("TEMPLE_001")

	var mu sync.Mutex
	var latest []models.Item
	poller.Subscribe(func(feed []models.Item) {
		mu.Lock()
		latest = feed
		mu.Unlock()
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go poller.Run(runCtx)

	_, err = a.Items.Create(ctx, items.CreateParams{
		Title:       "Black Wallet",
		Description: "Leather wallet with ID cards inside",
		Location:    "Main Gate",
	}, reporter.ID, "TEMPLE_001")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(latest) == 1 && latest[0].Title == "Black Wallet"
	}, time.Second, 5*time.Millisecond)
}

func TestAppAdvisorSuggestsExistingReports(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	reporter, err := a.CheckIn(ctx, "TEMPLE_001", models.CheckInQR)
	require.NoError(t, err)

	existing, err := a.Items.Create(ctx, items.CreateParams{
		Title:       "Black Wallet",
		Description: "Leather wallet with ID cards inside",
		Location:    "Main Gate",
	}, reporter.ID, "TEMPLE_001")
	require.NoError(t, err)

	var mu sync.Mutex
	var suggested []models.Item
	a.Advisor.Suggest(ctx, "Wallet", "some other description text", "TEMPLE_001",
		func(d []models.Item) {
			mu.Lock()
			suggested = d
			mu.Unlock()
		})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(suggested) == 1 && suggested[0].ID == existing.Item.ID
	}, 5*time.Second, 10*time.Millisecond)
}

func TestGuardRecoversPanic(t *testing.T) {
	a := newTestApp(t)

	err := Guard(context.Background(), a.logger, func() error {
		panic("boom")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	assert.NoError(t, Guard(context.Background(), a.logger, func() error { return nil }))
}
