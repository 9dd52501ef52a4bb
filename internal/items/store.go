// Package items implements the item store: reported lost-item cases, their
// one-directional status lifecycle, duplicate detection and search. Item
// mutations publish typed events consumed by the notification center.
package items

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/faithguard/faithguard/internal/common"
	"github.com/faithguard/faithguard/internal/events"
	"github.com/faithguard/faithguard/internal/logging"
	"github.com/faithguard/faithguard/internal/models"
	"github.com/faithguard/faithguard/internal/repositories/items"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateParams carries a validated lost-item report.
type CreateParams struct {
	Title        string   `validate:"required,min=3,max=100"`
	Description  string   `validate:"required,min=10,max=500"`
	Location     string   `validate:"required"`
	Image        string   `validate:"-"`
	Category     string   `validate:"-"`
	RewardAmount *float64 `validate:"omitnil,gt=0"`
}

// CreateResult bundles the stored item with duplicate information. Duplicate
// detection is advisory: the caller decides whether to warn or proceed.
type CreateResult struct {
	Item                   models.Item
	HasPotentialDuplicates bool
	Duplicates             []models.Item
}

// UpdateFieldsParams is a partial patch; nil fields are left untouched.
type UpdateFieldsParams struct {
	Title        *string
	Description  *string
	Location     *string
	Image        *string
	Category     *string
	RewardAmount *float64
	RewardGiven  *bool
}

// Store provides CRUD, lifecycle and query operations over reported items.
type Store struct {
	repo     items.Repository
	bus      *events.Bus
	validate *validator.Validate
	logger   logging.Logger
	now      func() time.Time
}

func NewStore(repo items.Repository, bus *events.Bus, logger logging.Logger) *Store {
	return &Store{
		repo:     repo,
		bus:      bus,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// ListActive returns the temple's feed: every item whose case is not closed.
func (s *Store) ListActive(ctx context.Context, templeCode string) ([]models.Item, error) {
	return s.repo.ListByTemple(ctx, templeCode, false)
}

// ListAll returns every item for the temple including closed cases, for the
// admin and history views.
func (s *Store) ListAll(ctx context.Context, templeCode string) ([]models.Item, error) {
	return s.repo.ListByTemple(ctx, templeCode, true)
}

// ListByReporter returns the items the session reported within the temple.
func (s *Store) ListByReporter(ctx context.Context, templeCode, sessionID string) ([]models.Item, error) {
	return s.repo.ListByReporter(ctx, templeCode, sessionID)
}

// GetByID returns a single item regardless of status.
func (s *Store) GetByID(ctx context.Context, itemID string) (*models.Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// Create validates and stores a new report with status=active, returning the
// item together with potential duplicates among active same-temple items.
func (s *Store) Create(ctx context.Context, params CreateParams, reporterSessionID, templeCode string) (*CreateResult, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	duplicates, err := s.CheckForDuplicates(ctx, params.Title, params.Description, templeCode)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item := models.Item{
		ID:                "item_" + uuid.NewString(),
		Title:             params.Title,
		Description:       params.Description,
		Location:          params.Location,
		Image:             params.Image,
		Category:          params.Category,
		TempleCode:        templeCode,
		ReporterSessionID: reporterSessionID,
		Status:            models.StatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
		RewardAmount:      params.RewardAmount,
		RewardGiven:       false,
	}

	if err := s.repo.Save(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to create item report: %w", err)
	}

	s.logger.Info(ctx, "item reported", "item", item.ID, "temple", templeCode, "duplicates", len(duplicates))
	s.bus.Publish(events.ItemReported{Item: item, Duplicates: duplicates})

	return &CreateResult{
		Item:                   item,
		HasPotentialDuplicates: len(duplicates) > 0,
		Duplicates:             duplicates,
	}, nil
}

// UpdateStatus moves the case to newStatus, enforcing both transition
// legality (active → found → closed, or active → closed) and authorization:
// only a non-reporter may mark found, only the reporter may close. Closing
// stamps ClosedAt and force-nulls the reward amount.
func (s *Store) UpdateStatus(ctx context.Context, itemID string, newStatus models.ItemStatus, actingSessionID string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(item.Status, newStatus) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrIllegalTransition, item.Status, newStatus)
	}

	switch newStatus {
	case models.StatusFound:
		if !CanMarkFound(actingSessionID, item) {
			return nil, common.ErrorUnauthorized
		}
		found := actingSessionID
		item.FoundBySessionID = &found
	case models.StatusClosed:
		if !CanClose(actingSessionID, item) {
			return nil, common.ErrorUnauthorized
		}
		closedAt := s.now()
		item.ClosedAt = &closedAt
		item.RewardAmount = nil
	}

	item.Status = newStatus
	item.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item status: %w", err)
	}

	s.logger.Info(ctx, "case status changed", "item", item.ID, "status", string(newStatus))
	if newStatus == models.StatusFound {
		s.bus.Publish(events.ItemFound{Item: *item, BySessionID: actingSessionID})
	}
	s.bus.Publish(events.CaseStatusChanged{Item: *item, NewStatus: newStatus})

	return item, nil
}

// UpdateFields applies a partial patch and stamps UpdatedAt.
func (s *Store) UpdateFields(ctx context.Context, itemID string, params UpdateFieldsParams) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		item.Title = *params.Title
	}
	if params.Description != nil {
		item.Description = *params.Description
	}
	if params.Location != nil {
		item.Location = *params.Location
	}
	if params.Image != nil {
		item.Image = *params.Image
	}
	if params.Category != nil {
		item.Category = *params.Category
	}
	if params.RewardAmount != nil {
		item.RewardAmount = params.RewardAmount
	}
	if params.RewardGiven != nil {
		item.RewardGiven = *params.RewardGiven
	}
	item.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return item, nil
}

// RemoveReward clears the item's reward. Only the reporter may.
func (s *Store) RemoveReward(ctx context.Context, itemID, actingSessionID string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !CanRemoveReward(actingSessionID, item) {
		return nil, common.ErrorUnauthorized
	}

	item.RewardAmount = nil
	item.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to remove reward: %w", err)
	}
	return item, nil
}

// CheckForDuplicates runs the containment heuristic against active
// same-temple items.
func (s *Store) CheckForDuplicates(ctx context.Context, title, description, templeCode string) ([]models.Item, error) {
	active, err := s.repo.ListByTemple(ctx, templeCode, false)
	if err != nil {
		return nil, err
	}
	return findDuplicates(title, description, active), nil
}

// Search filters the active feed by a case-insensitive substring match over
// title, description and location. An empty query returns the whole feed.
func (s *Store) Search(ctx context.Context, templeCode, query string) ([]models.Item, error) {
	active, err := s.repo.ListByTemple(ctx, templeCode, false)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return active, nil
	}

	var result []models.Item
	for _, item := range active {
		if strings.Contains(strings.ToLower(item.Title), term) ||
			strings.Contains(strings.ToLower(item.Description), term) ||
			strings.Contains(strings.ToLower(item.Location), term) {
			result = append(result, item)
		}
	}
	return result, nil
}
