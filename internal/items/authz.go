package items

import "github.com/faithguard/faithguard/internal/models"

// Authorization predicates for case actions. The store applies them
// uniformly on every status-changing operation, so callers cannot forget
// them.

// CanMarkFound reports whether the session may mark the item as found.
// Reporters cannot find their own item.
func CanMarkFound(sessionID string, item *models.Item) bool {
	return sessionID != "" && item != nil && !item.IsReporter(sessionID)
}

// CanClose reports whether the session may close the case. Only the
// reporter may.
func CanClose(sessionID string, item *models.Item) bool {
	return item.IsReporter(sessionID)
}

// CanRemoveReward reports whether the session may remove the item's reward.
// Only the reporter may.
func CanRemoveReward(sessionID string, item *models.Item) bool {
	return item.IsReporter(sessionID)
}
