// Package storage provides the key-value persistence layer backing the
// singleton records: session, admin token, last-known temple code, report
// draft, cached push token and the permission prompt flag. Table-shaped data
// (items, messages, notifications) lives in internal/repositories instead.
package storage

import "context"

// Storage keys. Names kept stable so existing stored data survives upgrades.
const (
	KeySession        = "faithguard_session"
	KeyAdminSession   = "faithguard_admin_session"
	KeyTempleCode     = "faithguard_temple_code"
	KeyReportDraft    = "faithguard_report_draft"
	KeyPushToken      = "faithguard_fcm_token"
	KeyPushSessionID  = "faithguard_fcm_sessionid"
	KeyPushTempleCode = "faithguard_fcm_templecode"
	KeyPromptSeen     = "faithguard_notification_prompt_seen"
)

// KV is a minimal key-value store. Get returns common.ErrorNotFound for
// missing keys; Delete on a missing key is a no-op.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
