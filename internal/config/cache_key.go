package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the cache key holding a user's active login JTI.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// RiskAlertsKey returns the cache key for the precomputed risk-alert list.
func (r *CacheKeyStruct) RiskAlertsKey() string {
	return "risk:alerts"
}

// SubmissionChannel returns the PubSub channel that announces newly
// submitted attendance sessions to background workers.
func (r *CacheKeyStruct) SubmissionChannel() string {
	return "attendance:submitted"
}

// NotificationChannel returns the PubSub channel carrying notification
// events for live WebSocket delivery.
func (r *CacheKeyStruct) NotificationChannel() string {
	return "notifications:events"
}

var CacheKey = NewCacheKeyStruct()
