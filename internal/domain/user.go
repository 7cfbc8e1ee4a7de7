package domain

import (
	"strconv"
	"time"
)

// Status tracks a subscriber's access state.
type Status string

const (
	StatusUnset   Status = ""
	StatusPaid    Status = "paid"
	StatusExpired Status = "expired"
)

// User is one subscriber record, keyed by the chat address (number + suffix).
// A record is created the first time the owner grants access and is never
// deleted by the bot itself.
type User struct {
	Number         string     `json:"number"`
	Status         Status     `json:"status,omitempty"`
	ExpireAt       *time.Time `json:"expireAt,omitempty"`
	Quota          *int       `json:"quota,omitempty"`
	UsageCount     int        `json:"usageCount"`
	ExpiryNotified bool       `json:"expiryNotified,omitempty"`
	RegisteredAt   time.Time  `json:"registeredAt"`
	LastUpdated    time.Time  `json:"lastUpdated"`
	LastUsed       time.Time  `json:"lastUsed"`
}

// HasQuota reports whether the user may consume one more AI message.
// A nil quota means unlimited.
func (u *User) HasQuota() bool {
	return u.Quota == nil || *u.Quota > 0
}

// ConsumeQuota takes one message off the user's quota. No-op for unlimited
// users. Callers gate on HasQuota first; ConsumeQuota itself does not check.
func (u *User) ConsumeQuota() {
	if u.Quota != nil {
		*u.Quota--
	}
}

// QuotaLabel renders the quota for status/inspect replies.
func (u *User) QuotaLabel() string {
	if u.Quota == nil {
		return "Unlimited"
	}
	return strconv.Itoa(*u.Quota)
}
