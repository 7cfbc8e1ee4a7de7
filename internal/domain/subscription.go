package domain

import "time"

// ExpiryNoticeDays lists the remaining-day marks, descending, at which a
// one-time reminder is sent before a paid term lapses.
var ExpiryNoticeDays = []int{7, 3, 1}

const day = 24 * time.Hour

// RemainingDays returns how many whole days of paid access remain, rounding
// partial days up. Non-paid records and records without a term report 0.
func RemainingDays(u *User, now time.Time) int {
	if u.Status != StatusPaid || u.ExpireAt == nil {
		return 0
	}
	diff := u.ExpireAt.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int((diff + day - 1) / day)
	return days
}

// ResolveExpiry transitions a paid record whose term has lapsed to expired.
// It returns whether the transition happened on this call, so the caller can
// persist the store and send the one-time revocation notice. Calling it on an
// already-expired or unset record is a no-op.
//
// ExpiryNotified is set on transition so a stale pre-expiry reminder cannot
// fire afterward.
func ResolveExpiry(u *User, now time.Time) bool {
	if u.Status != StatusPaid || u.ExpireAt == nil || !now.After(*u.ExpireAt) {
		return false
	}
	u.Status = StatusExpired
	u.ExpiryNotified = true
	return true
}

// IsEntitled reports whether the record, after lazy expiry resolution, still
// permits AI replies.
func IsEntitled(u *User, now time.Time) bool {
	ResolveExpiry(u, now)
	return u.Status == StatusPaid
}

// NoticeDue reports whether a pre-expiry reminder should fire now, and for
// how many remaining days. A reminder fires when the remaining days land
// exactly on one of ExpiryNoticeDays and no reminder is pending
// acknowledgement via the ExpiryNotified flag. The caller marks the record
// notified and persists after dispatching.
func NoticeDue(u *User, now time.Time) (int, bool) {
	if u.Status != StatusPaid || u.ExpireAt == nil || u.ExpiryNotified {
		return 0, false
	}
	remaining := RemainingDays(u, now)
	for _, d := range ExpiryNoticeDays {
		if remaining == d {
			return remaining, true
		}
	}
	return 0, false
}

// ResetNoticeFlag clears ExpiryNotified once the term sits comfortably above
// the largest reminder threshold again, so a later legitimate reminder is not
// skipped after a long extension. A term extended to just above a threshold
// but not above the largest one keeps the flag set; that asymmetry is a known
// limitation inherited from the metering rules, not something to smooth over.
func ResetNoticeFlag(u *User, now time.Time) bool {
	if !u.ExpiryNotified || u.Status != StatusPaid {
		return false
	}
	max := ExpiryNoticeDays[0]
	for _, d := range ExpiryNoticeDays {
		if d > max {
			max = d
		}
	}
	if RemainingDays(u, now) > max {
		u.ExpiryNotified = false
		return true
	}
	return false
}

// Grant activates (or re-activates) access for days from now. It clears the
// reminder flag so the fresh term gets its own reminders, and replaces the
// quota only when one is supplied.
func Grant(u *User, now time.Time, days int, quota *int) {
	expire := now.Add(time.Duration(days) * day)
	u.Status = StatusPaid
	u.ExpireAt = &expire
	u.ExpiryNotified = false
	if quota != nil {
		q := *quota
		u.Quota = &q
	}
	u.LastUpdated = now
}
