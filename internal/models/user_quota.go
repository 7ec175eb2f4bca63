package models

import (
	"time"
)

// UserQuota tracks how many messages a user has dropped today. The counter
// is never reset by a job; staleness is detected at check time by comparing
// LastDropDate against the current UTC calendar date.
type UserQuota struct {
	UserID    uint      `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DailyDropCount int        `gorm:"not null;default:0" json:"daily_drop_count"`
	LastDropDate   *time.Time `json:"last_drop_date"`
}

func utcDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EffectiveCount returns the drop count that applies right now: zero when
// the last drop happened before today's UTC date, the stored count otherwise.
func (q *UserQuota) EffectiveCount(now time.Time) int {
	if q.LastDropDate == nil {
		return 0
	}
	if utcDate(*q.LastDropDate).Before(utcDate(now)) {
		return 0
	}
	return q.DailyDropCount
}
