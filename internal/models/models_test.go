package models

import (
	"testing"
	"time"
)

func TestDropLimit(t *testing.T) {
	tests := []struct {
		name string
		tier SubscriptionTier
		want int
	}{
		{"Free tier", TierFree, 90},
		{"Pro tier", TierPro, 20},
		{"Gold tier", TierGold, 50},
		{"Unknown tier falls back to Free", SubscriptionTier("PLATINUM"), 90},
		{"Empty tier falls back to Free", SubscriptionTier(""), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DropLimit(tt.tier); got != tt.want {
				t.Errorf("DropLimit(%q) = %d, want %d", tt.tier, got, tt.want)
			}
		})
	}
}

func TestPickupRadius(t *testing.T) {
	tests := []struct {
		name string
		tier SubscriptionTier
		want float64
	}{
		{"Free tier", TierFree, 50},
		{"Pro tier", TierPro, 150},
		{"Gold tier", TierGold, 300},
		{"Unknown tier falls back to Free", SubscriptionTier("bogus"), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickupRadius(tt.tier); got != tt.want {
				t.Errorf("PickupRadius(%q) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want SubscriptionTier
	}{
		{"FREE", TierFree},
		{"PRO", TierPro},
		{"GOLD", TierGold},
		{"", TierFree},
		{"pro", TierFree}, // case-sensitive on purpose; stored values are upper
		{"SILVER", TierFree},
	}

	for _, tt := range tests {
		if got := ParseTier(tt.in); got != tt.want {
			t.Errorf("ParseTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEffectiveCount(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	todayEarly := time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC)
	lastNightUTC := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		name  string
		quota UserQuota
		want  int
	}{
		{"No drops yet", UserQuota{DailyDropCount: 0, LastDropDate: nil}, 0},
		{"Dropped earlier today", UserQuota{DailyDropCount: 5, LastDropDate: &todayEarly}, 5},
		{"Stale count from yesterday resets", UserQuota{DailyDropCount: 90, LastDropDate: &yesterday}, 0},
		{"A minute before UTC midnight counts as yesterday", UserQuota{DailyDropCount: 3, LastDropDate: &lastNightUTC}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quota.EffectiveCount(now); got != tt.want {
				t.Errorf("EffectiveCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEffectiveCountUsesUTCDate(t *testing.T) {
	// 2025-06-15 01:00 UTC stored as 2025-06-14 21:00 in UTC-4: same UTC
	// day as now, so the count must survive.
	loc := time.FixedZone("UTC-4", -4*60*60)
	last := time.Date(2025, 6, 14, 21, 0, 0, 0, loc)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	quota := UserQuota{DailyDropCount: 7, LastDropDate: &last}
	if got := quota.EffectiveCount(now); got != 7 {
		t.Errorf("EffectiveCount = %d, want 7 (last drop is on today's UTC date)", got)
	}
}

func TestMessageToResponse(t *testing.T) {
	created := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	message := Message{
		ID:        42,
		UUID:      "aaaa-bbbb",
		OwnerID:   7,
		Owner:     User{ID: 7, Username: "dropper", Avatar: "fox", Email: "d@example.com"},
		Text:      "hello there",
		Latitude:  40.0,
		Longitude: -74.0,
		Cell:      "-7400:3999",
		CreatedAt: created,
	}

	resp := message.ToResponse()
	if resp.ID != 42 || resp.UUID != "aaaa-bbbb" || resp.OwnerID != 7 {
		t.Errorf("identifiers not carried over: %+v", resp)
	}
	if resp.Owner.Username != "dropper" || resp.Owner.Avatar != "fox" {
		t.Errorf("owner display not carried over: %+v", resp.Owner)
	}
	if resp.Text != "hello there" || resp.Latitude != 40.0 || resp.Longitude != -74.0 {
		t.Errorf("payload not carried over: %+v", resp)
	}
	if !resp.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", resp.CreatedAt, created)
	}
}

func TestUserToDisplayOmitsPrivateFields(t *testing.T) {
	user := User{ID: 3, Username: "someone", Email: "private@example.com", Avatar: "owl", PasswordHash: "secret"}
	display := user.ToDisplay()
	if display.ID != 3 || display.Username != "someone" || display.Avatar != "owl" {
		t.Errorf("ToDisplay = %+v", display)
	}
}
