package model

import (
	"testing"
	"time"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		status  string
		endDate time.Time
		want    string
	}{
		{"trial still running", SubscriptionTrial, now.AddDate(0, 0, 7), SubscriptionTrial},
		{"active still running", SubscriptionActive, now.AddDate(0, 0, 20), SubscriptionActive},
		{"trial past end date", SubscriptionTrial, now.AddDate(0, 0, -1), SubscriptionExpired},
		{"active past end date", SubscriptionActive, now.Add(-time.Minute), SubscriptionExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Subscription{Status: tc.status, EndDate: tc.endDate}
			if got := s.EffectiveStatus(now); got != tc.want {
				t.Fatalf("EffectiveStatus = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		endDate time.Time
		want    int
	}{
		{"exactly now", now, 0},
		{"already past", now.AddDate(0, 0, -3), 0},
		{"half a day rounds up", now.Add(12 * time.Hour), 1},
		{"whole week", now.AddDate(0, 0, 7), 7},
		{"seven and a bit", now.AddDate(0, 0, 7).Add(time.Hour), 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Subscription{EndDate: tc.endDate}
			if got := s.DaysLeft(now); got != tc.want {
				t.Fatalf("DaysLeft = %d, want %d", got, tc.want)
			}
		})
	}
}
