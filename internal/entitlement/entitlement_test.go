package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"revenew/pkg/domain"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)
	tracked := []string{"pro_monthly", "pro_yearly"}

	tests := []struct {
		name         string
		entitlements []domain.Transaction
		want         bool
	}{
		{
			name:         "empty snapshot",
			entitlements: nil,
			want:         false,
		},
		{
			name: "active tracked subscription",
			entitlements: []domain.Transaction{
				{ProductID: "pro_monthly", ExpirationDate: &future},
			},
			want: true,
		},
		{
			name: "non-expiring tracked purchase",
			entitlements: []domain.Transaction{
				{ProductID: "pro_yearly"},
			},
			want: true,
		},
		{
			name: "untracked product only",
			entitlements: []domain.Transaction{
				{ProductID: "other_app_sub", ExpirationDate: &future},
			},
			want: false,
		},
		{
			name: "expired subscription",
			entitlements: []domain.Transaction{
				{ProductID: "pro_monthly", ExpirationDate: &past},
			},
			want: false,
		},
		{
			name: "expiring exactly now",
			entitlements: []domain.Transaction{
				{ProductID: "pro_monthly", ExpirationDate: &now},
			},
			want: false,
		},
		{
			name: "revoked purchase",
			entitlements: []domain.Transaction{
				{ProductID: "pro_monthly", RevocationDate: &past, ExpirationDate: &future},
			},
			want: false,
		},
		{
			name: "one active among expired and untracked",
			entitlements: []domain.Transaction{
				{ProductID: "other_app_sub", ExpirationDate: &future},
				{ProductID: "pro_monthly", ExpirationDate: &past},
				{ProductID: "pro_yearly", ExpirationDate: &future},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.entitlements, tracked, now))
		})
	}
}

func TestEvaluateNoTrackedIDs(t *testing.T) {
	now := time.Now()
	entitlements := []domain.Transaction{{ProductID: "pro_monthly"}}
	assert.False(t, Evaluate(entitlements, nil, now))
}
