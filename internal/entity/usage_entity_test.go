package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckQuota(t *testing.T) {
	tests := []struct {
		name          string
		used          int
		allowed       int
		wantAllowed   bool
		wantRemaining int
	}{
		{"nothing used", 0, 5, true, 5},
		{"one left", 4, 5, true, 1},
		{"exactly at limit", 5, 5, false, 0},
		{"over limit", 7, 5, false, 0},
		{"zero quota", 0, 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckQuota(tt.used, tt.allowed)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantRemaining, d.Remaining)
		})
	}
}

func TestCheckQuotaBatch(t *testing.T) {
	tests := []struct {
		name          string
		used          int
		allowed       int
		requested     int
		wantAllowed   bool
		wantRemaining int
	}{
		// On rejection Remaining is what is left right now; on
		// acceptance it is what would be left after the grant.
		{"request exceeds remaining", 3, 5, 3, false, 2},
		{"request fits exactly", 3, 5, 2, true, 0},
		{"request below remaining", 0, 5, 3, true, 2},
		{"already over quota", 6, 5, 1, false, 0},
		{"single unit matches CheckQuota", 4, 5, 1, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CheckQuotaBatch(tt.used, tt.allowed, tt.requested)
			assert.Equal(t, tt.wantAllowed, d.Allowed)
			assert.Equal(t, tt.wantRemaining, d.Remaining)
		})
	}
}
