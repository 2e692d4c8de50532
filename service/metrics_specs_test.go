package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The overview renders the batch in table order, so the order itself is
// part of the contract.
var wantMetricOrder = []string{
	"total_rewards",
	"referral_bonus_total",
	"progress_rewards",
	"engagement_rewards",
	"referral_registrations",
	"new_members",
	"active_earners",
	"blocked_members",
	"pending_withdrawals",
	"withdrawal_volume",
}

func TestMetricSpecsTable(t *testing.T) {
	service := &Service{}
	specs := service.metricSpecs()

	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	assert.Equal(t, wantMetricOrder, names)

	for _, spec := range specs {
		assert.NotNil(t, spec.Query, "metric %s has no query", spec.Name)
		if assert.NotNil(t, spec.Fallback, "metric %s has no fallback", spec.Name) {
			assert.Zero(t, spec.Fallback.Sign(), "metric %s fallback must be neutral", spec.Name)
		}
	}
}
