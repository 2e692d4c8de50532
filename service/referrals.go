package service

import (
	"context"
	"time"

	"gitlab.com/minerex-platform/admin_api/model"
)

// ResolveWindow turns request parameters into a validated half-open
// window. A preset wins over explicit bounds; everything is resolved
// against the current instant in the deployment's reference zone.
func (service *Service) ResolveWindow(preset string, from, to time.Time) (model.Window, error) {
	if preset != "" {
		return model.PresetWindow(model.WindowPreset(preset), service.now(), service.location)
	}
	return model.NewWindow(from, to)
}

// GetReferralTree builds one page of the two-level referral view.
func (service *Service) GetReferralTree(ctx context.Context, filter model.TreeFilter) (*model.TreePage, error) {
	nodes, total, err := service.trees.BuildPage(ctx, filter, service.now())
	if err != nil {
		return nil, err
	}
	return &model.TreePage{
		Nodes: nodes,
		Meta: model.PagingMeta{
			Limit:  filter.Paging.Limit,
			Offset: filter.Paging.Offset,
			Count:  total,
			Filter: map[string]interface{}{
				"query":   filter.Query,
				"status":  filter.Status,
				"sort_by": filter.SortBy,
			},
		},
	}, nil
}

// GetMemberRollup computes the member's cumulative per-category sums as
// of now. The member must exist; a rollup over an unknown id would
// silently read as an empty ledger.
func (service *Service) GetMemberRollup(ctx context.Context, userID uint64, categories []model.RewardCategory) (model.RollupMetric, error) {
	if _, err := service.repo.GetUser(ctx, userID); err != nil {
		return model.RollupMetric{}, err
	}
	return service.rollups.Rollup(ctx, userID, categories, service.now())
}

// GetBeforeAfter returns the cumulative value immediately before and
// after one ledger event of the member.
func (service *Service) GetBeforeAfter(ctx context.Context, userID, entryID uint64) (*model.BeforeAfter, error) {
	return service.rollups.BeforeAfter(ctx, userID, entryID)
}

// GetDashboard assembles the admin overview for the window.
func (service *Service) GetDashboard(ctx context.Context, window model.Window) (*model.DashboardSnapshot, error) {
	return service.dashboards.Assemble(ctx, window, service.now())
}

// CollectMetrics runs the metric batch alone, without the leaderboards
// and notifications, for the gauge refresh job.
func (service *Service) CollectMetrics(ctx context.Context, window model.Window) []model.MetricSnapshot {
	return service.metrics.Collect(ctx, window)
}
