package service

import (
	"context"

	"github.com/ericlagergren/decimal"

	"gitlab.com/minerex-platform/admin_api/model"
	"gitlab.com/minerex-platform/admin_api/service/dashboard"
)

func countValue(n int64) *decimal.Big {
	return decimal.New(n, 0)
}

// metricSpecs is the fixed dashboard metric table. Order here is the
// order the overview renders; every spec falls back to zero when its
// query degrades.
func (service *Service) metricSpecs() []dashboard.Spec {
	repo := service.repo
	return []dashboard.Spec{
		{
			Name:     "total_rewards",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				return repo.SumLedgerAll(ctx, model.RewardCategories, window)
			},
		},
		{
			Name:     "referral_bonus_total",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				return repo.SumLedgerAll(ctx, []model.RewardCategory{model.RewardCategory_ReferralBonus}, window)
			},
		},
		{
			Name:     "progress_rewards",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				n, err := repo.CountLedgerEntries(ctx, model.RewardCategory_Progress, window)
				return countValue(n), err
			},
		},
		{
			Name:     "engagement_rewards",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				n, err := repo.CountLedgerEntries(ctx, model.RewardCategory_Engagement, window)
				return countValue(n), err
			},
		},
		{
			Name:     "referral_registrations",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				n, err := repo.CountEdges(ctx, window)
				return countValue(n), err
			},
		},
		{
			Name:     "new_members",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				n, err := repo.CountMembers(ctx, "", window)
				return countValue(n), err
			},
		},
		{
			Name:     "active_earners",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				n, err := repo.CountActiveEarners(ctx, window)
				return countValue(n), err
			},
		},
		{
			Name:     "blocked_members",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				n, err := repo.CountMembers(ctx, model.UserStatusBlocked, window)
				return countValue(n), err
			},
		},
		{
			Name:     "pending_withdrawals",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				n, err := repo.CountWithdrawals(ctx, model.WithdrawStatus_Pending, window)
				return countValue(n), err
			},
		},
		{
			Name:     "withdrawal_volume",
			Fallback: new(decimal.Big),
			Query: func(ctx context.Context, window model.Window) (*decimal.Big, error) {
				return repo.SumWithdrawals(ctx, model.WithdrawStatus_Approved, window)
			},
		},
	}
}
