package service

import (
	"context"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

// GetRewardHistory pages one member's ledger, newest first. Export
// consumers pass the unlimited paging sentinel to fetch everything.
func (service *Service) GetRewardHistory(ctx context.Context, userID uint64, categories []model.RewardCategory, window model.Window, paging model.Paging) (*model.LedgerEntryList, error) {
	if _, err := service.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return service.queryLedger(ctx, userID, categories, window, paging)
}

// GetRewardLedger pages the ledger across all members for the platform
// wide history screen.
func (service *Service) GetRewardLedger(ctx context.Context, categories []model.RewardCategory, window model.Window, paging model.Paging) (*model.LedgerEntryList, error) {
	return service.queryLedger(ctx, 0, categories, window, paging)
}

func (service *Service) queryLedger(ctx context.Context, userID uint64, categories []model.RewardCategory, window model.Window, paging model.Paging) (*model.LedgerEntryList, error) {
	for _, category := range categories {
		if !category.IsValid() {
			return nil, errs.InvalidArgument("unknown reward category: " + string(category))
		}
	}
	entries, total, err := service.repo.QueryLedgerEntries(ctx, userID, categories, window, paging)
	if err != nil {
		return nil, err
	}
	return &model.LedgerEntryList{
		Entries: entries,
		Meta: model.PagingMeta{
			Limit:  paging.Limit,
			Offset: paging.Offset,
			Count:  total,
		},
	}, nil
}
