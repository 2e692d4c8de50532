package service

import (
	"context"
	"fmt"

	"gitlab.com/minerex-platform/admin_api/model"
)

// GetWithdrawals lists withdrawal requests for the oversight screen.
func (service *Service) GetWithdrawals(ctx context.Context, filter model.WithdrawFilter) (*model.WithdrawList, error) {
	requests, total, err := service.repo.QueryWithdrawals(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &model.WithdrawList{
		Requests: requests,
		Meta: model.PagingMeta{
			Limit:  filter.Paging.Limit,
			Offset: filter.Paging.Offset,
			Count:  total,
			Filter: map[string]interface{}{
				"status": filter.Status,
			},
		},
	}, nil
}

// ReviewWithdrawal resolves a pending withdrawal request one way or the
// other and records the decision in the audit trail.
func (service *Service) ReviewWithdrawal(ctx context.Context, adminID uint64, ip string, requestID uint64, status model.WithdrawStatus) (*model.WithdrawRequest, error) {
	request, err := service.repo.GetWithdrawRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := request.ResolveTo(status); err != nil {
		return nil, err
	}
	if err := service.repo.UpdateWithdrawStatus(ctx, request); err != nil {
		return nil, err
	}
	detail := fmt.Sprintf("withdrawal %d %s", requestID, status)
	service.RecordAdminActivity(ctx, model.NewAdminActivity(adminID, "withdrawal.review", "withdraw_request", requestID, detail, ip))
	return request, nil
}
