// Package teams builds the two-level referral view: a paginated page of
// top-level members, each carrying its fully materialized direct team.
package teams

import (
	"context"
	"time"

	"github.com/ericlagergren/decimal"
	"golang.org/x/sync/errgroup"

	"gitlab.com/minerex-platform/admin_api/conv"
	"gitlab.com/minerex-platform/admin_api/model"
)

// JoinedDateFormat renders a child's registration date for list views.
const JoinedDateFormat = "2006-01-02 15:04:05"

// EdgeSource is the read-only referral-graph access the assembler
// consumes. Children are fetched for a whole page of parents at once,
// keyed by the parent-id set, never one round-trip per parent.
type EdgeSource interface {
	QueryTopLevel(ctx context.Context, filter model.TreeFilter) ([]model.User, int64, error)
	QueryDirectDescendants(ctx context.Context, parentIDs []uint64, window model.Window) ([]model.ReferralEdgeWithUser, error)
	CountDirectDescendants(ctx context.Context, parentIDs []uint64) (map[uint64]int64, error)
}

// LedgerSource provides the batched per-user reward sums. The cutoff is
// inclusive so a tree rollup matches a single-user rollup as of the same
// instant.
type LedgerSource interface {
	SumLedgerByUsersThrough(ctx context.Context, userIDs []uint64, categories []model.RewardCategory, cutoff time.Time) (map[uint64]*decimal.Big, error)
}

// Assembler materializes referral-tree pages. A failure in any fetch
// fails the whole page: a partially built tree is worse than a clear
// error.
type Assembler struct {
	edges  EdgeSource
	ledger LedgerSource
}

func NewAssembler(edges EdgeSource, ledger LedgerSource) *Assembler {
	return &Assembler{edges: edges, ledger: ledger}
}

// BuildPage returns one page of top-level nodes and the unpaged total.
// The filter window selects top-level members by registration date; a
// parent's team is always materialized in full so the children set equals
// exactly its active edges. The reference instant stamps every rollup.
func (a *Assembler) BuildPage(ctx context.Context, filter model.TreeFilter, now time.Time) ([]model.TreeNode, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	parents, total, err := a.edges.QueryTopLevel(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	nodes := make([]model.TreeNode, 0, len(parents))
	if len(parents) == 0 {
		return nodes, total, nil
	}

	parentIDs := make([]uint64, len(parents))
	for i, p := range parents {
		parentIDs[i] = p.ID
	}

	var children []model.ReferralEdgeWithUser
	var teamCounts map[uint64]int64

	wg, wgCtx := errgroup.WithContext(ctx)
	wg.Go(func() error {
		var err error
		children, err = a.edges.QueryDirectDescendants(wgCtx, parentIDs, model.AllTime)
		return err
	})
	wg.Go(func() error {
		var err error
		teamCounts, err = a.edges.CountDirectDescendants(wgCtx, parentIDs)
		return err
	})
	if err := wg.Wait(); err != nil {
		return nil, 0, err
	}

	// source order is join-time descending; grouping keeps it per parent
	byParent := make(map[uint64][]model.ReferralEdgeWithUser, len(parents))
	memberIDs := parentIDs
	for _, child := range children {
		byParent[child.ReferrerId] = append(byParent[child.ReferrerId], child)
		memberIDs = append(memberIDs, child.ReferredId)
	}

	sums, err := a.sumByCategory(ctx, memberIDs, now)
	if err != nil {
		return nil, 0, err
	}

	for _, parent := range parents {
		node := model.TreeNode{
			User:      parent,
			TeamCount: teamCounts[parent.ID],
			Rollup:    rollupFor(parent.ID, sums, now),
			Children:  make([]model.TreeChild, 0, len(byParent[parent.ID])),
		}
		for _, child := range byParent[parent.ID] {
			node.Children = append(node.Children, model.TreeChild{
				UserId:     child.ReferredId,
				Email:      child.Email,
				Nickname:   child.Nickname,
				UserLevel:  child.UserLevel,
				JoinedAt:   child.JoinedAt,
				JoinedDate: child.JoinedAt.Format(JoinedDateFormat),
				Rollup:     rollupFor(child.ReferredId, sums, now),
			})
		}
		nodes = append(nodes, node)
	}
	return nodes, total, nil
}

// sumByCategory runs one grouped ledger query per reward category over
// the whole member set, concurrently.
func (a *Assembler) sumByCategory(ctx context.Context, memberIDs []uint64, now time.Time) (map[model.RewardCategory]map[uint64]*decimal.Big, error) {
	sums := make(map[model.RewardCategory]map[uint64]*decimal.Big, len(model.RewardCategories))

	wg, wgCtx := errgroup.WithContext(ctx)
	results := make([]map[uint64]*decimal.Big, len(model.RewardCategories))
	for i, category := range model.RewardCategories {
		i, category := i, category
		wg.Go(func() error {
			var err error
			results[i], err = a.ledger.SumLedgerByUsersThrough(wgCtx, memberIDs, []model.RewardCategory{category}, now)
			return err
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}
	for i, category := range model.RewardCategories {
		sums[category] = results[i]
	}
	return sums, nil
}

func rollupFor(userID uint64, sums map[model.RewardCategory]map[uint64]*decimal.Big, asOf time.Time) model.RollupMetric {
	metric := model.RollupMetric{
		UserId:               userID,
		CumulativeByCategory: make(map[model.RewardCategory]model.JSONDecimal, len(model.RewardCategories)),
		AsOf:                 asOf,
	}
	for category, byUser := range sums {
		metric.CumulativeByCategory[category] = model.NewJSONDecimal(conv.Sum(byUser[userID]))
	}
	return metric
}
