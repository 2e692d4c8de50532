package teams

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ericlagergren/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/minerex-platform/admin_api/conv"
	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

type stubEdges struct {
	parents  []model.User
	children []model.ReferralEdgeWithUser
	counts   map[uint64]int64
	fail     error

	childWindows []model.Window
}

func (s *stubEdges) QueryTopLevel(_ context.Context, filter model.TreeFilter) ([]model.User, int64, error) {
	if s.fail != nil {
		return nil, 0, s.fail
	}
	start := filter.Paging.Offset
	if start > len(s.parents) {
		start = len(s.parents)
	}
	page := s.parents[start:]
	if filter.Paging.Limit > 0 && len(page) > filter.Paging.Limit {
		page = page[:filter.Paging.Limit]
	}
	return page, int64(len(s.parents)), nil
}

func (s *stubEdges) QueryDirectDescendants(_ context.Context, parentIDs []uint64, window model.Window) ([]model.ReferralEdgeWithUser, error) {
	s.childWindows = append(s.childWindows, window)
	allowed := map[uint64]bool{}
	for _, id := range parentIDs {
		allowed[id] = true
	}
	var out []model.ReferralEdgeWithUser
	for _, child := range s.children {
		if allowed[child.ReferrerId] {
			out = append(out, child)
		}
	}
	return out, nil
}

func (s *stubEdges) CountDirectDescendants(_ context.Context, parentIDs []uint64) (map[uint64]int64, error) {
	out := map[uint64]int64{}
	for _, id := range parentIDs {
		out[id] = s.counts[id]
	}
	return out, nil
}

type stubEntry struct {
	userID   uint64
	category model.RewardCategory
	amount   string
	at       time.Time
}

// stubTreeLedger folds timestamped entries in memory the way the real
// source folds in SQL, cutoff inclusive.
type stubTreeLedger struct {
	entries []stubEntry
	fail    error
}

func (s *stubTreeLedger) SumLedgerByUsersThrough(_ context.Context, userIDs []uint64, categories []model.RewardCategory, cutoff time.Time) (map[uint64]*decimal.Big, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	inSet := map[model.RewardCategory]bool{}
	for _, category := range categories {
		inSet[category] = true
	}
	allowed := map[uint64]bool{}
	for _, id := range userIDs {
		allowed[id] = true
	}
	out := map[uint64]*decimal.Big{}
	for _, e := range s.entries {
		if !allowed[e.userID] || !inSet[e.category] || e.at.After(cutoff) {
			continue
		}
		value, _ := new(decimal.Big).SetString(e.amount)
		if _, ok := out[e.userID]; !ok {
			out[e.userID] = conv.NewDecimalWithPrecision()
		}
		out[e.userID].Add(out[e.userID], value)
	}
	return out, nil
}

func treeUser(id uint64, email string) model.User {
	return model.User{ID: id, Email: email, Status: model.UserStatusActive}
}

func TestBuildPage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	t1 := now.Add(-48 * time.Hour)
	t2 := now.Add(-24 * time.Hour)

	Convey("Given one top-level member with two active children", t, func() {
		edges := &stubEdges{
			parents: []model.User{treeUser(1, "parent@example.com")},
			// join-time descending, the order the source guarantees
			children: []model.ReferralEdgeWithUser{
				{ReferrerId: 1, ReferredId: 3, Email: "c2@example.com", JoinedAt: t2},
				{ReferrerId: 1, ReferredId: 2, Email: "c1@example.com", JoinedAt: t1},
			},
			counts: map[uint64]int64{1: 2},
		}
		ledger := &stubTreeLedger{entries: []stubEntry{
			{1, model.RewardCategory_Progress, "50", t1},
			{2, model.RewardCategory_Progress, "10", t1},
			{3, model.RewardCategory_Progress, "5", t2},
		}}
		assembler := NewAssembler(edges, ledger)

		Convey("The page carries the full team, newest join first", func() {
			nodes, total, err := assembler.BuildPage(ctx, model.TreeFilter{}, now)
			So(err, ShouldBeNil)
			So(total, ShouldEqual, 1)
			So(nodes, ShouldHaveLength, 1)

			node := nodes[0]
			So(node.TeamCount, ShouldEqual, 2)
			So(node.Children, ShouldHaveLength, 2)
			So(node.Children[0].UserId, ShouldEqual, 3)
			So(node.Children[1].UserId, ShouldEqual, 2)
			So(node.Children[0].JoinedDate, ShouldEqual, t2.Format(JoinedDateFormat))
			So(node.TeamCount, ShouldEqual, int64(len(node.Children)))
		})

		Convey("Every member of the page carries a per-category rollup", func() {
			nodes, _, err := assembler.BuildPage(ctx, model.TreeFilter{}, now)
			So(err, ShouldBeNil)

			node := nodes[0]
			So(node.Rollup.UserId, ShouldEqual, 1)
			So(node.Rollup.AsOf.Equal(now), ShouldBeTrue)
			for _, category := range model.RewardCategories {
				So(node.Rollup.CumulativeByCategory, ShouldContainKey, category)
			}
			So(node.Children[1].Rollup.CumulativeByCategory[model.RewardCategory_Progress].V.Cmp(decimal.New(10, 0)), ShouldEqual, 0)
		})

		Convey("An entry timestamped exactly at the reference instant counts", func() {
			ledger.entries = append(ledger.entries, stubEntry{1, model.RewardCategory_Engagement, "7", now})

			nodes, _, err := assembler.BuildPage(ctx, model.TreeFilter{}, now)
			So(err, ShouldBeNil)
			So(nodes[0].Rollup.CumulativeByCategory[model.RewardCategory_Engagement].V.Cmp(decimal.New(7, 0)), ShouldEqual, 0)
		})

		Convey("A registration window on the filter never narrows a parent's team", func() {
			window, err := model.NewWindow(t2, now)
			So(err, ShouldBeNil)

			nodes, _, err := assembler.BuildPage(ctx, model.TreeFilter{Window: window}, now)
			So(err, ShouldBeNil)
			So(nodes[0].Children, ShouldHaveLength, 2)
			for _, used := range edges.childWindows {
				So(used.IsUnbounded(), ShouldBeTrue)
			}
		})
	})

	Convey("Given a top-level member with no team", t, func() {
		edges := &stubEdges{
			parents: []model.User{treeUser(7, "solo@example.com")},
			counts:  map[uint64]int64{},
		}
		assembler := NewAssembler(edges, &stubTreeLedger{})

		Convey("Children is an empty slice, not nil, and the count is zero", func() {
			nodes, _, err := assembler.BuildPage(ctx, model.TreeFilter{}, now)
			So(err, ShouldBeNil)
			So(nodes[0].Children, ShouldNotBeNil)
			So(nodes[0].Children, ShouldBeEmpty)
			So(nodes[0].TeamCount, ShouldEqual, 0)
			So(nodes[0].Rollup.CumulativeByCategory[model.RewardCategory_Progress].V.Sign(), ShouldEqual, 0)
		})
	})

	Convey("Given an empty top-level page", t, func() {
		assembler := NewAssembler(&stubEdges{}, &stubTreeLedger{})

		Convey("BuildPage returns an empty slice and the unpaged total", func() {
			nodes, total, err := assembler.BuildPage(ctx, model.TreeFilter{}, now)
			So(err, ShouldBeNil)
			So(nodes, ShouldNotBeNil)
			So(nodes, ShouldBeEmpty)
			So(total, ShouldEqual, 0)
		})
	})

	Convey("Given a failing source", t, func() {
		Convey("An edge failure fails the whole page", func() {
			assembler := NewAssembler(&stubEdges{fail: errs.DataSource(errors.New("connection refused"), "edges")}, &stubTreeLedger{})
			_, _, err := assembler.BuildPage(ctx, model.TreeFilter{}, now)
			So(errors.Is(err, errs.ErrDataSourceUnavailable), ShouldBeTrue)
		})

		Convey("A ledger failure fails the whole page", func() {
			edges := &stubEdges{
				parents: []model.User{treeUser(1, "parent@example.com")},
				counts:  map[uint64]int64{},
			}
			assembler := NewAssembler(edges, &stubTreeLedger{fail: errs.DataSource(errors.New("connection refused"), "ledger")})
			_, _, err := assembler.BuildPage(ctx, model.TreeFilter{}, now)
			So(errors.Is(err, errs.ErrDataSourceUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given an invalid filter", t, func() {
		assembler := NewAssembler(&stubEdges{}, &stubTreeLedger{})

		Convey("An unknown sort key is rejected before any source call", func() {
			_, _, err := assembler.BuildPage(ctx, model.TreeFilter{SortBy: "karma"}, now)
			So(errors.Is(err, errs.ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func pageIDs(nodes []model.TreeNode) []uint64 {
	ids := make([]uint64, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.User.ID)
	}
	return ids
}

func TestBuildPagePaginationDeterminism(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	parents := []model.User{
		treeUser(10, "a@example.com"),
		treeUser(11, "b@example.com"),
		treeUser(12, "c@example.com"),
		treeUser(13, "d@example.com"),
		treeUser(14, "e@example.com"),
	}
	edges := &stubEdges{parents: parents, counts: map[uint64]int64{}}
	assembler := NewAssembler(edges, &stubTreeLedger{})

	pageFilter := func(offset int) model.TreeFilter {
		return model.TreeFilter{Paging: model.Paging{Limit: 2, Offset: offset}}
	}

	Convey("Given an unchanged data set", t, func() {
		Convey("The same page requested twice is identical", func() {
			for offset := 0; offset < len(parents); offset += 2 {
				first, firstTotal, err := assembler.BuildPage(ctx, pageFilter(offset), now)
				So(err, ShouldBeNil)
				second, secondTotal, err := assembler.BuildPage(ctx, pageFilter(offset), now)
				So(err, ShouldBeNil)
				So(pageIDs(second), ShouldResemble, pageIDs(first))
				So(secondTotal, ShouldEqual, firstTotal)
			}
		})

		Convey("Concatenated pages reproduce the full set with no gaps or duplicates", func() {
			collected := make([]uint64, 0, len(parents))
			for offset := 0; offset < len(parents); offset += 2 {
				nodes, total, err := assembler.BuildPage(ctx, pageFilter(offset), now)
				So(err, ShouldBeNil)
				So(total, ShouldEqual, int64(len(parents)))
				collected = append(collected, pageIDs(nodes)...)
			}

			full, _, err := assembler.BuildPage(ctx, model.TreeFilter{Paging: model.Paging{Limit: model.LimitAll}}, now)
			So(err, ShouldBeNil)
			So(collected, ShouldResemble, pageIDs(full))

			seen := map[uint64]bool{}
			for _, id := range collected {
				So(seen[id], ShouldBeFalse)
				seen[id] = true
			}
			So(collected, ShouldHaveLength, len(parents))
		})
	})
}
