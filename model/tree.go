package model

import (
	"time"

	"gitlab.com/minerex-platform/admin_api/errs"
)

// TreeSort is the caller-selectable ordering for top-level members.
type TreeSort string

const (
	TreeSort_Level    TreeSort = "level"
	TreeSort_TeamSize TreeSort = "team_size"
)

func (s TreeSort) IsValid() bool {
	switch s {
	case TreeSort_Level, TreeSort_TeamSize:
		return true
	default:
		return false
	}
}

// TreeFilter selects and orders the top-level page of the referral view.
type TreeFilter struct {
	Query  string     // matches email or nickname, optional
	Status UserStatus // optional member status filter
	Window Window     // registration window for top-level members
	SortBy TreeSort
	Paging Paging
}

// Validate rejects out-of-domain filter values before any source call.
func (f *TreeFilter) Validate() error {
	if f.SortBy == "" {
		f.SortBy = TreeSort_TeamSize
	}
	if !f.SortBy.IsValid() {
		return errs.InvalidArgument("unknown tree sort key: " + string(f.SortBy))
	}
	if f.Status != "" && !f.Status.IsValid() {
		return errs.InvalidArgument("unknown member status: " + string(f.Status))
	}
	return nil
}

// TreeChild is one direct descendant with its own rollup. Children are
// materialized in full for a parent, never paginated.
type TreeChild struct {
	UserId     uint64       `json:"user_id"`
	Email      string       `json:"email"`
	Nickname   string       `json:"nickname"`
	UserLevel  int          `json:"user_level"`
	JoinedAt   time.Time    `json:"joined_at"`
	JoinedDate string       `json:"joined_date"`
	Rollup     RollupMetric `json:"rollup"`
}

// TreeNode is a top-level member with its fully materialized direct team.
// TeamCount counts direct descendants only, not the transitive subtree.
type TreeNode struct {
	User      User         `json:"user"`
	TeamCount int64        `json:"team_count"`
	Rollup    RollupMetric `json:"rollup"`
	Children  []TreeChild  `json:"children"`
}

// TreePage is the paged referral-tree response.
type TreePage struct {
	Nodes []TreeNode `json:"nodes"`
	Meta  PagingMeta `json:"meta"`
}
