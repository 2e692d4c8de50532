package model

import (
	"gitlab.com/minerex-platform/admin_api/errs"
)

// MemberFilter selects the member-management listing.
type MemberFilter struct {
	Query  string     // matches email or nickname, optional
	Status UserStatus // optional
	Window Window     // registration window
	Paging Paging
}

// Validate rejects out-of-domain filter values before any source call.
func (f MemberFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errs.InvalidArgument("unknown member status: " + string(f.Status))
	}
	return nil
}

// MemberList is the paged member-management response.
type MemberList struct {
	Users []User     `json:"users"`
	Meta  PagingMeta `json:"meta"`
}

// MemberDetail is a single member with derived referral figures.
type MemberDetail struct {
	User      User         `json:"user"`
	TeamCount int64        `json:"team_count"`
	Rollup    RollupMetric `json:"rollup"`
}
