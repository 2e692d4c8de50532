package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

func TestQueryTopLevel(t *testing.T) {
	repo, mock := setupRepo()
	ctx := context.TODO()
	topLevelColumns := []string{"id", "email", "nickname", "referral_code", "user_level", "status", "created_at"}
	registered := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	Convey("it should page the roots with a stable id tie-break behind the team-size sort", t, func() {
		mock.
			ExpectQuery(`SELECT count`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.
			ExpectQuery(`ORDER BY count\(referral_edges\.id\) DESC,users\.id ASC`).
			WillReturnRows(sqlmock.NewRows(topLevelColumns).
				AddRow(1, "parent@example.com", "p1", "REF1", 3, string(model.UserStatusActive), registered).
				AddRow(4, "other@example.com", "p2", "REF4", 1, string(model.UserStatusActive), registered))

		users, total, err := repo.QueryTopLevel(ctx, model.TreeFilter{SortBy: model.TreeSort_TeamSize, Paging: model.Paging{Limit: 20}})
		So(err, ShouldBeNil)
		So(total, ShouldEqual, 2)
		So(users, ShouldHaveLength, 2)
		So(users[0].ID, ShouldEqual, 1)
	})

	Convey("it should keep the same id tie-break behind the level sort", t, func() {
		mock.
			ExpectQuery(`SELECT count`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.
			ExpectQuery(`ORDER BY users\.user_level DESC,users\.id ASC`).
			WillReturnRows(sqlmock.NewRows(topLevelColumns).
				AddRow(1, "parent@example.com", "p1", "REF1", 3, string(model.UserStatusActive), registered))

		users, _, err := repo.QueryTopLevel(ctx, model.TreeFilter{SortBy: model.TreeSort_Level, Paging: model.Paging{Limit: 20}})
		So(err, ShouldBeNil)
		So(users, ShouldHaveLength, 1)
	})
}

func TestCountDirectDescendants(t *testing.T) {
	repo, mock := setupRepo()
	ctx := context.TODO()

	Convey("it should key the grouped counts by parent", t, func() {
		mock.
			ExpectQuery(`SELECT referrer_id, count\(\*\) as total FROM "referral_edges"`).
			WillReturnRows(sqlmock.NewRows([]string{"referrer_id", "total"}).
				AddRow(1, 2).
				AddRow(4, 7))

		counts, err := repo.CountDirectDescendants(ctx, []uint64{1, 2, 4})
		So(err, ShouldBeNil)
		So(counts[1], ShouldEqual, 2)
		So(counts[4], ShouldEqual, 7)
		// a parent without descendants is simply absent
		So(counts, ShouldNotContainKey, uint64(2))
	})

	Convey("it should skip the round-trip for an empty parent set", t, func() {
		counts, err := repo.CountDirectDescendants(ctx, nil)
		So(err, ShouldBeNil)
		So(counts, ShouldBeEmpty)
	})
}

func TestQueryDirectDescendants(t *testing.T) {
	repo, mock := setupRepo()
	ctx := context.TODO()

	Convey("it should return the joined child rows for the parent set", t, func() {
		joined := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
		mock.
			ExpectQuery(`FROM "referral_edges" inner join users`).
			WillReturnRows(sqlmock.NewRows([]string{"referrer_id", "referred_id", "joined_at", "email", "nickname", "user_level", "user_status"}).
				AddRow(1, 3, joined, "c2@example.com", "c2", 1, string(model.UserStatusActive)).
				AddRow(1, 2, joined.Add(-time.Hour), "c1@example.com", "c1", 2, string(model.UserStatusActive)))

		children, err := repo.QueryDirectDescendants(ctx, []uint64{1}, model.AllTime)
		So(err, ShouldBeNil)
		So(children, ShouldHaveLength, 2)
		So(children[0].ReferredId, ShouldEqual, 3)
		So(children[0].JoinedAt.Equal(joined), ShouldBeTrue)
		So(children[1].Email, ShouldEqual, "c1@example.com")
	})

	Convey("it should classify a store failure as DataSourceUnavailable", t, func() {
		mock.
			ExpectQuery(`FROM "referral_edges" inner join users`).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.QueryDirectDescendants(ctx, []uint64{1}, model.AllTime)
		So(errors.Is(err, errs.ErrDataSourceUnavailable), ShouldBeTrue)
	})
}

func TestTopInviters(t *testing.T) {
	repo, mock := setupRepo()
	ctx := context.TODO()

	Convey("it should rank members by active direct-descendant count", t, func() {
		joined := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		mock.
			ExpectQuery(`count\(referral_edges.id\) as invited FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "created_at", "invited"}).
				AddRow(2, "magnet@example.com", joined, 12).
				AddRow(9, "second@example.com", joined, 4))

		inviters, err := repo.TopInviters(ctx, 10)
		So(err, ShouldBeNil)
		So(inviters, ShouldHaveLength, 2)
		So(inviters[0].UserId, ShouldEqual, 2)
		So(inviters[0].Invited, ShouldEqual, 12)
	})
}
