package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ericlagergren/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/model"
)

func fixedValue(raw string) func(context.Context, model.Window) (*decimal.Big, error) {
	value, _ := new(decimal.Big).SetString(raw)
	return func(context.Context, model.Window) (*decimal.Big, error) {
		return value, nil
	}
}

func failingValue(err error) func(context.Context, model.Window) (*decimal.Big, error) {
	return func(context.Context, model.Window) (*decimal.Big, error) {
		return nil, err
	}
}

func TestAggregatorCollect(t *testing.T) {
	ctx := context.Background()

	Convey("Given a batch where one metric fails", t, func() {
		specs := []Spec{
			{Name: "total_rewards", Fallback: new(decimal.Big), Query: fixedValue("125.5")},
			{Name: "pending_withdrawals", Fallback: new(decimal.Big), Query: failingValue(errors.New("connection refused"))},
			{Name: "new_members", Fallback: new(decimal.Big), Query: fixedValue("42")},
		}
		aggregator := NewAggregator(specs, time.Second)

		Convey("Only the failing metric is degraded, the rest stay ok", func() {
			snapshots := aggregator.Collect(ctx, model.AllTime)
			So(snapshots, ShouldHaveLength, 3)

			So(snapshots[0].Name, ShouldEqual, "total_rewards")
			So(snapshots[0].Status, ShouldEqual, model.MetricStatus_OK)
			So(snapshots[0].Value.V.String(), ShouldEqual, "125.5")

			So(snapshots[1].Name, ShouldEqual, "pending_withdrawals")
			So(snapshots[1].Status, ShouldEqual, model.MetricStatus_Degraded)
			So(snapshots[1].Value.V.Sign(), ShouldEqual, 0)

			So(snapshots[2].Name, ShouldEqual, "new_members")
			So(snapshots[2].Status, ShouldEqual, model.MetricStatus_OK)
			So(snapshots[2].Value.V.String(), ShouldEqual, "42")
		})

		Convey("Snapshot order always follows the spec table", func() {
			for i := 0; i < 10; i++ {
				snapshots := aggregator.Collect(ctx, model.AllTime)
				So(snapshots[0].Name, ShouldEqual, "total_rewards")
				So(snapshots[1].Name, ShouldEqual, "pending_withdrawals")
				So(snapshots[2].Name, ShouldEqual, "new_members")
			}
		})
	})

	Convey("Given a metric stuck past its deadline", t, func() {
		stuck := make(chan struct{})
		specs := []Spec{
			{Name: "fast", Fallback: new(decimal.Big), Query: fixedValue("1")},
			{Name: "stuck", Fallback: new(decimal.Big), Query: func(ctx context.Context, _ model.Window) (*decimal.Big, error) {
				select {
				case <-stuck:
				case <-ctx.Done():
				}
				return nil, ctx.Err()
			}},
		}
		aggregator := NewAggregator(specs, 20*time.Millisecond)
		defer close(stuck)

		Convey("The stuck metric degrades without holding the batch", func() {
			started := time.Now()
			snapshots := aggregator.Collect(ctx, model.AllTime)
			So(time.Since(started), ShouldBeLessThan, time.Second)
			So(snapshots[0].Status, ShouldEqual, model.MetricStatus_OK)
			So(snapshots[1].Status, ShouldEqual, model.MetricStatus_Degraded)
		})
	})

	Convey("Given a metric whose query panics", t, func() {
		specs := []Spec{
			{Name: "panicky", Fallback: new(decimal.Big), Query: func(context.Context, model.Window) (*decimal.Big, error) {
				panic("nil map write")
			}},
			{Name: "steady", Fallback: new(decimal.Big), Query: fixedValue("7")},
		}
		aggregator := NewAggregator(specs, time.Second)

		Convey("The panic is contained in its own snapshot", func() {
			snapshots := aggregator.Collect(ctx, model.AllTime)
			So(snapshots[0].Status, ShouldEqual, model.MetricStatus_Degraded)
			So(snapshots[1].Status, ShouldEqual, model.MetricStatus_OK)
			So(snapshots[1].Value.V.String(), ShouldEqual, "7")
		})
	})
}

type stubBoards struct {
	earners  []model.TopEarner
	inviters []model.TopInviter
	fail     error
}

func (s *stubBoards) TopEarners(context.Context, int) ([]model.TopEarner, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return s.earners, nil
}

func (s *stubBoards) TopInviters(context.Context, int) ([]model.TopInviter, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return s.inviters, nil
}

type stubNotes struct {
	notes []model.Notification
	fail  error
}

func (s *stubNotes) QueryNotifications(context.Context, []model.NotificationStatus, model.Window, int) ([]model.Notification, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return s.notes, nil
}

func TestAssemble(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	aggregator := NewAggregator([]Spec{
		{Name: "total_rewards", Fallback: new(decimal.Big), Query: fixedValue("99")},
	}, time.Second)

	Convey("Given healthy sources", t, func() {
		boards := &stubBoards{
			earners:  []model.TopEarner{{UserId: 1, Email: "whale@example.com"}},
			inviters: []model.TopInviter{{UserId: 2, Email: "magnet@example.com", Invited: 12}},
		}
		notes := &stubNotes{notes: []model.Notification{{ID: 1, Type: model.Notification_WithdrawRequested}}}
		assembler := NewAssembler(aggregator, boards, notes)

		Convey("Assemble returns a complete snapshot with masked emails", func() {
			snapshot, err := assembler.Assemble(ctx, model.AllTime, now)
			So(err, ShouldBeNil)
			So(snapshot.GeneratedAt.Equal(now), ShouldBeTrue)
			So(snapshot.Metrics, ShouldHaveLength, 1)
			So(snapshot.TopEarners[0].Email, ShouldNotContainSubstring, "whale@example.com")
			So(snapshot.TopEarners[0].Email, ShouldContainSubstring, "@example.com")
			So(snapshot.TopInviters[0].Email, ShouldNotContainSubstring, "magnet@example.com")
			So(snapshot.Notifications, ShouldHaveLength, 1)
		})
	})

	Convey("Given a failing leaderboard source", t, func() {
		boards := &stubBoards{fail: errs.DataSource(errors.New("connection refused"), "leaderboards")}
		assembler := NewAssembler(aggregator, boards, &stubNotes{})

		Convey("Assemble fails fast instead of rendering a partial dashboard", func() {
			snapshot, err := assembler.Assemble(ctx, model.AllTime, now)
			So(snapshot, ShouldBeNil)
			So(errors.Is(err, errs.ErrDataSourceUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given a failing notification source", t, func() {
		boards := &stubBoards{}
		notes := &stubNotes{fail: errs.DataSource(errors.New("connection refused"), "notifications")}
		assembler := NewAssembler(aggregator, boards, notes)

		Convey("Assemble fails fast", func() {
			_, err := assembler.Assemble(ctx, model.AllTime, now)
			So(errors.Is(err, errs.ErrDataSourceUnavailable), ShouldBeTrue)
		})
	})

	Convey("Given empty but healthy sources", t, func() {
		assembler := NewAssembler(aggregator, &stubBoards{}, &stubNotes{})

		Convey("Collections come back empty, never nil", func() {
			snapshot, err := assembler.Assemble(ctx, model.AllTime, now)
			So(err, ShouldBeNil)
			So(snapshot.TopEarners, ShouldNotBeNil)
			So(snapshot.TopInviters, ShouldNotBeNil)
			So(snapshot.Notifications, ShouldNotBeNil)
		})
	})
}
