package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/minerex-platform/admin_api/model"
	"gitlab.com/minerex-platform/admin_api/monitor"
)

// DefaultBoardSize is the row count of each leaderboard.
const DefaultBoardSize = 10

// notificationLimit caps the recent-notification strip on the overview.
const notificationLimit = 20

// BoardSource serves the all-time leaderboards.
type BoardSource interface {
	TopEarners(ctx context.Context, limit int) ([]model.TopEarner, error)
	TopInviters(ctx context.Context, limit int) ([]model.TopInviter, error)
}

// NotificationSource serves the recent admin notifications.
type NotificationSource interface {
	QueryNotifications(ctx context.Context, statuses []model.NotificationStatus, window model.Window, limit int) ([]model.Notification, error)
}

// Assembler builds the dashboard snapshot. The metric batch is fail-soft
// and can only degrade; the leaderboards and notifications are fail-fast
// because a dashboard without them is not worth rendering.
type Assembler struct {
	metrics   *Aggregator
	boards    BoardSource
	notes     NotificationSource
	boardSize int
}

func NewAssembler(metrics *Aggregator, boards BoardSource, notes NotificationSource) *Assembler {
	return &Assembler{
		metrics:   metrics,
		boards:    boards,
		notes:     notes,
		boardSize: DefaultBoardSize,
	}
}

// Assemble builds one immutable snapshot for the window. Leaderboard
// emails are masked before the snapshot leaves the engine.
func (a *Assembler) Assemble(ctx context.Context, window model.Window, now time.Time) (*model.DashboardSnapshot, error) {
	snapshot := &model.DashboardSnapshot{
		Window:      window,
		GeneratedAt: now,
	}

	wg, wgCtx := errgroup.WithContext(ctx)
	wg.Go(func() error {
		snapshot.Metrics = a.metrics.Collect(wgCtx, window)
		return nil
	})
	wg.Go(func() error {
		earners, err := a.boards.TopEarners(wgCtx, a.boardSize)
		if err != nil {
			return err
		}
		for i := range earners {
			earners[i].Email = model.MaskEmail(earners[i].Email)
		}
		snapshot.TopEarners = earners
		return nil
	})
	wg.Go(func() error {
		inviters, err := a.boards.TopInviters(wgCtx, a.boardSize)
		if err != nil {
			return err
		}
		for i := range inviters {
			inviters[i].Email = model.MaskEmail(inviters[i].Email)
		}
		snapshot.TopInviters = inviters
		return nil
	})
	wg.Go(func() error {
		notes, err := a.notes.QueryNotifications(wgCtx, []model.NotificationStatus{
			model.NotificationStatus_UnRead,
			model.NotificationStatus_Read,
		}, window, notificationLimit)
		if err != nil {
			return err
		}
		snapshot.Notifications = notes
		return nil
	})
	if err := wg.Wait(); err != nil {
		monitor.DashboardAssemblies.WithLabelValues("error").Inc()
		return nil, err
	}

	if snapshot.TopEarners == nil {
		snapshot.TopEarners = []model.TopEarner{}
	}
	if snapshot.TopInviters == nil {
		snapshot.TopInviters = []model.TopInviter{}
	}
	if snapshot.Notifications == nil {
		snapshot.Notifications = []model.Notification{}
	}

	monitor.DashboardAssemblies.WithLabelValues("ok").Inc()
	return snapshot, nil
}
