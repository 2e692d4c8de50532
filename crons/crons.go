// Package crons schedules the background jobs of the admin API. The only
// job today mirrors the dashboard metric table into prometheus gauges so
// alerting does not depend on an admin keeping the overview open.
package crons

import (
	"context"
	"strconv"
	"time"

	"github.com/robfig/cron"
	"github.com/rs/zerolog/log"

	"gitlab.com/minerex-platform/admin_api/config"
	"gitlab.com/minerex-platform/admin_api/model"
	"gitlab.com/minerex-platform/admin_api/monitor"
	"gitlab.com/minerex-platform/admin_api/service"
)

// gaugeTimeout bounds one full gauge refresh.
const gaugeTimeout = 30 * time.Second

// Crons holds the scheduled jobs.
type Crons struct {
	cfg     config.Crons
	service *service.Service
	cron    *cron.Cron
}

// NewCrons constructor
func NewCrons(cfg config.Crons, service *service.Service) *Crons {
	return &Crons{
		cfg:     cfg,
		service: service,
		cron:    cron.New(),
	}
}

// Start registers the configured jobs and runs each once so the gauges
// are populated right after boot.
func (c *Crons) Start() {
	if c.cfg.DashboardGauges != "" {
		if err := c.cron.AddFunc(c.cfg.DashboardGauges, c.RefreshDashboardGauges); err != nil {
			log.Error().Err(err).Str("schedule", c.cfg.DashboardGauges).Msg("Unable to schedule dashboard gauge refresh")
		} else {
			go c.RefreshDashboardGauges()
		}
	}
	c.cron.Start()
}

// Stop halts the scheduler; a job already running finishes on its own.
func (c *Crons) Stop() {
	c.cron.Stop()
}

// RefreshDashboardGauges collects today's metric batch and mirrors every
// value into the prometheus gauge vector. Degraded snapshots keep the
// previous gauge value so a flapping source does not zero the graphs.
func (c *Crons) RefreshDashboardGauges() {
	ctx, cancel := context.WithTimeout(context.Background(), gaugeTimeout)
	defer cancel()

	window, err := c.service.ResolveWindow(string(model.WindowPreset_Today), time.Time{}, time.Time{})
	if err != nil {
		log.Error().Err(err).Msg("Unable to resolve gauge refresh window")
		return
	}

	for _, snapshot := range c.service.CollectMetrics(ctx, window) {
		if snapshot.Status != model.MetricStatus_OK {
			continue
		}
		value, err := strconv.ParseFloat(snapshot.Value.V.String(), 64)
		if err != nil {
			log.Error().Err(err).Str("metric", snapshot.Name).Msg("Unable to convert metric value for gauge")
			continue
		}
		monitor.DashboardGauge.WithLabelValues(snapshot.Name).Set(value)
	}
}
