// Package service coordinates the back-office use cases on top of the
// store and the derivation engines.
package service

import (
	"time"

	"gitlab.com/minerex-platform/admin_api/config"
	"gitlab.com/minerex-platform/admin_api/net/kafka"
	"gitlab.com/minerex-platform/admin_api/queries"
	"gitlab.com/minerex-platform/admin_api/service/dashboard"
	"gitlab.com/minerex-platform/admin_api/service/rollup"
	"gitlab.com/minerex-platform/admin_api/service/teams"
)

// Service structure
type Service struct {
	cfg        config.Config
	repo       *queries.Repo
	location   *time.Location
	rollups    *rollup.Computer
	trees      *teams.Assembler
	metrics    *dashboard.Aggregator
	dashboards *dashboard.Assembler
	audit      *kafka.Writer
}

// NewService wires the engines onto the repository. The repo satisfies
// every source interface, so the engines stay testable against stubs
// while production runs straight on the database cluster.
func NewService(cfg config.Config, repo *queries.Repo, audit *kafka.Writer) *Service {
	service := &Service{
		cfg:      cfg,
		repo:     repo,
		location: cfg.Server.Location(),
		audit:    audit,
	}
	service.rollups = rollup.NewComputer(repo)
	service.trees = teams.NewAssembler(repo, repo)
	service.metrics = dashboard.NewAggregator(service.metricSpecs(), cfg.Dashboard.MetricDeadline())
	service.dashboards = dashboard.NewAssembler(service.metrics, repo, repo)
	return service
}

// GetRepo returns the repository for components that need raw access.
func (service *Service) GetRepo() *queries.Repo {
	return service.repo
}

// Location returns the deployment's fixed reference time zone.
func (service *Service) Location() *time.Location {
	return service.location
}

// now is the single reference instant a request-scoped computation uses.
func (service *Service) now() time.Time {
	return time.Now().In(service.location)
}
