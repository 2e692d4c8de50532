// Package actions holds the HTTP handlers. Handlers parse and validate
// request input, call into the service layer and translate engine errors
// to transport codes; no business rule lives here.
package actions

import (
	"gitlab.com/minerex-platform/admin_api/config"
	"gitlab.com/minerex-platform/admin_api/service"
)

// Actions structure
type Actions struct {
	cfg     config.Config
	service *service.Service
}

// NewActions constructor
func NewActions(cfg config.Config, service *service.Service) *Actions {
	return &Actions{
		cfg:     cfg,
		service: service,
	}
}
