package actions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gitlab.com/minerex-platform/admin_api/errs"
	"gitlab.com/minerex-platform/admin_api/httputils"
	"gitlab.com/minerex-platform/admin_api/logger"
	"gitlab.com/minerex-platform/admin_api/model"
)

func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, httputils.RequestError{
		Error:    http.StatusText(code),
		ErrorTip: message,
	})
}

// abortWithEngineError maps engine error kinds to transport codes. An
// unclassified error is a plain 500 with no detail leaked.
func abortWithEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidRange), errors.Is(err, errs.ErrInvalidArgument):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrDataSourceUnavailable):
		log := logger.GetLogger(c)
		log.Error().Err(err).Msg("Data source unavailable")
		abortWithError(c, http.StatusServiceUnavailable, "Data source unavailable")
	default:
		log := logger.GetLogger(c)
		log.Error().Err(err).Msg("Unable to process request")
		abortWithError(c, http.StatusInternalServerError, "Unable to process request")
	}
}

// getPagination reads limit/offset query parameters. "limit=all" turns
// paging off for export consumers.
func getPagination(c *gin.Context) (model.Paging, error) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if raw == "all" {
			limit = model.LimitAll
		} else {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return model.Paging{}, errs.InvalidArgument("limit must be a number or all")
			}
			limit = parsed
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return model.Paging{}, errs.InvalidArgument("offset must be a number")
		}
		offset = parsed
	}
	return model.NewPaging(limit, offset)
}

// getWindow reads either a named range preset or explicit RFC3339
// from/to bounds. Presets resolve in the deployment's reference zone.
func (actions *Actions) getWindow(c *gin.Context) (model.Window, error) {
	preset := c.Query("range")
	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return model.Window{}, errs.InvalidRange("from must be RFC3339")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return model.Window{}, errs.InvalidRange("to must be RFC3339")
		}
		to = parsed
	}
	return actions.service.ResolveWindow(preset, from, to)
}

func getUint64Param(c *gin.Context, name string) (uint64, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, errs.InvalidArgument(name + " must be a positive number")
	}
	return value, nil
}

func getCategories(c *gin.Context) []model.RewardCategory {
	raw := c.QueryArray("category")
	categories := make([]model.RewardCategory, 0, len(raw))
	for _, item := range raw {
		categories = append(categories, model.RewardCategory(item))
	}
	return categories
}
