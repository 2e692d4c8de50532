package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard godoc
// swagger:route GET /admin/dashboard
// Get Dashboard
//
// Returns the admin overview for the selected date range: the metric
// batch, the leaderboards and the recent notifications.
//
//	    Responses:
//	      200: DashboardSnapshot
//	      400: RequestErrorResp
//	      503: RequestErrorResp
func (actions *Actions) GetDashboard(c *gin.Context) {
	window, err := actions.getWindow(c)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	snapshot, err := actions.service.GetDashboard(c.Request.Context(), window)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
