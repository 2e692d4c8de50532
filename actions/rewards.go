package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/minerex-platform/admin_api/featureflags"
)

// GetRewardHistory godoc
// swagger:route GET /admin/members/{member_id}/rewards
// Get RewardHistory
//
// Returns the member's reward ledger, newest first. With limit=all the
// full history is returned for export, gated behind a feature flag.
//
//	    Responses:
//	      200: LedgerEntryList
//	      400: RequestErrorResp
//	      404: RequestErrorResp
func (actions *Actions) GetRewardHistory(c *gin.Context) {
	memberID, err := getUint64Param(c, "member_id")
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	paging, err := getPagination(c)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	if paging.Unlimited() && !featureflags.IsEnabledOrDefault("admin.rewards_export", false) {
		abortWithError(c, http.StatusBadRequest, "Full history export is disabled")
		return
	}
	window, err := actions.getWindow(c)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	list, err := actions.service.GetRewardHistory(c.Request.Context(), memberID, getCategories(c), window, paging)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetRewardLedger godoc
// swagger:route GET /admin/rewards
// Get RewardLedger
//
// Returns the reward ledger across all members, newest first.
//
//	    Responses:
//	      200: LedgerEntryList
//	      400: RequestErrorResp
func (actions *Actions) GetRewardLedger(c *gin.Context) {
	paging, err := getPagination(c)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	if paging.Unlimited() && !featureflags.IsEnabledOrDefault("admin.rewards_export", false) {
		abortWithError(c, http.StatusBadRequest, "Full history export is disabled")
		return
	}
	window, err := actions.getWindow(c)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	list, err := actions.service.GetRewardLedger(c.Request.Context(), getCategories(c), window, paging)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
