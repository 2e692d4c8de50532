package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/minerex-platform/admin_api/model"
)

// GetReferralTree godoc
// swagger:route GET /admin/referrals/tree
// Get ReferralTree
//
// Returns a page of top-level members, each with its fully materialized
// direct team and per-category reward rollups.
//
//	    Responses:
//	      200: TreePage
//	      400: RequestErrorResp
//	      503: RequestErrorResp
func (actions *Actions) GetReferralTree(c *gin.Context) {
	paging, err := getPagination(c)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	window, err := actions.getWindow(c)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	filter := model.TreeFilter{
		Query:  c.Query("query"),
		Status: model.UserStatus(c.Query("status")),
		Window: window,
		SortBy: model.TreeSort(c.Query("sort_by")),
		Paging: paging,
	}
	page, err := actions.service.GetReferralTree(c.Request.Context(), filter)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetMemberRollup godoc
// swagger:route GET /admin/members/{member_id}/rollup
// Get MemberRollup
//
// Returns the member's cumulative reward sums per category as of now.
//
//	    Responses:
//	      200: RollupMetric
//	      404: RequestErrorResp
func (actions *Actions) GetMemberRollup(c *gin.Context) {
	memberID, err := getUint64Param(c, "member_id")
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	metric, err := actions.service.GetMemberRollup(c.Request.Context(), memberID, getCategories(c))
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, metric)
}

// GetBeforeAfter godoc
// swagger:route GET /admin/members/{member_id}/ledger/{entry_id}/delta
// Get BeforeAfter
//
// Returns the member's cumulative value immediately before and after one
// ledger event.
//
//	    Responses:
//	      200: BeforeAfter
//	      404: RequestErrorResp
func (actions *Actions) GetBeforeAfter(c *gin.Context) {
	memberID, err := getUint64Param(c, "member_id")
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	entryID, err := getUint64Param(c, "entry_id")
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	pair, err := actions.service.GetBeforeAfter(c.Request.Context(), memberID, entryID)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}
