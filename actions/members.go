package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/minerex-platform/admin_api/model"
)

// GetMembers godoc
// swagger:route GET /admin/members
// Get Members
//
// Returns the paged member listing for the management screen.
//
//	    Responses:
//	      200: MemberList
//	      400: RequestErrorResp
func (actions *Actions) GetMembers(c *gin.Context) {
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
	filter := model.MemberFilter{
		Query:  c.Query("query"),
		Status: model.UserStatus(c.Query("status")),
		Window: window,
		Paging: paging,
	}
	list, err := actions.service.GetMembers(c.Request.Context(), filter)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetMemberDetail godoc
// swagger:route GET /admin/members/{member_id}
// Get MemberDetail
//
// Returns one member with its direct-team size and current rollup.
//
//	    Responses:
//	      200: MemberDetail
//	      404: RequestErrorResp
func (actions *Actions) GetMemberDetail(c *gin.Context) {
	memberID, err := getUint64Param(c, "member_id")
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	detail, err := actions.service.GetMemberDetail(c.Request.Context(), memberID)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateMemberStatus godoc
// swagger:route PUT /admin/members/{member_id}/status
// Update MemberStatus
//
// Applies a moderation action on the member and records it in the audit
// trail.
//
//	    Responses:
//	      200: User
//	      400: RequestErrorResp
//	      404: RequestErrorResp
func (actions *Actions) UpdateMemberStatus(c *gin.Context) {
	memberID, err := getUint64Param(c, "member_id")
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	status := model.UserStatus(c.PostForm("status"))
	user, err := actions.service.UpdateMemberStatus(c.Request.Context(), getAdminID(c), c.ClientIP(), memberID, status)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
