package actions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gitlab.com/minerex-platform/admin_api/model"
)

// GetWithdrawals godoc
// swagger:route GET /admin/withdrawals
// Get Withdrawals
//
// Returns the paged withdrawal-request listing for the oversight screen.
//
//	    Responses:
//	      200: WithdrawList
//	      400: RequestErrorResp
func (actions *Actions) GetWithdrawals(c *gin.Context) {
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
	filter := model.WithdrawFilter{
		Status: model.WithdrawStatus(c.Query("status")),
		Window: window,
		Paging: paging,
	}
	list, err := actions.service.GetWithdrawals(c.Request.Context(), filter)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// ReviewWithdrawal godoc
// swagger:route PUT /admin/withdrawals/{request_id}
// Review Withdrawal
//
// Resolves a pending withdrawal request to approved or rejected.
//
//	    Responses:
//	      200: WithdrawRequest
//	      400: RequestErrorResp
//	      404: RequestErrorResp
func (actions *Actions) ReviewWithdrawal(c *gin.Context) {
	requestID, err := getUint64Param(c, "request_id")
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	status := model.WithdrawStatus(c.PostForm("status"))
	request, err := actions.service.ReviewWithdrawal(c.Request.Context(), getAdminID(c), c.ClientIP(), requestID, status)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
