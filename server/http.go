package server

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gitlab.com/minerex-platform/admin_api/logger"
)

func (srv *server) ListenToRequests() {
	log.Info().Str("worker", "http_listen_to_requests").Str("action", "start").Msg("HTTP Listen to requests - started")
	defer log.Info().Str("worker", "http_listen_to_requests").Str("action", "stop").Msg("HTTP Listen to requests - stopped")

	a := srv.actions

	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "X-Requested-With", "Content-Length", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowMethods = []string{"GET", "PUT", "POST", "DELETE", "PATCH", "OPTIONS"}

	r.Use(cors.New(corsConfig))
	r.Use(gin.Recovery())
	r.Use(logger.SetLogger())

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	admin := r.Group("/admin", a.AdminAuthMiddleware())
	{
		admin.GET("/dashboard", a.GetDashboard)

		admin.GET("/referrals/tree", a.GetReferralTree)

		admin.GET("/members", a.GetMembers)
		admin.GET("/members/:member_id", a.GetMemberDetail)
		admin.PUT("/members/:member_id/status", a.UpdateMemberStatus)
		admin.GET("/members/:member_id/rollup", a.GetMemberRollup)
		admin.GET("/members/:member_id/rewards", a.GetRewardHistory)
		admin.GET("/members/:member_id/ledger/:entry_id/delta", a.GetBeforeAfter)

		admin.GET("/rewards", a.GetRewardLedger)

		admin.GET("/withdrawals", a.GetWithdrawals)
		admin.PUT("/withdrawals/:request_id", a.ReviewWithdrawal)
	}

	srv.HTTP = &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.config.Server.API.Port),
		Handler: r,
	}
	srv.HTTP.SetKeepAlivesEnabled(srv.config.Server.API.KeepAlive)

	if err := srv.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Str("section", "server").Msg("Unable to listen for requests")
	}
}
