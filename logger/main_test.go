package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"
)

func serveWith(middleware gin.HandlerFunc, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware)
	r.GET("/overview", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/overview", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestSetLogger(t *testing.T) {
	Convey("Given a failing request from an authenticated admin", t, func() {
		var buf bytes.Buffer
		base := zerolog.New(&buf)

		w := serveWith(SetLogger(Config{Logger: &base}), func(c *gin.Context) {
			c.Set("auth_admin_id", uint64(42))
			c.Status(http.StatusInternalServerError)
		})

		Convey("The error dump carries the admin identity and a request id", func() {
			So(w.Header().Get("X-Request-Id"), ShouldNotBeEmpty)
			So(buf.String(), ShouldContainSubstring, `"admin_id":42`)
			So(buf.String(), ShouldContainSubstring, `"status":500`)
		})
	})

	Convey("Given a successful request", t, func() {
		var buf bytes.Buffer
		base := zerolog.New(&buf)

		serveWith(SetLogger(Config{Logger: &base}), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		Convey("Nothing is dumped", func() {
			So(buf.String(), ShouldBeEmpty)
		})
	})

	Convey("Given a skipped path", t, func() {
		var buf bytes.Buffer
		base := zerolog.New(&buf)

		serveWith(SetLogger(Config{Logger: &base, SkipPath: []string{"/overview"}}), func(c *gin.Context) {
			c.Status(http.StatusInternalServerError)
		})

		Convey("Even a failure stays quiet", func() {
			So(buf.String(), ShouldBeEmpty)
		})
	})
}
