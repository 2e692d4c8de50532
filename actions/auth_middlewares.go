package actions

import (
	"net/http"
	"strings"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// adminClaims is the token payload the identity service issues for back
// office operators. Tokens are validated here, never minted.
type adminClaims struct {
	AdminID uint64 `json:"admin_id"`
	Role    string `json:"role"`
	jwt.StandardClaims
}

// AdminAuthMiddleware validates the bearer token and stores the admin
// identity on the request context.
func (actions *Actions) AdminAuthMiddleware() gin.HandlerFunc {
	secret := []byte(actions.cfg.Server.API.JWTTokenSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortWithError(c, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := &adminClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			abortWithError(c, http.StatusUnauthorized, "Invalid bearer token")
			return
		}
		if claims.AdminID == 0 {
			abortWithError(c, http.StatusUnauthorized, "Invalid bearer token")
			return
		}

		c.Set("auth_admin_id", claims.AdminID)
		c.Set("auth_role", claims.Role)
		c.Next()
	}
}

func getAdminID(c *gin.Context) uint64 {
	if id, ok := c.Get("auth_admin_id"); ok {
		return id.(uint64)
	}
	return 0
}
