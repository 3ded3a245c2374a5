package middlewares

import (
	"net/http"
	"strings"

	"github.com/circlefeed/circlefeed/token"
	"github.com/circlefeed/circlefeed/utils"
	"github.com/gin-gonic/gin"
)

// ContextUserIdKey is where the JWT middleware stashes the acting user's id
// on the gin context for downstream handlers.
const ContextUserIdKey = "userID"

// JWT returns a middleware that authorizes requests with a bearer token in
// the Authorization header. On success the verified user id is attached to
// the request context. Both a missing header and a token that fails
// verification reject with 401; the source system mapped verification
// failures to 500, which was judged unintended and not carried over.
func JWT(maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  "missing bearer token",
			})
			c.Abort()
			return
		}

		bearer = strings.TrimLeft(strings.TrimPrefix(bearer, "Bearer "), " ")

		userId, err := maker.Verify(bearer)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  err.Error(),
			})
			c.Abort()
			return
		}

		// Successfully validated the bearer token, expose the verified
		// identity to handlers.
		c.Set(ContextUserIdKey, userId)

		// before request
		c.Next()
	}
}
