package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

// InternalErrorMessage is the only thing a client learns about a failure
// it did not cause.
const InternalErrorMessage = "服务器内部错误"

// Recovery turns a panic into the generic 500 envelope and logs it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"path":       c.Request.URL.Path,
			"panic":      recovered,
		}).Error("panic recovered")
		utils.AbortJSONError(c, http.StatusInternalServerError, InternalErrorMessage)
	})
}
