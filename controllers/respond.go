package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/middleware"
	"github.com/2582034744-ui/yisu-hotel-platform/services"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

// respondError maps a service error onto the error envelope. Anything that
// is not an AppError is logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		appErr = services.NewInternalError(middleware.InternalErrorMessage, err)
	}

	status := appErr.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
	}
	utils.JSONError(c, status, appErr.Message)
}

// hotelID parses the :id segment. A non-numeric id cannot match any hotel.
func hotelID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "酒店不存在")
		return 0, false
	}
	return id, true
}
