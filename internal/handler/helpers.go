package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/middleware"
	"github.com/xxxsen/notetoc/internal/notestore"
	"github.com/xxxsen/notetoc/internal/pkg/errcode"
	appErr "github.com/xxxsen/notetoc/internal/pkg/errors"
	"github.com/xxxsen/notetoc/internal/pkg/response"
)

func getUserID(c *gin.Context) string {
	return c.GetString(middleware.ContextUserIDKey)
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString("request_id")),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	if appErr.IsRejected(err) {
		logger.Debug("request rejected", zap.Error(err))
	} else {
		logger.Error("request failed", zap.Error(err))
	}
	response.Fail(c, codeOf(err), err)
}

func codeOf(err error) int {
	var upstream *notestore.Error
	switch {
	case errors.Is(err, appErr.ErrIgnored):
		return errcode.ErrIgnored
	case errors.Is(err, appErr.ErrUnknownUser):
		return errcode.ErrUnknownUser
	case errors.Is(err, appErr.ErrTagNotPresent):
		return errcode.ErrTagNotPresent
	case errors.Is(err, appErr.ErrNoTaggedNotes):
		return errcode.ErrNoTaggedNotes
	case errors.Is(err, appErr.ErrUnauthorized):
		return errcode.ErrUnauthorized
	case errors.Is(err, appErr.ErrNotFound):
		return errcode.ErrNotFound
	case errors.Is(err, appErr.ErrInvalid):
		return errcode.ErrInvalid
	case notestore.IsRateLimited(err):
		return errcode.ErrUpstreamRateLimit
	case errors.As(err, &upstream):
		return errcode.ErrUpstream
	default:
		return errcode.ErrInternal
	}
}
