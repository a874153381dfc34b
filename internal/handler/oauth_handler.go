package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/notetoc/internal/middleware"
	"github.com/xxxsen/notetoc/internal/pkg/response"
	"github.com/xxxsen/notetoc/internal/service"
)

// OAuthHandler redirects to errorPage and successPage when they are set.
// Neither page is served here; they live on an external site. Unset pages
// make the callback answer with the JSON envelope instead.
type OAuthHandler struct {
	oauth       *service.OAuthService
	errorPage   string
	successPage string
	sessionTTL  time.Duration
}

func NewOAuthHandler(oauth *service.OAuthService, errorPage, successPage string, sessionTTL time.Duration) *OAuthHandler {
	return &OAuthHandler{oauth: oauth, errorPage: errorPage, successPage: successPage, sessionTTL: sessionTTL}
}

func (h *OAuthHandler) Start(c *gin.Context) {
	authURL, err := h.oauth.Begin(c.Request.Context())
	if err != nil {
		h.redirectError(c, err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

func (h *OAuthHandler) Callback(c *gin.Context) {
	user, token, err := h.oauth.Complete(c.Request.Context(), c.Query("oauth_token"), c.Query("oauth_verifier"))
	if err != nil {
		h.redirectError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	if h.successPage == "" {
		response.Success(c, gin.H{"user_id": user.UserID, "shard": user.Shard})
		return
	}
	c.Redirect(http.StatusFound, h.successPage+"?userId="+url.QueryEscape(user.UserID))
}

func (h *OAuthHandler) Me(c *gin.Context) {
	user, err := h.oauth.Me(getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *OAuthHandler) redirectError(c *gin.Context, err error) {
	if h.errorPage == "" {
		handleError(c, err)
		return
	}
	logutil.GetLogger(c.Request.Context()).Error("oauth flow failed", zap.Error(err))
	c.Redirect(http.StatusFound, h.errorPage+"?error="+url.QueryEscape(err.Error()))
}
