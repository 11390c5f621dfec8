package handler

import (
	"errors"
	"net/http"

	"github.com/dev-singh-05/gymers/internal/auth"
	"github.com/dev-singh-05/gymers/internal/metrics"
	"github.com/dev-singh-05/gymers/internal/middleware"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the sign-up/sign-in/sign-out endpoints.
type AuthHandler struct {
	Auth    *auth.Service
	Metrics *metrics.Collector
}

func NewAuthHandler(svc *auth.Service, m *metrics.Collector) *AuthHandler {
	return &AuthHandler{Auth: svc, Metrics: m}
}

type registerReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if err := util.ValidateDisplayName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	user, token, err := h.Auth.SignUp(req.Email, req.Password, req.Name)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordSignUp()
	}
	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	user, token, err := h.Auth.SignIn(req.Email, req.Password)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordSignIn()
	}
	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.TokenFromRequest(c)
	if err := h.Auth.SignOut(token); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sign out failed")
		return
	}
	util.Success(c, util.Response{"message": "signed out"})
}

func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		util.Error(c, http.StatusConflict, util.CodeConflict, "email already registered")
	case errors.Is(err, auth.ErrInvalidEmail):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid email address")
	case errors.Is(err, auth.ErrWeakPassword):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password must be 8-32 chars with upper, lower and digit")
	case errors.Is(err, auth.ErrAccountLocked):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account locked, try again later")
	case errors.Is(err, auth.ErrBadCredentials):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid email or password")
	default:
		// storage errors stay out of the response body
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "authentication failed")
	}
}
