package handler

import (
	"errors"
	"net/http"

	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the current user's profile.
type ProfileHandler struct {
	Profiles *store.ProfileStore
}

func NewProfileHandler(profiles *store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

// Me returns the signed-in identity plus profile. A missing profile row
// degrades to defaults instead of erroring; accounts without one are
// tolerated indefinitely.
func (h *ProfileHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	name := util.EmailLocalPart(user.Email)
	avatarURL := ""

	profile, err := h.Profiles.Get(user.ID)
	switch {
	case err == nil:
		if profile.Name != "" {
			name = profile.Name
		}
		avatarURL = profile.AvatarURL
	case errors.Is(err, store.ErrNotFound):
		// profile-less account, fall back to defaults
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load profile")
		return
	}

	util.Success(c, util.Response{
		"user": gin.H{
			"id":         user.ID,
			"email":      user.Email,
			"name":       name,
			"avatar_url": avatarURL,
			"created_at": user.CreatedAt,
		},
	})
}

type updateProfileReq struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// Update patches the supplied profile fields, creating the row when
// absent. Callers cannot tell the two apart; that is the contract.
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}
	if req.Name != nil {
		if err := util.ValidateDisplayName(*req.Name); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
	}

	profile, err := h.Profiles.Update(user.ID, store.ProfileUpdates{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	}, user.Email)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to update profile")
		return
	}

	util.Success(c, util.Response{
		"profile": gin.H{
			"user_id":    profile.UserID,
			"name":       profile.Name,
			"email":      profile.Email,
			"avatar_url": profile.AvatarURL,
		},
	})
}
