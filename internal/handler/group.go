package handler

import (
	"errors"
	"net/http"

	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
)

// GroupHandler serves the community chat roster.
type GroupHandler struct {
	Members  *store.MemberStore
	Profiles *store.ProfileStore
}

func NewGroupHandler(members *store.MemberStore, profiles *store.ProfileStore) *GroupHandler {
	return &GroupHandler{Members: members, Profiles: profiles}
}

// List returns every member in join order.
func (h *GroupHandler) List(c *gin.Context) {
	members, err := h.Members.List()
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list members")
		return
	}

	out := make([]gin.H, 0, len(members))
	for _, m := range members {
		out = append(out, gin.H{
			"id":         m.ID,
			"user_id":    m.UserID,
			"name":       m.Name,
			"avatar_url": m.AvatarURL,
			"joined_at":  m.JoinedAt,
		})
	}
	util.Success(c, util.Response{"members": out})
}

type joinGroupReq struct {
	Name      string `json:"name" binding:"max=64"`
	AvatarURL string `json:"avatar_url" binding:"max=512"`
}

// Join adds the user to the roster. Name and avatar default from the
// profile when omitted; a repeat join returns the existing record.
func (h *GroupHandler) Join(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req joinGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request")
		return
	}

	name := req.Name
	avatarURL := req.AvatarURL
	if name == "" || avatarURL == "" {
		profile, err := h.Profiles.Get(user.ID)
		if err == nil {
			if name == "" {
				name = profile.Name
			}
			if avatarURL == "" {
				avatarURL = profile.AvatarURL
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load profile")
			return
		}
	}
	if name == "" {
		name = util.EmailLocalPart(user.Email)
	}

	member, err := h.Members.Join(user.ID, name, avatarURL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to join group")
		return
	}

	util.Success(c, util.Response{
		"member": gin.H{
			"id":         member.ID,
			"user_id":    member.UserID,
			"name":       member.Name,
			"avatar_url": member.AvatarURL,
			"joined_at":  member.JoinedAt,
		},
	})
}

// IsMember reports whether the current user is on the roster.
func (h *GroupHandler) IsMember(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	member, err := h.Members.IsMember(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to check membership")
		return
	}
	util.Success(c, util.Response{"member": member})
}
