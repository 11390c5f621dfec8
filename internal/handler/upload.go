package handler

import (
	"errors"
	"net/http"

	"github.com/dev-singh-05/gymers/internal/metrics"
	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/upload"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
)

const maxAvatarBytes = 5 << 20 // 5MB

// UploadHandler proxies avatar images to the image CDN and stores the
// returned URL on the profile.
type UploadHandler struct {
	Uploads  *upload.Client
	Profiles *store.ProfileStore
	Metrics  *metrics.Collector
}

func NewUploadHandler(uploads *upload.Client, profiles *store.ProfileStore, m *metrics.Collector) *UploadHandler {
	return &UploadHandler{Uploads: uploads, Profiles: profiles, Metrics: m}
}

// Avatar accepts a multipart image, uploads it and upserts the
// profile's avatar URL.
func (h *UploadHandler) Avatar(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "image file is required")
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "image too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "could not read image")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.Uploads.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, upload.ErrNotConfigured) {
			h.recordUpload("not_configured")
			util.Error(c, http.StatusServiceUnavailable, util.CodeUpstream, "image uploads are not configured")
			return
		}
		h.recordUpload("error")
		util.Error(c, http.StatusBadGateway, util.CodeUpstream, err.Error())
		return
	}

	avatarURL := result.SecureURL
	if _, err := h.Profiles.Update(user.ID, store.ProfileUpdates{AvatarURL: &avatarURL}, user.Email); err != nil {
		h.recordUpload("error")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save avatar")
		return
	}

	h.recordUpload("ok")
	util.Success(c, util.Response{
		"avatar_url": result.SecureURL,
		"public_id":  result.PublicID,
		"width":      result.Width,
		"height":     result.Height,
	})
}

func (h *UploadHandler) recordUpload(outcome string) {
	if h.Metrics != nil {
		h.Metrics.RecordUpload(outcome)
	}
}
