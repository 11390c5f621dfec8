// Package upload proxies avatar images to Cloudinary's unsigned upload
// endpoint. The CDN stays external; this service never stores image
// bytes itself.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/dev-singh-05/gymers/internal/config"
)

// ErrNotConfigured is returned before any network call when the cloud
// name or upload preset is missing.
var ErrNotConfigured = errors.New("upload: cloudinary cloud name and upload preset must be configured")

// Result is the subset of Cloudinary's response the service uses.
type Result struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client uploads images via Cloudinary unsigned upload.
type Client struct {
	cfg  config.CloudinaryConfig
	http *http.Client
	base string // override in tests
}

func NewClient(cfg config.CloudinaryConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: http.DefaultClient,
		base: "https://api.cloudinary.com/v1_1",
	}
}

// Upload sends the image bytes and returns the hosted URL. Config is
// checked before anything touches the network.
func (c *Client) Upload(ctx context.Context, filename string, data io.Reader) (*Result, error) {
	if c.cfg.CloudName == "" || c.cfg.UploadPreset == "" {
		return nil, ErrNotConfigured
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("upload: build form: %w", err)
	}
	if _, err := io.Copy(part, data); err != nil {
		return nil, fmt.Errorf("upload: read image: %w", err)
	}
	if err := mw.WriteField("upload_preset", c.cfg.UploadPreset); err != nil {
		return nil, fmt.Errorf("upload: build form: %w", err)
	}
	if c.cfg.Folder != "" {
		if err := mw.WriteField("folder", c.cfg.Folder); err != nil {
			return nil, fmt.Errorf("upload: build form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload: build form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/image/upload", c.base, c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("upload: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("upload: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ce cloudinaryError
		if json.Unmarshal(raw, &ce) == nil && ce.Error.Message != "" {
			return nil, fmt.Errorf("upload: cloudinary: %s", ce.Error.Message)
		}
		return nil, fmt.Errorf("upload: cloudinary returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("upload: decode response: %w", err)
	}
	return &result, nil
}

// OptimizedURL builds a square face-cropped thumbnail URL for a
// previously uploaded image.
func (c *Client) OptimizedURL(publicID string, width int) string {
	if width <= 0 {
		width = 200
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/w_%d,h_%d,c_fill,g_face,q_auto,f_auto/%s",
		c.cfg.CloudName, width, width, publicID)
}
