package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blogpress-backend/errs"
	"blogpress-backend/models"
	"blogpress-backend/services"
)

// API is the surface of the backend an editor session needs. *Client
// satisfies it; tests substitute stubs.
type API interface {
	GetPost(id string) (*models.Post, error)
	CreatePost(input services.InsertPost) (*models.Post, error)
	UpdatePost(id string, input services.InsertPost) (*models.Post, error)
	DeletePost(id string) error
	CleanupMedia(ids []string) (int, error)
}

// Client is a thin JSON client for the blog API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func New(baseURL string) *Client {
	logger := log.With().Str("clientName", "blogClient").Logger()

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// apiError mirrors the error body the Responder writes.
type apiError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (c *Client) doJSON(method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		payload = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	var body apiError
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		c.logger.Warn().Str("status", resp.Status).Msgf("Unparseable error body from %s %s", method, path)
		return errs.NewApiErr(resp.StatusCode, resp.Status)
	}

	apiErr := errs.NewApiErr(resp.StatusCode, body.Error)
	apiErr.Details = body.Details
	return apiErr
}

// ListPosts returns all posts, newest first.
func (c *Client) ListPosts() ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.doJSON(http.MethodGet, "/api/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(id string) (*models.Post, error) {
	var post models.Post
	if err := c.doJSON(http.MethodGet, "/api/posts/"+id, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(input services.InsertPost) (*models.Post, error) {
	var post models.Post
	if err := c.doJSON(http.MethodPost, "/api/posts", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost sends the full editor payload; the server treats it as a
// partial update and refreshes updated_at itself.
func (c *Client) UpdatePost(id string, input services.InsertPost) (*models.Post, error) {
	var post models.Post
	if err := c.doJSON(http.MethodPut, "/api/posts/"+id, input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(id string) error {
	return c.doJSON(http.MethodDelete, "/api/posts/"+id, nil, nil)
}

// CleanupMedia bulk-deletes the given media ids and returns the requested
// deletion count reported by the server.
func (c *Client) CleanupMedia(ids []string) (int, error) {
	request := map[string][]string{"mediaIds": ids}

	var response struct {
		Deleted int `json:"deleted"`
	}
	if err := c.doJSON(http.MethodPost, "/api/media/cleanup", request, &response); err != nil {
		return 0, err
	}
	return response.Deleted, nil
}

// UploadMedia pushes file bytes as a multipart upload and returns the
// servable URL assigned by the server.
func (c *Client) UploadMedia(data []byte, filename, mimeType string) (*services.UploadResult, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/upload", &buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.decodeError(resp, http.MethodPost, "/api/upload")
	}

	var result services.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &result, nil
}
