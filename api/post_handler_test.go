package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpress-backend/models"
)

func createTestPost(t *testing.T, serverURL, title string) models.Post {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"markdown":"# %s","html":"<h1>%s</h1>","excerpt":"%s"}`, title, title, title, title)
	resp, err := http.Post(serverURL+"/api/posts", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	return post
}

func doRequest(t *testing.T, method, url string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestCreateAndGetPost(t *testing.T) {
	server := setupTestServer(t)

	created := createTestPost(t, server.URL, "Round trip")
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.WithinDuration(t, created.CreatedAt, created.UpdatedAt, time.Second,
		"a fresh post starts with matching timestamps")

	resp, err := http.Get(server.URL + "/api/posts/" + created.ID.String())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Round trip", got.Title)
	assert.Equal(t, "# Round trip", got.Markdown)
	assert.Equal(t, "<h1>Round trip</h1>", got.HTML)
}

func TestCreatePostRequiresTitle(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Post(server.URL+"/api/posts", "application/json",
		bytes.NewBufferString(`{"markdown":"body only"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Contains(t, errResp.Details, "title is required")
}

func TestCreatePostMalformedBody(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Post(server.URL+"/api/posts", "application/json",
		bytes.NewBufferString(`{"title": `))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListPostsNewestFirst(t *testing.T) {
	server := setupTestServer(t)

	createTestPost(t, server.URL, "first")
	time.Sleep(10 * time.Millisecond)
	createTestPost(t, server.URL, "second")

	resp, err := http.Get(server.URL + "/api/posts")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Title)
	assert.Equal(t, "first", posts[1].Title)
}

func TestListPostsEmptyIsArray(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/posts")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body), "an empty listing must serialize as [], not null")
}

func TestGetPostMalformedID(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/posts/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPostMissing(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/api/posts/" + uuid.NewString())
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdatePostPartial(t *testing.T) {
	server := setupTestServer(t)
	created := createTestPost(t, server.URL, "before")

	time.Sleep(10 * time.Millisecond)

	resp := doRequest(t, http.MethodPut, server.URL+"/api/posts/"+created.ID.String(),
		bytes.NewBufferString(`{"title":"after"}`))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "# before", updated.Markdown, "fields absent from the body are untouched")
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at must move forward")
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestUpdatePostMissing(t *testing.T) {
	server := setupTestServer(t)

	resp := doRequest(t, http.MethodPut, server.URL+"/api/posts/"+uuid.NewString(),
		bytes.NewBufferString(`{"title":"after"}`))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdatePostMalformedID(t *testing.T) {
	server := setupTestServer(t)

	resp := doRequest(t, http.MethodPut, server.URL+"/api/posts/42",
		bytes.NewBufferString(`{"title":"after"}`))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeletePostIdempotent(t *testing.T) {
	server := setupTestServer(t)
	created := createTestPost(t, server.URL, "doomed")

	url := server.URL + "/api/posts/" + created.ID.String()

	resp := doRequest(t, http.MethodDelete, url, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := http.Get(url)
	require.NoError(t, err)
	getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)

	// deleting again still succeeds
	resp = doRequest(t, http.MethodDelete, url, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestDeletePostMalformedID(t *testing.T) {
	server := setupTestServer(t)

	resp := doRequest(t, http.MethodDelete, server.URL+"/api/posts/nope", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
