package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/repository/memory"
	"blog-api/internal/service"
	"blog-api/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	blobs, err := storage.NewLocalService(t.TempDir())
	require.NoError(t, err)

	handler := NewHandler(
		service.NewUserService(memory.NewUserStore()),
		service.NewPostService(memory.NewPostStore()),
		service.NewFileService(memory.NewFileStore(), blobs),
		[]byte("test-secret"),
		24*time.Hour,
		nil,
	)

	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func performJSON(router *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerAndLogin(t *testing.T, router *gin.Engine, name, email, password string) (token, userID string) {
	t.Helper()

	w := performJSON(router, http.MethodPost, "/v1/users", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userID = decodeBody(t, w)["id"].(string)

	w = performJSON(router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	token = decodeBody(t, w)["token"].(string)
	return token, userID
}

func TestRegisterLoginCreatePost(t *testing.T) {
	router := newTestRouter(t)

	w := performJSON(router, http.MethodPost, "/v1/users", "", gin.H{
		"name":     "Jane Roe",
		"email":    "jane@x.io",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	user := decodeBody(t, w)
	assert.Equal(t, "Jane Roe", user["name"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "active", user["status"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	userID := user["id"].(string)

	w = performJSON(router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "jane@x.io",
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	login := decodeBody(t, w)
	assert.NotEmpty(t, login["token"])
	assert.NotEmpty(t, login["expiresAt"])
	assert.NotContains(t, login["user"], "password")

	token := login["token"].(string)
	w = performJSON(router, http.MethodPost, "/v1/posts", token, gin.H{
		"title":    "Five Char",
		"content":  "1234567890",
		"category": "technology",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	post := decodeBody(t, w)
	assert.Equal(t, userID, post["authorId"])
	assert.Equal(t, float64(1), post["readTime"])
	assert.Equal(t, false, post["isPublished"])
	assert.Nil(t, post["publishedAt"])
	assert.Equal(t, []any{}, post["tags"])
}

func TestRegisterMissingFieldsEnumerated(t *testing.T) {
	router := newTestRouter(t)

	w := performJSON(router, http.MethodPost, "/v1/users", "", gin.H{"name": "Jane Roe"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.NotEmpty(t, body["timestamp"])

	details := body["details"].(map[string]any)
	assert.Len(t, details, 2)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.NotContains(t, details, "name")
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	router := newTestRouter(t)

	payload := gin.H{"name": "Jane Roe", "email": "jane@x.io", "password": "supersecret1"}
	w := performJSON(router, http.MethodPost, "/v1/users", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performJSON(router, http.MethodPost, "/v1/users", "", payload)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
}

func TestLoginBadCredentials(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "Jane Roe", "jane@x.io", "supersecret1")

	w := performJSON(router, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "jane@x.io",
		"password": "wrongsecret",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
}

func TestAccessGate(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerAndLogin(t, router, "Jane Roe", "jane@x.io", "supersecret1")

	// no credential material at all
	w := performJSON(router, http.MethodGet, "/v1/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])

	// credential present but not verifiable
	w = performJSON(router, http.MethodGet, "/v1/users", "garbage.token.value", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden", decodeBody(t, w)["error"])

	w = performJSON(router, http.MethodGet, "/v1/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListUsersPagination(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerAndLogin(t, router, "User One", "u1@x.io", "supersecret1")
	for i := 2; i <= 3; i++ {
		w := performJSON(router, http.MethodPost, "/v1/users", "", gin.H{
			"name":     fmt.Sprintf("User %d", i),
			"email":    fmt.Sprintf("u%d@x.io", i),
			"password": "supersecret1",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := performJSON(router, http.MethodGet, "/v1/users?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(2), body["limit"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "User 3", data[0].(map[string]any)["name"])

	// non-numeric parameters fall back to the defaults
	w = performJSON(router, http.MethodGet, "/v1/users?page=abc&limit=xyz", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(10), body["limit"])
}

func TestGetUserByID(t *testing.T) {
	router := newTestRouter(t)
	token, userID := registerAndLogin(t, router, "Jane Roe", "jane@x.io", "supersecret1")

	w := performJSON(router, http.MethodGet, "/v1/users/"+userID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "jane@x.io", body["email"])
	assert.NotContains(t, body, "password")

	w = performJSON(router, http.MethodGet, "/v1/users/999", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["error"])
}

func TestListPostsPublicAndFiltered(t *testing.T) {
	router := newTestRouter(t)
	tokenA, userA := registerAndLogin(t, router, "Jane Roe", "jane@x.io", "supersecret1")
	tokenB, _ := registerAndLogin(t, router, "John Doe", "john@x.io", "supersecret1")

	posts := []gin.H{
		{"title": "Jane on tech", "content": "1234567890", "category": "technology"},
		{"title": "Jane on biz", "content": "1234567890", "category": "business"},
	}
	for _, p := range posts {
		w := performJSON(router, http.MethodPost, "/v1/posts", tokenA, p)
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := performJSON(router, http.MethodPost, "/v1/posts", tokenB, gin.H{
		"title": "John on tech", "content": "1234567890", "category": "technology",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// public listing needs no token
	w = performJSON(router, http.MethodGet, "/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decodeBody(t, w)["total"])

	w = performJSON(router, http.MethodGet, "/v1/posts?author="+userA+"&category=technology", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["total"])
	data := body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Jane on tech", data[0].(map[string]any)["title"])
}

func TestListPostsKeepsEmptyTags(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerAndLogin(t, router, "Jane Roe", "jane@x.io", "supersecret1")

	w := performJSON(router, http.MethodPost, "/v1/posts", token, gin.H{
		"title": "Five Char", "content": "1234567890", "category": "technology",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// a tagless post listed back still carries [], not null
	w = performJSON(router, http.MethodGet, "/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]any)
	require.Len(t, data, 1)
	tags, ok := data[0].(map[string]any)["tags"]
	require.True(t, ok)
	assert.Equal(t, []any{}, tags)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	w := performJSON(router, http.MethodPost, "/v1/posts", "", gin.H{
		"title": "Five Char", "content": "1234567890", "category": "technology",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadFile(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerAndLogin(t, router, "Jane Roe", "jane@x.io", "supersecret1")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "picture.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("description", "a test upload"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/files/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	req.Host = "api.example.com"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	file := decodeBody(t, w)
	assert.True(t, strings.HasPrefix(file["id"].(string), "file_"))
	filename := file["filename"].(string)
	assert.True(t, strings.HasPrefix(filename, "file-"))
	assert.True(t, strings.HasSuffix(filename, ".png"))
	assert.Equal(t, "http://api.example.com/uploads/"+filename, file["url"])
	assert.Equal(t, float64(len("png-bytes")), file["size"])
	assert.Equal(t, "a test upload", *jsonString(file["description"]))

	// stored content is reachable through the public URL path
	req = httptest.NewRequest(http.MethodGet, "/uploads/"+filename, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	downloaded, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(downloaded))
}

func TestUploadWithoutFilePart(t *testing.T) {
	router := newTestRouter(t)
	token, _ := registerAndLogin(t, router, "Jane Roe", "jane@x.io", "supersecret1")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("description", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/files/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "File upload failed", resp["error"])
	assert.Equal(t, "No file provided", resp["message"])
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	w := performJSON(router, http.MethodGet, "/v1/nothing-here", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Not found", body["error"])
	assert.Equal(t, "The requested endpoint does not exist", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func jsonString(v any) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}
