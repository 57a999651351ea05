package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-api/internal/apperr"
	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/service"
)

// maxUploadBytes caps a single uploaded binary at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	posts    service.PostService
	files    service.FileService
	secret   []byte
	tokenTTL time.Duration
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, posts service.PostService, files service.FileService, secret []byte, tokenTTL time.Duration, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:    users,
		posts:    posts,
		files:    files,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		h.logger.Errorf("panic recovered: %v", recovered)
		writeError(c, apperr.Internal())
	}))
	router.Use(corsMiddleware())

	router.GET("/uploads/:filename", h.downloadFile)

	v1 := router.Group("/v1")
	{
		v1.POST("/auth/login", h.login)
		v1.POST("/users", h.createUser)
		v1.GET("/users", RequireAuth(h.secret), h.listUsers)
		v1.GET("/users/:id", RequireAuth(h.secret), h.getUser)
		v1.GET("/posts", h.listPosts)
		v1.POST("/posts", RequireAuth(h.secret), h.createPost)
		v1.POST("/files/upload", RequireAuth(h.secret), h.uploadFile)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	router.NoRoute(func(c *gin.Context) {
		writeError(c, apperr.New(apperr.KindNotFound,
			"Not found",
			"The requested endpoint does not exist"))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.Validation("Email and password are required"))
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	token, expiresAt, err := auth.Issue(user, h.secret, h.tokenTTL)
	if err != nil {
		h.logger.Errorf("issue token: %v", err)
		writeError(c, apperr.Internal())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"user":      userToResponse(user.Public()),
		"expiresAt": expiresAt.UTC().Format(time.RFC3339),
	})
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// zero values fall through; validation reports the missing fields
		req = createUserRequest{}
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToResponse(user.Public()))
}

func (h *Handler) listUsers(c *gin.Context) {
	page := pageFromQuery(c)

	users, total, err := h.users.List(c.Request.Context(), page)
	if err != nil {
		h.logger.Errorf("list users: %v", err)
		writeError(c, apperr.Internal())
		return
	}

	data := make([]userResponse, len(users))
	for i := range users {
		data[i] = userToResponse(users[i].Public())
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": total,
		"page":  page.Number,
		"limit": page.Size,
	})
}

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user.Public()))
}

func (h *Handler) listPosts(c *gin.Context) {
	filter := repository.PostFilter{
		AuthorID: c.Query("author"),
		Category: c.Query("category"),
	}

	// public listing returns the full filtered set
	posts, total, err := h.posts.List(c.Request.Context(), filter, repository.Page{})
	if err != nil {
		h.logger.Errorf("list posts: %v", err)
		writeError(c, apperr.Internal())
		return
	}

	data := make([]postResponse, len(posts))
	for i := range posts {
		data[i] = postToResponse(posts[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": total,
	})
}

type createPostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
}

func (h *Handler) createPost(c *gin.Context) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		writeError(c, apperr.New(apperr.KindUnauthorized,
			"Unauthorized",
			"Access token required"))
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = createPostRequest{}
	}

	post, err := h.posts.Create(c.Request.Context(), claims.UserID, service.CreatePostInput{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, postToResponse(*post))
}

func (h *Handler) uploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	part, header, err := c.Request.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			writeError(c, apperr.New(apperr.KindValidation,
				"File upload failed",
				"No file provided"))
			return
		}
		writeError(c, apperr.New(apperr.KindValidation,
			"File upload failed",
			"File must be smaller than 10MB"))
		return
	}
	defer part.Close()

	var description *string
	if value := c.PostForm("description"); value != "" {
		description = &value
	}

	file, err := h.files.Save(c.Request.Context(), requestBase(c), service.SaveFileInput{
		OriginalName: header.Filename,
		Size:         header.Size,
		ContentType:  header.Header.Get("Content-Type"),
		Description:  description,
		Content:      part,
	})
	if err != nil {
		h.logger.Errorf("save upload: %v", err)
		writeError(c, apperr.Internal())
		return
	}

	c.JSON(http.StatusCreated, fileToResponse(*file))
}

func (h *Handler) downloadFile(c *gin.Context) {
	file, content, err := h.files.Open(c.Request.Context(), c.Param("filename"))
	if err != nil {
		writeError(c, err)
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, content, nil)
}

// pageFromQuery applies the 1/10 defaults for absent or non-numeric
// pagination parameters.
func pageFromQuery(c *gin.Context) repository.Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return repository.Page{Number: page, Size: limit}
}

// requestBase reconstructs the externally reachable origin of this request.
func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func userToResponse(user domain.PublicUser) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

type postResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	AuthorID    string   `json:"authorId"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"isPublished"`
	PublishedAt *string  `json:"publishedAt"`
	ReadTime    int      `json:"readTime"`
	CreatedAt   string   `json:"createdAt"`
}

func postToResponse(post domain.Post) postResponse {
	resp := postResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		AuthorID:    post.AuthorID,
		Category:    post.Category,
		Tags:        post.Tags,
		IsPublished: post.IsPublished,
		ReadTime:    post.ReadTime,
		CreatedAt:   post.CreatedAt.Format(time.RFC3339),
	}
	if post.PublishedAt != nil {
		v := post.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &v
	}
	return resp
}

type fileResponse struct {
	ID          string  `json:"id"`
	Filename    string  `json:"filename"`
	URL         string  `json:"url"`
	Size        int64   `json:"size"`
	MimeType    string  `json:"mimeType"`
	Description *string `json:"description"`
	UploadedAt  string  `json:"uploadedAt"`
}

func fileToResponse(file domain.UploadedFile) fileResponse {
	return fileResponse{
		ID:          file.ID,
		Filename:    file.Filename,
		URL:         file.URL,
		Size:        file.Size,
		MimeType:    file.MimeType,
		Description: file.Description,
		UploadedAt:  file.UploadedAt.Format(time.RFC3339),
	}
}
