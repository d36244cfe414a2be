package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"identity-service/internal/auth"
	"identity-service/internal/domain"
	"identity-service/internal/service"
	"identity-service/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	tokens     *auth.TokenService
	avatars    storage.Service
	avatarOpts storage.UploadOptions
}

func NewHandler(users service.UserService, tokens *auth.TokenService, avatars storage.Service, avatarOpts storage.UploadOptions) *Handler {
	return &Handler{
		users:      users,
		tokens:     tokens,
		avatars:    avatars,
		avatarOpts: avatarOpts,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.authGate())

	router.POST("/login", h.login)
	router.POST("/users", h.register)
	router.GET("/users", h.listUsers)
	router.GET("/user/:id", h.getUser)
	router.GET("/me", h.currentUser)
	router.POST("/me/avatar", h.uploadAvatar)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Image    string `json:"image" binding:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
}

type LoginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Token    string `json:"token"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	_, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed create new user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Register Succeed"})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed login"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Image:    user.Image,
		Token:    token,
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(service.DefaultListLimit)), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	users, err := h.users.List(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed load users"})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed load user"})
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

func (h *Handler) currentUser(c *gin.Context) {
	user, ok := h.authenticatedUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}

const maxAvatarSize = 5 << 20 // 5 MiB

func (h *Handler) uploadAvatar(c *gin.Context) {
	if h.avatars == nil || h.avatarOpts.Bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}

	user, ok := h.authenticatedUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	if fileHeader.Size > maxAvatarSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed read avatar file"})
		return
	}
	defer file.Close()

	uploadCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	url, err := h.avatars.UploadAvatar(uploadCtx, file, filepath.Ext(fileHeader.Filename), h.avatarOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed store avatar"})
		return
	}

	if err := h.users.SetImage(c.Request.Context(), user.ID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed update user image"})
		return
	}

	user.Image = url
	c.JSON(http.StatusOK, userToResponse(*user))
}

// authenticatedUser resolves the account behind the gate-attached claims.
// It writes the error response itself when resolution fails.
func (h *Handler) authenticatedUser(c *gin.Context) (*domain.User, bool) {
	claims, ok := claimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return nil, false
	}

	user, err := h.users.GetByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed load user"})
		return nil, false
	}
	return user, true
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Image:    user.Image,
	}
}

// bindError maps binding failures to responses: field validation errors get
// a per-field message map, anything else (bad JSON) a generic bad request.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = validationMessage(fe)
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fields})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "is invalid"
	}
}
