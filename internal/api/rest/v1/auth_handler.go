package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
)

// AuthHandler defines the interface for handling authentication operations
type AuthHandler interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type authHandler struct {
	authService users.AuthService
	users       users.Repository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService users.AuthService, userRepository users.Repository) AuthHandler {
	return &authHandler{
		authService: authService,
		users:       userRepository,
	}
}

// Register handles the POST request to create a new account
// @Summary Register a new account
// @Description Create a user account with a role-derived quantum clearance level.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body RegisterRequest true "Account Data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /auth/register [post]
func (handler *authHandler) Register(ctx *gin.Context) {
	var request RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid registration data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	role := users.Role(request.Role)
	if request.Role == "" {
		role = users.RoleUser
	}

	user, err := handler.authService.Register(ctx, request.Username, request.Email, request.Password, role, request.OrganizationID)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrWeakPassword):
			respondError(ctx, http.StatusBadRequest, users.ErrWeakPassword.Error())
		case errors.Is(err, users.ErrDuplicateUser):
			respondError(ctx, http.StatusConflict, users.ErrDuplicateUser.Error())
		default:
			respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error registering user: %v", err))
		}
		return
	}

	respondData(ctx, http.StatusCreated, toUserResponse(user))
}

// Login handles the POST request to authenticate an account
// @Summary Authenticate and obtain a token
// @Description Verify credentials and return a signed JWT together with the account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param requestBody body LoginRequest true "Credentials"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/login [post]
func (handler *authHandler) Login(ctx *gin.Context) {
	var request LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid login data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := handler.authService.Login(ctx, request.Username, request.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respondError(ctx, http.StatusUnauthorized, users.ErrInvalidCredentials.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error logging in: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, LoginResponse{Token: token, User: toUserResponse(user)})
}

// Me handles the GET request for the authenticated account
// @Summary Get the authenticated account
// @Description Return the profile of the account behind the bearer token.
// @Tags Auth
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /auth/me [get]
func (handler *authHandler) Me(ctx *gin.Context) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := handler.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			respondError(ctx, http.StatusNotFound, users.ErrUserNotFound.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error loading user: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, toUserResponse(user))
}
