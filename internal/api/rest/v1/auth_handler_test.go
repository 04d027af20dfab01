//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
)

func newJSONRequest(method, target, body string) *http.Request {
	req, _ := http.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func testAccount() *users.User {
	return &users.User{
		ID:             "user-1",
		Username:       "alice",
		Email:          "alice@example.com",
		Role:           users.RoleAnalyst,
		ClearanceLevel: 3,
		OrganizationID: "org-alpha",
		CreatedAt:      time.Now(),
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockUserRepository := new(MockUserRepository)
	handler := NewAuthHandler(mockAuthService, mockUserRepository)

	mockAuthService.
		On("Register", mock.Anything, "alice", "alice@example.com", "correct-horse-battery", users.RoleAnalyst, "org-alpha").
		Return(testAccount(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"correct-horse-battery","role":"analyst","organizationId":"org-alpha"}`)

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "user-1")
	assert.NotContains(t, w.Body.String(), "PasswordHash")
	mockAuthService.AssertExpectations(t)
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, new(MockUserRepository))

	mockAuthService.
		On("Register", mock.Anything, "alice", "alice@example.com", "short1pass", users.RoleUser, "").
		Return(nil, users.ErrWeakPassword)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"short1pass"}`)

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password_weak")
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, new(MockUserRepository))

	mockAuthService.
		On("Register", mock.Anything, "alice", "alice@example.com", "correct-horse-battery", users.RoleUser, "").
		Return(nil, users.ErrDuplicateUser)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"correct-horse-battery"}`)

	handler.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	handler := NewAuthHandler(new(MockAuthService), new(MockUserRepository))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/auth/register",
		`{"username":"alice","email":"not-an-email","password":"correct-horse-battery"}`)

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, new(MockUserRepository))

	mockAuthService.
		On("Login", mock.Anything, "alice", "correct-horse-battery").
		Return("signed.jwt.token", testAccount(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/auth/login",
		`{"username":"alice","password":"correct-horse-battery"}`)

	handler.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed.jwt.token")
	mockAuthService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	handler := NewAuthHandler(mockAuthService, new(MockUserRepository))

	mockAuthService.
		On("Login", mock.Anything, "alice", "wrong-password-here").
		Return("", nil, users.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/auth/login",
		`{"username":"alice","password":"wrong-password-here"}`)

	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Me_Success(t *testing.T) {
	mockUserRepository := new(MockUserRepository)
	handler := NewAuthHandler(new(MockAuthService), mockUserRepository)

	mockUserRepository.
		On("GetByID", mock.Anything, "user-1").
		Return(testAccount(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/auth/me", nil)
	c.Request = req
	c.Set(claimsContextKey, &users.TokenClaims{UserID: "user-1", Role: users.RoleAnalyst})

	handler.Me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	mockUserRepository.AssertExpectations(t)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	handler := NewAuthHandler(new(MockAuthService), new(MockUserRepository))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/auth/me", nil)
	c.Request = req

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
