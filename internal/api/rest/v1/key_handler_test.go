//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
)

func testKey() *keys.CryptographicKey {
	return &keys.CryptographicKey{
		ID:               "key-1",
		Algorithm:        "CRYSTALS-Kyber",
		KeySize:          1024,
		Purpose:          keys.PurposeEncryption,
		OrganizationID:   "org-alpha",
		QuantumResistant: true,
		Status:           keys.StatusActive,
		CreatedAt:        time.Now(),
		ExpiresAt:        time.Now().Add(90 * 24 * time.Hour),
	}
}

func authedKeyContext(w *httptest.ResponseRecorder, req *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(claimsContextKey, &users.TokenClaims{
		UserID:         "user-1",
		Role:           users.RoleUser,
		OrganizationID: "org-alpha",
	})
	return c
}

func TestKeyHandler_Create_Success(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	mockLifecycleService.
		On("Create", mock.Anything, "CRYSTALS-Kyber", uint32(1024), keys.PurposeEncryption, "org-alpha").
		Return(testKey(), nil)

	w := httptest.NewRecorder()
	c := authedKeyContext(w, newJSONRequest("POST", "/keys",
		`{"algorithm":"CRYSTALS-Kyber","keySize":1024,"purpose":"encryption"}`))

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "key-1")
	mockLifecycleService.AssertExpectations(t)
}

func TestKeyHandler_Create_InvalidPurpose(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	w := httptest.NewRecorder()
	c := authedKeyContext(w, newJSONRequest("POST", "/keys",
		`{"algorithm":"CRYSTALS-Kyber","keySize":1024,"purpose":"steganography"}`))

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockLifecycleService.AssertNotCalled(t, "Create")
}

func TestKeyHandler_List_Success(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	mockLifecycleService.
		On("List", mock.Anything, "org-alpha").
		Return([]*keys.CryptographicKey{testKey()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/keys", nil)
	c := authedKeyContext(w, req)

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "key-1")
	mockLifecycleService.AssertExpectations(t)
}

func TestKeyHandler_GetByID_NotFound(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	mockLifecycleService.
		On("GetByID", mock.Anything, "missing").
		Return(nil, keys.ErrKeyNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/keys/missing", nil)
	c := authedKeyContext(w, req)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKeyHandler_GetByID_UsageHiddenBelowClearance(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	key := testKey()
	key.Usage.Operations = 4200
	key.Usage.DataVolumeBytes = 1 << 20
	mockLifecycleService.On("GetByID", mock.Anything, "key-1").Return(key, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/keys/key-1", nil)
	c := authedKeyContext(w, req)
	c.Params = gin.Params{{Key: "id", Value: "key-1"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "usage")
	assert.NotContains(t, w.Body.String(), "4200")
}

func TestKeyHandler_GetByID_UsageVisibleAtClearance(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	key := testKey()
	key.Usage.Operations = 4200
	mockLifecycleService.On("GetByID", mock.Anything, "key-1").Return(key, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/keys/key-1", nil)
	c.Request = req
	c.Set(claimsContextKey, &users.TokenClaims{
		UserID:                "user-2",
		Role:                  users.RoleAnalyst,
		QuantumClearanceLevel: 3,
		OrganizationID:        "org-alpha",
	})
	c.Params = gin.Params{{Key: "id", Value: "key-1"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"operations":4200`)
}

func TestKeyHandler_Rotate_Success(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	successor := testKey()
	successor.ID = "key-2"
	successor.PredecessorID = "key-1"
	mockLifecycleService.
		On("Rotate", mock.Anything, "key-1", "compliance review").
		Return(successor, nil)

	w := httptest.NewRecorder()
	c := authedKeyContext(w, newJSONRequest("POST", "/keys/key-1/rotate", `{"reason":"compliance review"}`))
	c.Params = gin.Params{{Key: "id", Value: "key-1"}}

	handler.Rotate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "key-2")
	mockLifecycleService.AssertExpectations(t)
}

func TestKeyHandler_Rotate_AlreadySuperseded(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	mockLifecycleService.
		On("Rotate", mock.Anything, "key-1", "").
		Return(nil, keys.ErrKeySuperseded)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/keys/key-1/rotate", nil)
	c := authedKeyContext(w, req)
	c.Params = gin.Params{{Key: "id", Value: "key-1"}}

	handler.Rotate(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestKeyHandler_RecordUsage_Success(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	mockLifecycleService.
		On("RecordUsage", mock.Anything, "key-1", "encrypt", int64(4096)).
		Return(testKey(), nil)

	w := httptest.NewRecorder()
	c := authedKeyContext(w, newJSONRequest("POST", "/keys/key-1/usage", `{"operation":"encrypt","dataSize":4096}`))
	c.Params = gin.Params{{Key: "id", Value: "key-1"}}

	handler.RecordUsage(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockLifecycleService.AssertExpectations(t)
}

func TestKeyHandler_CheckTriggers_Success(t *testing.T) {
	mockLifecycleService := new(MockLifecycleService)
	handler := NewKeyHandler(mockLifecycleService)

	mockLifecycleService.
		On("CheckRotationTriggers", mock.Anything, "key-1").
		Return(&keys.TriggerEvaluation{Due: true, Reasons: []string{"rotation interval elapsed"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/keys/key-1/triggers", nil)
	c := authedKeyContext(w, req)
	c.Params = gin.Params{{Key: "id", Value: "key-1"}}

	handler.CheckTriggers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rotation interval elapsed")
	mockLifecycleService.AssertExpectations(t)
}
