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

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
)

func testThreat() *threats.ThreatIntelligence {
	return &threats.ThreatIntelligence{
		ID:                 "threat-1",
		Type:               "quantum-advance",
		Severity:           4,
		Confidence:         0.8,
		Source:             "manual-report",
		Title:              "Improved lattice reduction",
		AffectedAlgorithms: []string{"RSA-2048"},
		Active:             true,
		CreatedAt:          time.Now(),
	}
}

func TestThreatHandler_List_Success(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	mockThreatService.
		On("ListActive", mock.Anything, 3, time.Time{}).
		Return([]*threats.ThreatIntelligence{testThreat()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/threats?severity=3", nil)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "threat-1")
	mockThreatService.AssertExpectations(t)
}

func TestThreatHandler_List_InvalidSeverity(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/threats?severity=critical", nil)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockThreatService.AssertNotCalled(t, "ListActive")
}

func TestThreatHandler_List_SinceCutoff(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	since, _ := time.Parse(time.RFC3339, "2026-01-01T00:00:00Z")
	mockThreatService.
		On("ListActive", mock.Anything, threats.SeverityMin, since).
		Return([]*threats.ThreatIntelligence{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/threats?since=2026-01-01T00:00:00Z", nil)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockThreatService.AssertExpectations(t)
}

func TestThreatHandler_List_MitigationsHiddenBelowClearance(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	threat := testThreat()
	threat.Mitigations = []string{"migrate to CRYSTALS-Kyber"}
	mockThreatService.
		On("ListActive", mock.Anything, threats.SeverityMin, time.Time{}).
		Return([]*threats.ThreatIntelligence{threat}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/threats", nil)
	c.Request = req
	c.Set(claimsContextKey, &users.TokenClaims{
		UserID:                "user-1",
		Role:                  users.RoleUser,
		QuantumClearanceLevel: 1,
	})

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "threat-1")
	assert.NotContains(t, w.Body.String(), "migrate to CRYSTALS-Kyber")
}

func TestThreatHandler_List_MitigationsVisibleAtClearance(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	threat := testThreat()
	threat.Mitigations = []string{"migrate to CRYSTALS-Kyber"}
	mockThreatService.
		On("ListActive", mock.Anything, threats.SeverityMin, time.Time{}).
		Return([]*threats.ThreatIntelligence{threat}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/threats", nil)
	c.Request = req
	c.Set(claimsContextKey, &users.TokenClaims{
		UserID:                "user-1",
		Role:                  users.RoleAnalyst,
		QuantumClearanceLevel: 3,
	})

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "migrate to CRYSTALS-Kyber")
}

func TestThreatHandler_Report_Success(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	mockThreatService.
		On("Report", mock.Anything, mock.Anything).
		Return(testThreat(), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/threats",
		`{"type":"quantum-advance","severity":4,"confidence":0.8,"title":"Improved lattice reduction","affectedAlgorithms":["RSA-2048"]}`)

	handler.Report(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "threat-1")
	mockThreatService.AssertExpectations(t)
}

func TestThreatHandler_Report_SeverityOutOfRange(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/threats",
		`{"type":"quantum-advance","severity":9,"confidence":0.8,"title":"Out of range"}`)

	handler.Report(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockThreatService.AssertNotCalled(t, "Report")
}

func TestThreatHandler_Report_Duplicate(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	mockThreatService.
		On("Report", mock.Anything, mock.Anything).
		Return(nil, threats.ErrDuplicateThreat)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/threats",
		`{"type":"quantum-advance","severity":4,"confidence":0.8,"title":"Improved lattice reduction"}`)

	handler.Report(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestThreatHandler_Deactivate_NotFound(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	mockThreatService.
		On("Deactivate", mock.Anything, "missing").
		Return(threats.ErrThreatNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("POST", "/threats/missing/deactivate", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Deactivate(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestThreatHandler_Stats_Success(t *testing.T) {
	mockThreatService := new(MockThreatService)
	handler := NewThreatHandler(mockThreatService)

	mockThreatService.
		On("Stats", mock.Anything).
		Return(&threats.Stats{TotalActive: 3, BySeverity: map[int]int{4: 2, 5: 1}, CriticalLast7: 3}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/threats/stats", nil)
	c.Request = req

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "totalActive")
	mockThreatService.AssertExpectations(t)
}
