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

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
)

func testProfile() *algorithms.AlgorithmProfile {
	return &algorithms.AlgorithmProfile{
		ID:               "kyber",
		Name:             "CRYSTALS-Kyber",
		Type:             algorithms.TypeAsymmetric,
		QuantumResistant: true,
		KeySizes:         []uint32{512, 768, 1024},
		Security: algorithms.SecurityMetrics{
			QuantumBitStrength:   128,
			ClassicalBitStrength: 256,
			LastReviewed:         time.Now(),
			RecommendedUntil:     time.Now().AddDate(5, 0, 0),
		},
		Compliance: []string{"NIST-PQC"},
		Maturity:   algorithms.MaturityStandardized,
	}
}

func TestAlgorithmHandler_List_Success(t *testing.T) {
	mockCatalog := new(MockCatalog)
	handler := NewAlgorithmHandler(mockCatalog, new(MockSelectionService))

	mockCatalog.
		On("List", mock.Anything).
		Return([]*algorithms.AlgorithmProfile{testProfile()})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/algorithms", nil)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CRYSTALS-Kyber")
	mockCatalog.AssertExpectations(t)
}

func TestAlgorithmHandler_List_FilteredByType(t *testing.T) {
	mockCatalog := new(MockCatalog)
	handler := NewAlgorithmHandler(mockCatalog, new(MockSelectionService))

	mockCatalog.
		On("ListByType", mock.Anything, algorithms.TypeSignature).
		Return([]*algorithms.AlgorithmProfile{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/algorithms?type=signature", nil)
	c.Request = req

	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCatalog.AssertExpectations(t)
}

func TestAlgorithmHandler_GetByID_NotFound(t *testing.T) {
	mockCatalog := new(MockCatalog)
	handler := NewAlgorithmHandler(mockCatalog, new(MockSelectionService))

	mockCatalog.
		On("GetByID", mock.Anything, "missing").
		Return(nil, algorithms.ErrAlgorithmNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest("GET", "/algorithms/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAlgorithmHandler_Compare_RequiresTwoIDs(t *testing.T) {
	mockSelectionService := new(MockSelectionService)
	handler := NewAlgorithmHandler(new(MockCatalog), mockSelectionService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/algorithms/compare", `{"algorithmIds":["kyber"]}`)

	handler.Compare(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSelectionService.AssertNotCalled(t, "Compare")
}

func TestAlgorithmHandler_Compare_Success(t *testing.T) {
	mockSelectionService := new(MockSelectionService)
	handler := NewAlgorithmHandler(new(MockCatalog), mockSelectionService)

	recommendation := &algorithms.Recommendation{
		Profile:      testProfile(),
		OverallScore: 0.87,
		Reasoning:    []string{"quantum-resistant"},
	}
	mockSelectionService.
		On("Compare", mock.Anything, []string{"kyber", "rsa-2048"}, mock.Anything).
		Return([]*algorithms.Recommendation{recommendation}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/algorithms/compare",
		`{"algorithmIds":["kyber","rsa-2048"],"requirements":{"quantumResistance":true}}`)

	handler.Compare(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0.87")
	mockSelectionService.AssertExpectations(t)
}

func TestAlgorithmHandler_Recommend_Success(t *testing.T) {
	mockSelectionService := new(MockSelectionService)
	handler := NewAlgorithmHandler(new(MockCatalog), mockSelectionService)

	recommendation := &algorithms.Recommendation{
		Profile:      testProfile(),
		OverallScore: 0.91,
		Reasoning:    []string{"quantum-resistant", "NIST-PQC compliant"},
	}
	mockSelectionService.
		On("Recommend", mock.Anything, mock.Anything).
		Return([]*algorithms.Recommendation{recommendation}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newJSONRequest("POST", "/algorithms/recommend",
		`{"purpose":"signing","quantumResistance":true,"performancePriority":"high"}`)

	handler.Recommend(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "NIST-PQC compliant")
	mockSelectionService.AssertExpectations(t)
}

func TestAlgorithmHandler_Recommend_DefaultsPriority(t *testing.T) {
	request := &RequirementsRequest{}
	req := request.ToDomain()

	assert.Equal(t, algorithms.PriorityNormal, req.PerformancePriority)
}
