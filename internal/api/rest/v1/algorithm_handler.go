package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
)

// AlgorithmHandler defines the interface for handling algorithm catalog operations
type AlgorithmHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Compare(ctx *gin.Context)
	Recommend(ctx *gin.Context)
}

type algorithmHandler struct {
	catalog   algorithms.Catalog
	selection algorithms.SelectionService
}

// NewAlgorithmHandler creates a new AlgorithmHandler
func NewAlgorithmHandler(catalog algorithms.Catalog, selection algorithms.SelectionService) AlgorithmHandler {
	return &algorithmHandler{
		catalog:   catalog,
		selection: selection,
	}
}

// List handles the GET request for all cataloged algorithms
// @Summary List cataloged algorithms
// @Description Return every seeded algorithm profile, optionally filtered by type.
// @Tags Algorithm
// @Produce json
// @Param type query string false "Algorithm type filter"
// @Success 200 {object} Envelope
// @Router /algorithms [get]
func (handler *algorithmHandler) List(ctx *gin.Context) {
	var profiles []*algorithms.AlgorithmProfile
	if t := ctx.Query("type"); t != "" {
		profiles = handler.catalog.ListByType(ctx, algorithms.AlgorithmType(t))
	} else {
		profiles = handler.catalog.List(ctx)
	}

	responses := make([]AlgorithmResponse, len(profiles))
	for i, p := range profiles {
		responses[i] = toAlgorithmResponse(p)
	}
	respondData(ctx, http.StatusOK, responses)
}

// GetByID handles the GET request for one cataloged algorithm
// @Summary Get an algorithm profile
// @Description Return the cataloged profile for the given algorithm ID.
// @Tags Algorithm
// @Produce json
// @Param id path string true "Algorithm ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /algorithms/{id} [get]
func (handler *algorithmHandler) GetByID(ctx *gin.Context) {
	profile, err := handler.catalog.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, algorithms.ErrAlgorithmNotFound) {
			respondError(ctx, http.StatusNotFound, algorithms.ErrAlgorithmNotFound.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error loading algorithm: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, toAlgorithmResponse(profile))
}

// Compare handles the POST request to score selected algorithms
// @Summary Compare algorithms
// @Description Score at least two algorithms against the given requirements.
// @Tags Algorithm
// @Accept json
// @Produce json
// @Param requestBody body CompareRequest true "Comparison Input"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /algorithms/compare [post]
func (handler *algorithmHandler) Compare(ctx *gin.Context) {
	var request CompareRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid comparison data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	recs, err := handler.selection.Compare(ctx, request.AlgorithmIDs, request.Requirements.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, algorithms.ErrNotEnoughAlgorithms):
			respondError(ctx, http.StatusBadRequest, algorithms.ErrNotEnoughAlgorithms.Error())
		case errors.Is(err, algorithms.ErrAlgorithmNotFound):
			respondError(ctx, http.StatusNotFound, algorithms.ErrAlgorithmNotFound.Error())
		default:
			respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error comparing algorithms: %v", err))
		}
		return
	}

	respondData(ctx, http.StatusOK, toRecommendationResponses(recs))
}

// Recommend handles the POST request to rank the whole catalog
// @Summary Recommend algorithms
// @Description Score every cataloged algorithm against the given requirements and persist the top outcome.
// @Tags Algorithm
// @Accept json
// @Produce json
// @Param requestBody body RequirementsRequest true "Selection Requirements"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /algorithms/recommend [post]
func (handler *algorithmHandler) Recommend(ctx *gin.Context) {
	var request RequirementsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid requirements data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	reqCtx := ctx.Request.Context()
	if claims, ok := claimsFromContext(ctx); ok {
		reqCtx = app.WithUserID(reqCtx, claims.UserID)
	}

	recs, err := handler.selection.Recommend(reqCtx, request.ToDomain())
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error recommending algorithms: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, toRecommendationResponses(recs))
}
