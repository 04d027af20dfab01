package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
)

// ThreatHandler defines the interface for handling threat intelligence operations
type ThreatHandler interface {
	List(ctx *gin.Context)
	Report(ctx *gin.Context)
	Deactivate(ctx *gin.Context)
	Stats(ctx *gin.Context)
}

type threatHandler struct {
	threatService threats.Service
}

// NewThreatHandler creates a new ThreatHandler
func NewThreatHandler(threatService threats.Service) ThreatHandler {
	return &threatHandler{threatService: threatService}
}

// List handles the GET request for active threats
// @Summary List active threats
// @Description Return active threats at or above the given severity created since the given time.
// @Tags Threat
// @Produce json
// @Param severity query int false "Minimum severity (1-5)"
// @Param since query string false "RFC3339 creation cutoff"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /threats [get]
func (handler *threatHandler) List(ctx *gin.Context) {
	minSeverity := threats.SeverityMin
	if raw := ctx.Query("severity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid severity: %v", err))
			return
		}
		minSeverity = parsed
	}

	var since time.Time
	if raw := ctx.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid since timestamp: %v", err))
			return
		}
		since = parsed
	}

	records, err := handler.threatService.ListActive(ctx, minSeverity, since)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error listing threats: %v", err))
		return
	}

	responses := make([]ThreatResponse, len(records))
	for i, t := range records {
		responses[i] = handler.threatView(ctx, t)
	}
	respondData(ctx, http.StatusOK, responses)
}

// Report handles the POST request to record a threat
// @Summary Report a threat
// @Description Validate and persist a manually reported threat; critical threats raise a realtime alert.
// @Tags Threat
// @Accept json
// @Produce json
// @Param requestBody body ReportThreatRequest true "Threat Data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /threats [post]
func (handler *threatHandler) Report(ctx *gin.Context) {
	var request ReportThreatRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid threat data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	threat, err := handler.threatService.Report(ctx, request.ToDomain())
	if err != nil {
		if errors.Is(err, threats.ErrDuplicateThreat) {
			respondError(ctx, http.StatusConflict, threats.ErrDuplicateThreat.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error recording threat: %v", err))
		return
	}

	respondData(ctx, http.StatusCreated, handler.threatView(ctx, threat))
}

// Deactivate handles the POST request to retire a threat
// @Summary Deactivate a threat
// @Description Mark the threat inactive; records are never deleted.
// @Tags Threat
// @Produce json
// @Param id path string true "Threat ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /threats/{id}/deactivate [post]
func (handler *threatHandler) Deactivate(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := handler.threatService.Deactivate(ctx, id); err != nil {
		if errors.Is(err, threats.ErrThreatNotFound) {
			respondError(ctx, http.StatusNotFound, threats.ErrThreatNotFound.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error deactivating threat: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, gin.H{"id": id, "active": false})
}

// threatView renders a threat record for the caller, withholding mitigation
// playbooks from callers below the sensitive clearance level.
func (handler *threatHandler) threatView(ctx *gin.Context, threat *threats.ThreatIntelligence) ThreatResponse {
	resp := toThreatResponse(threat)
	if !hasSensitiveClearance(ctx) {
		resp.Mitigations = nil
	}
	return resp
}

// Stats handles the GET request for the threat landscape summary
// @Summary Summarize the threat landscape
// @Description Return active counts grouped by severity plus critical threats of the last 7 days.
// @Tags Threat
// @Produce json
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /threats/stats [get]
func (handler *threatHandler) Stats(ctx *gin.Context) {
	stats, err := handler.threatService.Stats(ctx)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error computing threat stats: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, ThreatStatsResponse{
		TotalActive:   stats.TotalActive,
		BySeverity:    stats.BySeverity,
		CriticalLast7: stats.CriticalLast7,
	})
}
