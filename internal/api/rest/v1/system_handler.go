package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
)

const (
	defaultHistoryLimit  = 50
	defaultActivityLimit = 100
)

// SystemHandler defines the interface for handling system configuration and
// status operations
type SystemHandler interface {
	GetConfiguration(ctx *gin.Context)
	UpdateConfiguration(ctx *gin.Context)
	RotationHistory(ctx *gin.Context)
	Status(ctx *gin.Context)
	Activity(ctx *gin.Context)
}

type systemHandler struct {
	systemService system.Service
	history       keys.HistoryRepository
	activity      system.ActivityRepository
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService system.Service, history keys.HistoryRepository, activity system.ActivityRepository) SystemHandler {
	return &systemHandler{
		systemService: systemService,
		history:       history,
		activity:      activity,
	}
}

// GetConfiguration handles the GET request for the caller's configuration
// @Summary Get the system configuration
// @Description Return the caller's rotation and threat-sensitivity configuration.
// @Tags System
// @Produce json
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /system/config [get]
func (handler *systemHandler) GetConfiguration(ctx *gin.Context) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, "authentication required")
		return
	}

	cfg, err := handler.systemService.GetConfiguration(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, system.ErrConfigurationNotFound) {
			respondError(ctx, http.StatusNotFound, system.ErrConfigurationNotFound.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error loading configuration: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, toConfigResponse(cfg))
}

// UpdateConfiguration handles the PUT request for the caller's configuration
// @Summary Update the system configuration
// @Description Validate and upsert the caller's rotation and threat-sensitivity configuration.
// @Tags System
// @Accept json
// @Produce json
// @Param requestBody body UpdateConfigRequest true "Configuration Data"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /system/config [put]
func (handler *systemHandler) UpdateConfiguration(ctx *gin.Context) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, "authentication required")
		return
	}

	var request UpdateConfigRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid configuration data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := handler.systemService.UpdateConfiguration(ctx, &system.Configuration{
		UserID:                claims.UserID,
		OrganizationID:        claims.OrganizationID,
		CurrentAlgorithm:      request.CurrentAlgorithm,
		BackupAlgorithm:       request.BackupAlgorithm,
		CurrentKeyID:          request.CurrentKeyID,
		RotationIntervalHours: request.RotationIntervalHours,
		ThreatSensitivity:     request.ThreatSensitivity,
		AutoRotation:          request.AutoRotation,
	})
	if err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("error updating configuration: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, toConfigResponse(cfg))
}

// RotationHistory handles the GET request for the caller's rotation history
// @Summary List rotation history
// @Description Return the caller's most recent rotation-history records, newest first.
// @Tags System
// @Produce json
// @Param limit query int false "Maximum records to return"
// @Success 200 {object} Envelope
// @Router /system/rotation-history [get]
func (handler *systemHandler) RotationHistory(ctx *gin.Context) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		respondError(ctx, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, err := limitQuery(ctx, defaultHistoryLimit)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	records, err := handler.history.ListByUser(ctx, claims.UserID, limit)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error listing rotation history: %v", err))
		return
	}

	responses := make([]RotationRecordResponse, len(records))
	for i, r := range records {
		responses[i] = toRotationRecordResponse(r)
	}
	respondData(ctx, http.StatusOK, responses)
}

// Status handles the GET request for the platform health snapshot
// @Summary Get platform status
// @Description Return the synthesized platform health snapshot. Requires quantum clearance level 3.
// @Tags System
// @Produce json
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /system/status [get]
func (handler *systemHandler) Status(ctx *gin.Context) {
	status, err := handler.systemService.Status(ctx)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error computing status: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, StatusResponse{
		QuantumShieldStatus: status.QuantumShieldStatus,
		ActiveKeys:          status.ActiveKeys,
		QuantumResistant:    status.QuantumResistant,
		ActiveThreats:       status.ActiveThreats,
		ThreatLevel:         status.ThreatLevel,
		CPUPercent:          status.CPUPercent,
		MemoryPercent:       status.MemoryPercent,
		GeneratedAt:         status.GeneratedAt,
	})
}

// Activity handles the GET request for the audit trail
// @Summary List recent activity
// @Description Return the most recent audit-trail entries across all users.
// @Tags System
// @Produce json
// @Param limit query int false "Maximum entries to return"
// @Success 200 {object} Envelope
// @Failure 403 {object} Envelope
// @Router /activity [get]
func (handler *systemHandler) Activity(ctx *gin.Context) {
	limit, err := limitQuery(ctx, defaultActivityLimit)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := handler.activity.ListRecent(ctx, limit)
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error listing activity: %v", err))
		return
	}

	responses := make([]ActivityResponse, len(entries))
	for i, entry := range entries {
		responses[i] = toActivityResponse(entry)
	}
	respondData(ctx, http.StatusOK, responses)
}

func limitQuery(ctx *gin.Context, fallback int) (int, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("invalid limit: %q", raw)
	}
	return limit, nil
}
