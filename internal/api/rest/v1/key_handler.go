package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
)

// KeyHandler defines the interface for handling key lifecycle operations
type KeyHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Rotate(ctx *gin.Context)
	RecordUsage(ctx *gin.Context)
	CheckTriggers(ctx *gin.Context)
}

type keyHandler struct {
	lifecycle keys.LifecycleService
}

// NewKeyHandler creates a new KeyHandler
func NewKeyHandler(lifecycle keys.LifecycleService) KeyHandler {
	return &keyHandler{lifecycle: lifecycle}
}

// Create handles the POST request to register a managed key
// @Summary Create a managed key
// @Description Register a key record with an adaptive rotation schedule attached.
// @Tags Key
// @Accept json
// @Produce json
// @Param requestBody body CreateKeyRequest true "Key Data"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /keys [post]
func (handler *keyHandler) Create(ctx *gin.Context) {
	var request CreateKeyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid key data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	key, err := handler.lifecycle.Create(handler.callerContext(ctx), request.Algorithm, request.KeySize, keys.KeyPurpose(request.Purpose), organizationFromClaims(ctx))
	if err != nil {
		switch {
		case errors.Is(err, algorithms.ErrAlgorithmNotFound):
			respondError(ctx, http.StatusBadRequest, algorithms.ErrAlgorithmNotFound.Error())
		case errors.Is(err, keys.ErrInvalidKey):
			respondError(ctx, http.StatusBadRequest, err.Error())
		default:
			respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error creating key: %v", err))
		}
		return
	}

	respondData(ctx, http.StatusCreated, handler.keyView(ctx, key))
}

// List handles the GET request for the caller's keys
// @Summary List managed keys
// @Description Return every key record of the caller's organization.
// @Tags Key
// @Produce json
// @Success 200 {object} Envelope
// @Router /keys [get]
func (handler *keyHandler) List(ctx *gin.Context) {
	records, err := handler.lifecycle.List(ctx, organizationFromClaims(ctx))
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error listing keys: %v", err))
		return
	}

	responses := make([]KeyResponse, len(records))
	for i, k := range records {
		responses[i] = handler.keyView(ctx, k)
	}
	respondData(ctx, http.StatusOK, responses)
}

// GetByID handles the GET request for one key record
// @Summary Get a key record
// @Description Return the key record with the given ID.
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /keys/{id} [get]
func (handler *keyHandler) GetByID(ctx *gin.Context) {
	key, err := handler.lifecycle.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, keys.ErrKeyNotFound) {
			respondError(ctx, http.StatusNotFound, keys.ErrKeyNotFound.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error loading key: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, handler.keyView(ctx, key))
}

// Rotate handles the POST request to rotate a key
// @Summary Rotate a key
// @Description Replace the key with a successor, preferring a quantum-resistant algorithm.
// @Tags Key
// @Accept json
// @Produce json
// @Param id path string true "Key ID"
// @Param requestBody body RotateKeyRequest false "Rotation Reason"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Failure 409 {object} Envelope
// @Router /keys/{id}/rotate [post]
func (handler *keyHandler) Rotate(ctx *gin.Context) {
	var request RotateKeyRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid rotation data: %v", err))
			return
		}
	}

	successor, err := handler.lifecycle.Rotate(handler.callerContext(ctx), ctx.Param("id"), request.Reason)
	if err != nil {
		switch {
		case errors.Is(err, keys.ErrKeyNotFound):
			respondError(ctx, http.StatusNotFound, keys.ErrKeyNotFound.Error())
		case errors.Is(err, keys.ErrKeySuperseded):
			respondError(ctx, http.StatusConflict, keys.ErrKeySuperseded.Error())
		default:
			respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error rotating key: %v", err))
		}
		return
	}

	respondData(ctx, http.StatusOK, handler.keyView(ctx, successor))
}

// RecordUsage handles the POST request to record a key operation
// @Summary Record key usage
// @Description Increment usage counters and re-check rotation triggers; a due trigger rotates synchronously.
// @Tags Key
// @Accept json
// @Produce json
// @Param id path string true "Key ID"
// @Param requestBody body RecordUsageRequest true "Usage Sample"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /keys/{id}/usage [post]
func (handler *keyHandler) RecordUsage(ctx *gin.Context) {
	var request RecordUsageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid usage data: %v", err))
		return
	}
	if err := request.Validate(); err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	key, err := handler.lifecycle.RecordUsage(handler.callerContext(ctx), ctx.Param("id"), request.Operation, request.DataSize)
	if err != nil {
		switch {
		case errors.Is(err, keys.ErrKeyNotFound):
			respondError(ctx, http.StatusNotFound, keys.ErrKeyNotFound.Error())
		case errors.Is(err, keys.ErrKeySuperseded):
			respondError(ctx, http.StatusConflict, keys.ErrKeySuperseded.Error())
		default:
			respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error recording usage: %v", err))
		}
		return
	}

	respondData(ctx, http.StatusOK, handler.keyView(ctx, key))
}

// CheckTriggers handles the GET request to evaluate rotation triggers
// @Summary Evaluate rotation triggers
// @Description Check every enabled rotation trigger of the key without rotating it.
// @Tags Key
// @Produce json
// @Param id path string true "Key ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /keys/{id}/triggers [get]
func (handler *keyHandler) CheckTriggers(ctx *gin.Context) {
	evaluation, err := handler.lifecycle.CheckRotationTriggers(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, keys.ErrKeyNotFound) {
			respondError(ctx, http.StatusNotFound, keys.ErrKeyNotFound.Error())
			return
		}
		respondError(ctx, http.StatusInternalServerError, fmt.Sprintf("error evaluating triggers: %v", err))
		return
	}

	respondData(ctx, http.StatusOK, TriggerEvaluationResponse{Due: evaluation.Due, Reasons: evaluation.Reasons})
}

// keyView renders a key record for the caller, withholding usage counters
// from callers below the sensitive clearance level.
func (handler *keyHandler) keyView(ctx *gin.Context, key *keys.CryptographicKey) KeyResponse {
	resp := toKeyResponse(key)
	if !hasSensitiveClearance(ctx) {
		resp.Usage = nil
	}
	return resp
}

// callerContext stamps the authenticated user ID on the request context so
// rotation-history records carry ownership.
func (handler *keyHandler) callerContext(ctx *gin.Context) context.Context {
	reqCtx := ctx.Request.Context()
	if claims, ok := claimsFromContext(ctx); ok {
		reqCtx = app.WithUserID(reqCtx, claims.UserID)
	}
	return reqCtx
}

func organizationFromClaims(ctx *gin.Context) string {
	if claims, ok := claimsFromContext(ctx); ok {
		return claims.OrganizationID
	}
	return ""
}
