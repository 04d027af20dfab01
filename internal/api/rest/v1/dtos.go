package v1

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/keys"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/users"
)

var validate = validator.New()

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username       string `json:"username" validate:"required,min=3,max=64"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required"`
	Role           string `json:"role" validate:"omitempty,oneof=admin analyst user"`
	OrganizationID string `json:"organizationId" validate:"omitempty,max=128"`
}

// Validate checks the request fields.
func (r *RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the request fields.
func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID                    string    `json:"id"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Role                  string    `json:"role"`
	QuantumClearanceLevel int       `json:"quantumClearanceLevel"`
	OrganizationID        string    `json:"organizationId,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
}

func toUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:                    u.ID,
		Username:              u.Username,
		Email:                 u.Email,
		Role:                  string(u.Role),
		QuantumClearanceLevel: u.ClearanceLevel,
		OrganizationID:        u.OrganizationID,
		CreatedAt:             u.CreatedAt,
	}
}

// LoginResponse carries the signed token together with the account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RequirementsRequest mirrors algorithms.Requirements for recommend/compare
// calls.
type RequirementsRequest struct {
	Purpose             string   `json:"purpose" validate:"omitempty,max=64"`
	QuantumResistance   bool     `json:"quantumResistance"`
	PerformancePriority string   `json:"performancePriority" validate:"omitempty,oneof=high normal low"`
	ComplianceStandards []string `json:"complianceStandards" validate:"omitempty,dive,max=64"`
	Environment         []string `json:"environment" validate:"omitempty,dive,max=64"`
	HighCompliance      bool     `json:"highCompliance"`
}

// ToDomain converts the request into domain requirements.
func (r *RequirementsRequest) ToDomain() *algorithms.Requirements {
	priority := algorithms.PerformancePriority(r.PerformancePriority)
	if priority == "" {
		priority = algorithms.PriorityNormal
	}
	return &algorithms.Requirements{
		Purpose:             r.Purpose,
		QuantumResistance:   r.QuantumResistance,
		PerformancePriority: priority,
		ComplianceStandards: r.ComplianceStandards,
		Environment:         r.Environment,
		HighCompliance:      r.HighCompliance,
	}
}

// Validate checks the request fields.
func (r *RequirementsRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// CompareRequest is the payload for POST /algorithms/compare.
type CompareRequest struct {
	AlgorithmIDs []string            `json:"algorithmIds" validate:"required,min=2,dive,required"`
	Requirements RequirementsRequest `json:"requirements"`
}

// Validate checks the request fields.
func (r *CompareRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// AlgorithmResponse is the public view of a cataloged algorithm profile.
type AlgorithmResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	QuantumResistant bool     `json:"quantumResistant"`
	KeySizes         []uint32 `json:"keySizes"`
	Performance      struct {
		EncryptionSpeedMBps float64 `json:"encryptionSpeedMBps"`
		KeyGenerationMs     float64 `json:"keyGenerationMs"`
		SignMs              float64 `json:"signMs"`
		VerifyMs            float64 `json:"verifyMs"`
		MemoryKB            int     `json:"memoryKb"`
		CPUPercent          float64 `json:"cpuPercent"`
	} `json:"performance"`
	Security struct {
		QuantumBitStrength   int      `json:"quantumBitStrength"`
		ClassicalBitStrength int      `json:"classicalBitStrength"`
		KnownVulnerabilities []string `json:"knownVulnerabilities"`
		LastReviewed         string   `json:"lastReviewed"`
		RecommendedUntil     string   `json:"recommendedUntil"`
	} `json:"security"`
	Compliance []string `json:"compliance"`
	Maturity   string   `json:"maturity"`
}

func toAlgorithmResponse(p *algorithms.AlgorithmProfile) AlgorithmResponse {
	resp := AlgorithmResponse{
		ID:               p.ID,
		Name:             p.Name,
		Type:             string(p.Type),
		QuantumResistant: p.QuantumResistant,
		KeySizes:         p.KeySizes,
		Compliance:       p.Compliance,
		Maturity:         string(p.Maturity),
	}
	resp.Performance.EncryptionSpeedMBps = p.Performance.EncryptionSpeedMBps
	resp.Performance.KeyGenerationMs = p.Performance.KeyGenerationMs
	resp.Performance.SignMs = p.Performance.SignMs
	resp.Performance.VerifyMs = p.Performance.VerifyMs
	resp.Performance.MemoryKB = p.Performance.MemoryKB
	resp.Performance.CPUPercent = p.Performance.CPUPercent
	resp.Security.QuantumBitStrength = p.Security.QuantumBitStrength
	resp.Security.ClassicalBitStrength = p.Security.ClassicalBitStrength
	resp.Security.KnownVulnerabilities = p.Security.KnownVulnerabilities
	resp.Security.LastReviewed = p.Security.LastReviewed.Format(time.RFC3339)
	resp.Security.RecommendedUntil = p.Security.RecommendedUntil.Format(time.RFC3339)
	return resp
}

// RecommendationResponse is one ranked selection result.
type RecommendationResponse struct {
	Algorithm    AlgorithmResponse `json:"algorithm"`
	OverallScore float64           `json:"overallScore"`
	Scores       struct {
		Performance         float64 `json:"performance"`
		Security            float64 `json:"security"`
		Compliance          float64 `json:"compliance"`
		Compatibility       float64 `json:"compatibility"`
		MigrationComplexity float64 `json:"migrationComplexity"`
	} `json:"scores"`
	Reasoning []string `json:"reasoning"`
}

func toRecommendationResponse(rec *algorithms.Recommendation) RecommendationResponse {
	resp := RecommendationResponse{
		Algorithm:    toAlgorithmResponse(rec.Profile),
		OverallScore: rec.OverallScore,
		Reasoning:    rec.Reasoning,
	}
	resp.Scores.Performance = rec.Scores.Performance
	resp.Scores.Security = rec.Scores.Security
	resp.Scores.Compliance = rec.Scores.Compliance
	resp.Scores.Compatibility = rec.Scores.Compatibility
	resp.Scores.MigrationComplexity = rec.Scores.MigrationComplexity
	return resp
}

func toRecommendationResponses(recs []*algorithms.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, len(recs))
	for i, rec := range recs {
		out[i] = toRecommendationResponse(rec)
	}
	return out
}

// CreateKeyRequest is the payload for POST /keys.
type CreateKeyRequest struct {
	Algorithm string `json:"algorithm" validate:"required,max=64"`
	KeySize   uint32 `json:"keySize" validate:"required"`
	Purpose   string `json:"purpose" validate:"required,oneof=encryption signing key-exchange"`
}

// Validate checks the request fields.
func (r *CreateKeyRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// RotateKeyRequest is the payload for POST /keys/:id/rotate.
type RotateKeyRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

// RecordUsageRequest is the payload for POST /keys/:id/usage.
type RecordUsageRequest struct {
	Operation string `json:"operation" validate:"required,max=64"`
	DataSize  int64  `json:"dataSize" validate:"gte=0"`
}

// Validate checks the request fields.
func (r *RecordUsageRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// KeyResponse is the public view of a managed key record.
type KeyResponse struct {
	ID               string    `json:"id"`
	Algorithm        string    `json:"algorithm"`
	KeySize          uint32    `json:"keySize"`
	Purpose          string    `json:"purpose"`
	OrganizationID   string    `json:"organizationId,omitempty"`
	QuantumResistant bool      `json:"quantumResistant"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
	PredecessorID    string    `json:"predecessorId,omitempty"`
	Schedule         struct {
		IntervalHours    int       `json:"intervalHours"`
		NextRotation     time.Time `json:"nextRotation"`
		AutoRotate       bool      `json:"autoRotate"`
		AdaptiveRotation bool      `json:"adaptiveRotation"`
	} `json:"schedule"`
	Usage *KeyUsageResponse `json:"usage,omitempty"`
}

// KeyUsageResponse carries a key's usage counters. It is withheld from
// callers below the sensitive clearance level.
type KeyUsageResponse struct {
	Operations      int64      `json:"operations"`
	DataVolumeBytes int64      `json:"dataVolumeBytes"`
	LastUsed        *time.Time `json:"lastUsed,omitempty"`
}

func toKeyResponse(k *keys.CryptographicKey) KeyResponse {
	resp := KeyResponse{
		ID:               k.ID,
		Algorithm:        k.Algorithm,
		KeySize:          k.KeySize,
		Purpose:          string(k.Purpose),
		OrganizationID:   k.OrganizationID,
		QuantumResistant: k.QuantumResistant,
		Status:           string(k.Status),
		CreatedAt:        k.CreatedAt,
		ExpiresAt:        k.ExpiresAt,
		PredecessorID:    k.PredecessorID,
	}
	resp.Schedule.IntervalHours = k.Schedule.IntervalHours
	resp.Schedule.NextRotation = k.Schedule.NextRotation
	resp.Schedule.AutoRotate = k.Schedule.AutoRotate
	resp.Schedule.AdaptiveRotation = k.Schedule.AdaptiveRotation
	resp.Usage = &KeyUsageResponse{
		Operations:      k.Usage.Operations,
		DataVolumeBytes: k.Usage.DataVolumeBytes,
	}
	if !k.Usage.LastUsed.IsZero() {
		lastUsed := k.Usage.LastUsed
		resp.Usage.LastUsed = &lastUsed
	}
	return resp
}

// TriggerEvaluationResponse is the outcome of GET /keys/:id/triggers.
type TriggerEvaluationResponse struct {
	Due     bool     `json:"due"`
	Reasons []string `json:"reasons"`
}

// ReportThreatRequest is the payload for POST /threats.
type ReportThreatRequest struct {
	Type                string    `json:"type" validate:"required,max=64"`
	Severity            int       `json:"severity" validate:"required,min=1,max=5"`
	Confidence          float64   `json:"confidence" validate:"gte=0,lte=1"`
	Title               string    `json:"title" validate:"required,max=255"`
	Description         string    `json:"description" validate:"omitempty,max=4096"`
	AffectedAlgorithms  []string  `json:"affectedAlgorithms" validate:"omitempty,dive,max=64"`
	PredictedImpactDate time.Time `json:"predictedImpactDate"`
	Mitigations         []string  `json:"mitigations" validate:"omitempty,dive,max=255"`
	Source              string    `json:"source" validate:"omitempty,max=64"`
}

// Validate checks the request fields.
func (r *ReportThreatRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ToDomain converts the request into a domain threat record.
func (r *ReportThreatRequest) ToDomain() *threats.ThreatIntelligence {
	return &threats.ThreatIntelligence{
		Type:                r.Type,
		Severity:            r.Severity,
		Confidence:          r.Confidence,
		Title:               r.Title,
		Description:         r.Description,
		AffectedAlgorithms:  r.AffectedAlgorithms,
		PredictedImpactDate: r.PredictedImpactDate,
		Mitigations:         r.Mitigations,
		Source:              r.Source,
	}
}

// ThreatResponse is the public view of a threat intelligence record.
type ThreatResponse struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	Severity            int       `json:"severity"`
	Confidence          float64   `json:"confidence"`
	Source              string    `json:"source"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	AffectedAlgorithms  []string  `json:"affectedAlgorithms"`
	PredictedImpactDate time.Time `json:"predictedImpactDate"`
	Mitigations         []string  `json:"mitigations,omitempty"`
	Active              bool      `json:"active"`
	CreatedAt           time.Time `json:"createdAt"`
}

func toThreatResponse(t *threats.ThreatIntelligence) ThreatResponse {
	return ThreatResponse{
		ID:                  t.ID,
		Type:                t.Type,
		Severity:            t.Severity,
		Confidence:          t.Confidence,
		Source:              t.Source,
		Title:               t.Title,
		Description:         t.Description,
		AffectedAlgorithms:  t.AffectedAlgorithms,
		PredictedImpactDate: t.PredictedImpactDate,
		Mitigations:         t.Mitigations,
		Active:              t.Active,
		CreatedAt:           t.CreatedAt,
	}
}

// ThreatStatsResponse summarizes the threat landscape.
type ThreatStatsResponse struct {
	TotalActive   int         `json:"totalActive"`
	BySeverity    map[int]int `json:"bySeverity"`
	CriticalLast7 int         `json:"criticalLast7Days"`
}

// UpdateConfigRequest is the payload for PUT /system/config.
type UpdateConfigRequest struct {
	CurrentAlgorithm      string `json:"currentAlgorithm" validate:"omitempty,max=64"`
	BackupAlgorithm       string `json:"backupAlgorithm" validate:"omitempty,max=64"`
	CurrentKeyID          string `json:"currentKeyId" validate:"omitempty,uuid"`
	RotationIntervalHours int    `json:"rotationIntervalHours" validate:"required,min=1"`
	ThreatSensitivity     int    `json:"threatSensitivity" validate:"required,min=1,max=5"`
	AutoRotation          bool   `json:"autoRotation"`
}

// Validate checks the request fields.
func (r *UpdateConfigRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ConfigResponse is the public view of a system configuration.
type ConfigResponse struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"userId"`
	OrganizationID        string    `json:"organizationId,omitempty"`
	CurrentAlgorithm      string    `json:"currentAlgorithm,omitempty"`
	BackupAlgorithm       string    `json:"backupAlgorithm,omitempty"`
	CurrentKeyID          string    `json:"currentKeyId,omitempty"`
	RotationIntervalHours int       `json:"rotationIntervalHours"`
	ThreatSensitivity     int       `json:"threatSensitivity"`
	AutoRotation          bool      `json:"autoRotation"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func toConfigResponse(cfg *system.Configuration) ConfigResponse {
	return ConfigResponse{
		ID:                    cfg.ID,
		UserID:                cfg.UserID,
		OrganizationID:        cfg.OrganizationID,
		CurrentAlgorithm:      cfg.CurrentAlgorithm,
		BackupAlgorithm:       cfg.BackupAlgorithm,
		CurrentKeyID:          cfg.CurrentKeyID,
		RotationIntervalHours: cfg.RotationIntervalHours,
		ThreatSensitivity:     cfg.ThreatSensitivity,
		AutoRotation:          cfg.AutoRotation,
		UpdatedAt:             cfg.UpdatedAt,
	}
}

// StatusResponse is the platform health snapshot.
type StatusResponse struct {
	QuantumShieldStatus string    `json:"quantumShieldStatus"`
	ActiveKeys          int       `json:"activeKeys"`
	QuantumResistant    int       `json:"quantumResistantKeys"`
	ActiveThreats       int       `json:"activeThreats"`
	ThreatLevel         float64   `json:"threatLevel"`
	CPUPercent          float64   `json:"cpuPercent"`
	MemoryPercent       float64   `json:"memoryPercent"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

// RotationRecordResponse is one rotation-history row.
type RotationRecordResponse struct {
	ID             string                  `json:"id"`
	OldKeyID       string                  `json:"oldKeyId"`
	NewKeyID       string                  `json:"newKeyId,omitempty"`
	OldAlgorithm   string                  `json:"oldAlgorithm"`
	NewAlgorithm   string                  `json:"newAlgorithm,omitempty"`
	TriggeredBy    string                  `json:"triggeredBy"`
	Reason         string                  `json:"reason,omitempty"`
	Status         string                  `json:"status"`
	StartedAt      time.Time               `json:"startedAt"`
	CompletedAt    *time.Time              `json:"completedAt,omitempty"`
	Impact         *keys.PerformanceImpact `json:"impact,omitempty"`
	OrganizationID string                  `json:"organizationId,omitempty"`
}

func toRotationRecordResponse(r *keys.RotationRecord) RotationRecordResponse {
	resp := RotationRecordResponse{
		ID:             r.ID,
		OldKeyID:       r.OldKeyID,
		NewKeyID:       r.NewKeyID,
		OldAlgorithm:   r.OldAlgorithm,
		NewAlgorithm:   r.NewAlgorithm,
		TriggeredBy:    r.TriggeredBy,
		Reason:         r.Reason,
		Status:         r.Status,
		StartedAt:      r.StartedAt,
		Impact:         r.Impact,
		OrganizationID: r.OrganizationID,
	}
	if !r.CompletedAt.IsZero() {
		completed := r.CompletedAt
		resp.CompletedAt = &completed
	}
	return resp
}

// ActivityResponse is one audit-trail entry.
type ActivityResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toActivityResponse(a *system.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    a.Action,
		Detail:    a.Detail,
		CreatedAt: a.CreatedAt,
	}
}
