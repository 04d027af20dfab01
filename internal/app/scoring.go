package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/system"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// Reference constants for performance normalization. Component scores are
// each metric measured against these baselines, capped at 1.
const (
	refEncryptionSpeedMBps = 100.0
	refKeyGenerationMs     = 10.0
	refSignMs              = 1.0
	refVerifyMs            = 0.5
	refMemoryKB            = 1024.0
	refCPUPercent          = 25.0
)

// securityReviewMaxAge is the staleness cutoff for the last security review.
const securityReviewMaxAge = 2 * 365 * 24 * time.Hour

// selectionService implements algorithms.SelectionService.
type selectionService struct {
	catalog algorithms.Catalog
	recRepo system.RecommendationRepository
	logger  logger.Logger
}

// NewSelectionService creates a new selectionService instance. The
// recommendation repository may be nil, in which case results are not
// persisted.
func NewSelectionService(catalog algorithms.Catalog, recRepo system.RecommendationRepository, logger logger.Logger) (algorithms.SelectionService, error) {
	return &selectionService{
		catalog: catalog,
		recRepo: recRepo,
		logger:  logger,
	}, nil
}

// Recommend scores every cataloged algorithm against the requirements.
func (s *selectionService) Recommend(ctx context.Context, req *algorithms.Requirements) ([]*algorithms.Recommendation, error) {
	profiles := s.catalog.List(ctx)
	recs := rankProfiles(profiles, req)

	if s.recRepo != nil && len(recs) > 0 {
		top := recs[0]
		record := &system.RecommendationRecord{
			ID:         uuid.New().String(),
			UserID:     userIDFromContext(ctx),
			Algorithm:  top.Profile.Name,
			Score:      top.OverallScore,
			Confidence: top.Scores.Security,
			Reasoning:  top.Reasoning,
			CreatedAt:  time.Now(),
		}
		if err := s.recRepo.Create(ctx, record); err != nil {
			s.logger.Warn("failed to persist recommendation: ", err)
		}
	}

	return recs, nil
}

// Compare scores only the given algorithm IDs.
func (s *selectionService) Compare(ctx context.Context, ids []string, req *algorithms.Requirements) ([]*algorithms.Recommendation, error) {
	if len(ids) < 2 {
		return nil, algorithms.ErrNotEnoughAlgorithms
	}

	profiles := make([]*algorithms.AlgorithmProfile, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		profiles = append(profiles, p)
	}

	return rankProfiles(profiles, req), nil
}

// rankProfiles scores each profile and sorts descending by overall score.
// The sort is stable so ties preserve input order.
func rankProfiles(profiles []*algorithms.AlgorithmProfile, req *algorithms.Requirements) []*algorithms.Recommendation {
	recs := make([]*algorithms.Recommendation, 0, len(profiles))
	weights := adjustedWeights(req)

	for _, p := range profiles {
		scores := algorithms.ComponentScores{
			Performance:         performanceScore(p, req),
			Security:            securityScore(p, req),
			Compliance:          complianceScore(p, req),
			Compatibility:       compatibilityScore(p, req),
			MigrationComplexity: migrationEase(p, req),
		}
		overall := weights.Performance*scores.Performance +
			weights.Security*scores.Security +
			weights.Compliance*scores.Compliance +
			weights.Compatibility*scores.Compatibility +
			weights.Migration*scores.MigrationComplexity

		recs = append(recs, &algorithms.Recommendation{
			Profile:      p,
			OverallScore: overall,
			Scores:       scores,
			Reasoning:    buildReasoning(p, scores),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].OverallScore > recs[j].OverallScore
	})

	return recs
}

// adjustedWeights shifts the default weights when the requirements emphasize
// quantum resistance, performance or compliance, then renormalizes so the
// weights always sum to 1.
func adjustedWeights(req *algorithms.Requirements) algorithms.Weights {
	w := algorithms.DefaultWeights()

	if req != nil {
		if req.QuantumResistance {
			w.Security += 0.15
		}
		if req.PerformancePriority == algorithms.PriorityHigh {
			w.Performance += 0.1
		}
		if req.HighCompliance || len(req.ComplianceStandards) > 0 {
			w.Compliance += 0.1
		}
	}

	sum := w.Performance + w.Security + w.Compliance + w.Compatibility + w.Migration
	w.Performance /= sum
	w.Security /= sum
	w.Compliance /= sum
	w.Compatibility /= sum
	w.Migration /= sum

	return w
}

// performanceScore normalizes the applicable metrics against the reference
// constants and averages them. High priority boosts the result by 1.2x, low
// priority lifts it by 0.3.
func performanceScore(p *algorithms.AlgorithmProfile, req *algorithms.Requirements) float64 {
	var components []float64

	if p.Performance.EncryptionSpeedMBps > 0 {
		components = append(components, math.Min(1, p.Performance.EncryptionSpeedMBps/refEncryptionSpeedMBps))
	}
	if p.Performance.KeyGenerationMs > 0 {
		components = append(components, math.Min(1, refKeyGenerationMs/p.Performance.KeyGenerationMs))
	}
	if p.Performance.MemoryKB > 0 {
		components = append(components, math.Min(1, refMemoryKB/float64(p.Performance.MemoryKB)))
	}
	if p.Performance.CPUPercent > 0 {
		components = append(components, math.Min(1, refCPUPercent/p.Performance.CPUPercent))
	}
	if p.Type == algorithms.TypeSignature {
		if p.Performance.SignMs > 0 {
			components = append(components, math.Min(1, refSignMs/p.Performance.SignMs))
		}
		if p.Performance.VerifyMs > 0 {
			components = append(components, math.Min(1, refVerifyMs/p.Performance.VerifyMs))
		}
	}

	if len(components) == 0 {
		return 0
	}

	var sum float64
	for _, c := range components {
		sum += c
	}
	score := sum / float64(len(components))

	if req != nil {
		switch req.PerformancePriority {
		case algorithms.PriorityHigh:
			score = math.Min(1, score*1.2)
		case algorithms.PriorityLow:
			score = math.Min(1, score+0.3)
		}
	}

	return score
}

// securityScore awards quantum resistance, bit strength and maturity, and
// penalizes known vulnerabilities and stale reviews. Result is clamped to
// [0,1] and is monotonically non-decreasing in quantum bit strength.
func securityScore(p *algorithms.AlgorithmProfile, _ *algorithms.Requirements) float64 {
	var score float64

	if p.QuantumResistant {
		score += 0.6
	}

	switch {
	case p.Security.QuantumBitStrength >= 192:
		score += 0.2
	case p.Security.QuantumBitStrength >= 128:
		score += 0.1
	}

	classical := math.Min(float64(p.Security.ClassicalBitStrength), 256)
	score += 0.2 * classical / 256

	score -= 0.1 * float64(len(p.Security.KnownVulnerabilities))

	switch p.Maturity {
	case algorithms.MaturityStandardized:
		score += 0.1
	case algorithms.MaturityExperimental:
		score -= 0.1
	case algorithms.MaturityDeprecated:
		score -= 0.3
	}

	if !p.Security.LastReviewed.IsZero() && time.Since(p.Security.LastReviewed) > securityReviewMaxAge {
		score -= 0.1
	}

	return clamp01(score)
}

// complianceScore is the fraction of requested standards present in the
// profile's compliance tag set, 1.0 when nothing was requested.
func complianceScore(p *algorithms.AlgorithmProfile, req *algorithms.Requirements) float64 {
	if req == nil || len(req.ComplianceStandards) == 0 {
		return 1.0
	}

	matched := 0
	for _, standard := range req.ComplianceStandards {
		if p.HasCompliance(standard) {
			matched++
		}
	}
	return float64(matched) / float64(len(req.ComplianceStandards))
}

// compatibilityScore applies keyword heuristics over the requirement
// environment plus maturity adjustments.
func compatibilityScore(p *algorithms.AlgorithmProfile, req *algorithms.Requirements) float64 {
	score := 0.7

	if req != nil {
		for _, env := range req.Environment {
			keyword := strings.ToLower(env)
			switch {
			case strings.Contains(keyword, "legacy"):
				if !p.QuantumResistant {
					score += 0.2
				}
				if p.Maturity == algorithms.MaturityExperimental {
					score -= 0.2
				}
			case strings.Contains(keyword, "nist"), strings.Contains(keyword, "fips"):
				for _, tag := range p.Compliance {
					lower := strings.ToLower(tag)
					if strings.Contains(lower, "nist") || strings.Contains(lower, "fips") {
						score += 0.2
						break
					}
				}
			}
		}
	}

	if p.Maturity == algorithms.MaturityStandardized {
		score += 0.1
	}

	return clamp01(score)
}

// migrationEase is the inverse of migration complexity, so that a higher
// value means an easier migration.
func migrationEase(p *algorithms.AlgorithmProfile, req *algorithms.Requirements) float64 {
	score := 0.8

	switch p.Maturity {
	case algorithms.MaturityExperimental, algorithms.MaturityDraft:
		score -= 0.2
	}

	if p.MaxKeySize() > 3000 {
		score -= 0.1
	}

	if req != nil && p.QuantumResistant {
		for _, env := range req.Environment {
			if strings.Contains(strings.ToLower(env), "legacy") {
				score -= 0.2
				break
			}
		}
	}

	return clamp01(score)
}

func buildReasoning(p *algorithms.AlgorithmProfile, scores algorithms.ComponentScores) []string {
	var reasons []string

	if p.QuantumResistant {
		reasons = append(reasons, fmt.Sprintf("quantum-resistant with %d-bit quantum security", p.Security.QuantumBitStrength))
	} else {
		reasons = append(reasons, "not resistant to quantum attacks")
	}

	if p.Maturity == algorithms.MaturityStandardized {
		reasons = append(reasons, "standardized specification")
	}

	if n := len(p.Security.KnownVulnerabilities); n > 0 {
		reasons = append(reasons, fmt.Sprintf("%d known vulnerability class(es)", n))
	}

	if scores.Performance >= 0.7 {
		reasons = append(reasons, "strong performance profile")
	}

	return reasons
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
