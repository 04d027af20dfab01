package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/threats"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// detectionProbability is the per-invocation chance that the simulated
// detector reports a threat.
const detectionProbability = 0.3

// threatCandidate is one fixed entry of the simulated detection corpus.
type threatCandidate struct {
	Type               string
	Source             string
	Title              string
	Description        string
	AffectedAlgorithms []string
	Mitigations        []string
}

var threatCandidates = []threatCandidate{
	{
		Type:               "quantum_advance",
		Source:             "research-feed",
		Title:              "Logical qubit count milestone reported",
		Description:        "A research group reported a significant increase in stable logical qubits, shortening the expected timeline for cryptographically relevant quantum computers.",
		AffectedAlgorithms: []string{"RSA-2048", "RSA-4096", "ECDSA-P256"},
		Mitigations:        []string{"Accelerate migration to NIST PQC algorithms", "Shorten rotation intervals for classical keys"},
	},
	{
		Type:               "cryptanalysis",
		Source:             "academic-publication",
		Title:              "Improved lattice reduction attack published",
		Description:        "A new lattice reduction technique reduces the effective security margin of small-parameter lattice schemes.",
		AffectedAlgorithms: []string{"FALCON"},
		Mitigations:        []string{"Prefer larger parameter sets", "Review signature verification policies"},
	},
	{
		Type:               "harvest_now_decrypt_later",
		Source:             "threat-intel-partner",
		Title:              "Bulk ciphertext harvesting campaign observed",
		Description:        "Traffic captures consistent with harvest-now-decrypt-later collection were observed against financial sector endpoints.",
		AffectedAlgorithms: []string{"RSA-2048", "ECDSA-P256"},
		Mitigations:        []string{"Enable hybrid key exchange", "Rotate long-lived encryption keys"},
	},
	{
		Type:               "implementation_flaw",
		Source:             "cve-feed",
		Title:              "Side-channel leak in constant-time sampler",
		Description:        "A timing side channel was identified in a widely used discrete Gaussian sampler implementation.",
		AffectedAlgorithms: []string{"FALCON", "CRYSTALS-Dilithium"},
		Mitigations:        []string{"Update affected library versions", "Re-issue signatures created with vulnerable versions"},
	},
	{
		Type:               "protocol_downgrade",
		Source:             "honeypot-network",
		Title:              "Active downgrade attempts against hybrid handshakes",
		Description:        "Honeypots recorded active attempts to strip post-quantum key shares from hybrid TLS handshakes.",
		AffectedAlgorithms: []string{"CRYSTALS-Kyber"},
		Mitigations:        []string{"Enforce strict negotiation policies", "Alert on downgrade patterns"},
	},
}

// randomizedDetector implements threats.Detector by sampling the fixed
// candidate list. Severity and confidence are synthesized per detection.
type randomizedDetector struct {
	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
	logger logger.Logger
}

// NewRandomizedThreatDetector creates a detector seeded with the given value.
// Tests pass a fixed seed for deterministic detection sequences.
func NewRandomizedThreatDetector(seed int64, logger logger.Logger) threats.Detector {
	return &randomizedDetector{
		rng:    rand.New(rand.NewSource(seed)),
		now:    time.Now,
		logger: logger,
	}
}

// Detect returns a synthesized threat with ~30% probability, nil otherwise.
func (d *randomizedDetector) Detect(_ context.Context) (*threats.ThreatIntelligence, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rng.Float64() >= detectionProbability {
		return nil, nil
	}

	candidate := threatCandidates[d.rng.Intn(len(threatCandidates))]
	now := d.now()

	threat := &threats.ThreatIntelligence{
		ID:                  uuid.New().String(),
		Type:                candidate.Type,
		Severity:            threats.SeverityMin + d.rng.Intn(threats.SeverityMax),
		Confidence:          0.5 + d.rng.Float64()*0.5,
		Source:              candidate.Source,
		Title:               candidate.Title,
		Description:         candidate.Description,
		AffectedAlgorithms:  candidate.AffectedAlgorithms,
		PredictedImpactDate: now.AddDate(0, 0, 30+d.rng.Intn(365)),
		Mitigations:         candidate.Mitigations,
		Active:              true,
		CreatedAt:           now,
	}

	d.logger.Info("Detected simulated threat: ", threat.Title, " (severity ", threat.Severity, ")")
	return threat, nil
}
