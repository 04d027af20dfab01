package app

import (
	"context"
	"fmt"
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
)

// inMemoryCatalog implements the algorithms.Catalog interface over the seeded
// profile table. Profiles are immutable after construction, so lookups need
// no synchronization.
type inMemoryCatalog struct {
	profiles []*algorithms.AlgorithmProfile
	byID     map[string]*algorithms.AlgorithmProfile
	byName   map[string]*algorithms.AlgorithmProfile
	logger   logger.Logger
}

// NewAlgorithmCatalog creates a catalog populated with the built-in algorithm
// profiles.
func NewAlgorithmCatalog(logger logger.Logger) (algorithms.Catalog, error) {
	return newCatalogWithProfiles(seedProfiles(), logger)
}

func newCatalogWithProfiles(profiles []*algorithms.AlgorithmProfile, logger logger.Logger) (algorithms.Catalog, error) {
	c := &inMemoryCatalog{
		profiles: profiles,
		byID:     make(map[string]*algorithms.AlgorithmProfile, len(profiles)),
		byName:   make(map[string]*algorithms.AlgorithmProfile, len(profiles)),
		logger:   logger,
	}
	for _, p := range profiles {
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate algorithm profile id: %s", p.ID)
		}
		c.byID[p.ID] = p
		c.byName[p.Name] = p
	}
	return c, nil
}

func (c *inMemoryCatalog) List(_ context.Context) []*algorithms.AlgorithmProfile {
	out := make([]*algorithms.AlgorithmProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

func (c *inMemoryCatalog) GetByID(_ context.Context, id string) (*algorithms.AlgorithmProfile, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", algorithms.ErrAlgorithmNotFound, id)
	}
	return p, nil
}

func (c *inMemoryCatalog) GetByName(_ context.Context, name string) (*algorithms.AlgorithmProfile, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", algorithms.ErrAlgorithmNotFound, name)
	}
	return p, nil
}

func (c *inMemoryCatalog) ListByType(_ context.Context, t algorithms.AlgorithmType) []*algorithms.AlgorithmProfile {
	var out []*algorithms.AlgorithmProfile
	for _, p := range c.profiles {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// seedProfiles returns the built-in algorithm reference data. Metrics are
// representative benchmark figures, not live measurements.
func seedProfiles() []*algorithms.AlgorithmProfile {
	reviewed := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	staleReview := time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC)

	return []*algorithms.AlgorithmProfile{
		{
			ID:               "crystals-kyber",
			Name:             "CRYSTALS-Kyber",
			Type:             algorithms.TypeAsymmetric,
			QuantumResistant: true,
			KeySizes:         []uint32{512, 768, 1024},
			Performance: algorithms.PerformanceMetrics{
				EncryptionSpeedMBps: 95,
				KeyGenerationMs:     0.05,
				MemoryKB:            640,
				CPUPercent:          12,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   256,
				ClassicalBitStrength: 256,
				LastReviewed:         reviewed,
				RecommendedUntil:     reviewed.AddDate(10, 0, 0),
			},
			Compliance: []string{"NIST-PQC", "FIPS-203"},
			Maturity:   algorithms.MaturityStandardized,
		},
		{
			ID:               "crystals-dilithium",
			Name:             "CRYSTALS-Dilithium",
			Type:             algorithms.TypeSignature,
			QuantumResistant: true,
			KeySizes:         []uint32{44, 65, 87},
			Performance: algorithms.PerformanceMetrics{
				EncryptionSpeedMBps: 0,
				KeyGenerationMs:     0.08,
				SignMs:              0.2,
				VerifyMs:            0.07,
				MemoryKB:            1024,
				CPUPercent:          15,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   256,
				ClassicalBitStrength: 256,
				LastReviewed:         reviewed,
				RecommendedUntil:     reviewed.AddDate(10, 0, 0),
			},
			Compliance: []string{"NIST-PQC", "FIPS-204"},
			Maturity:   algorithms.MaturityStandardized,
		},
		{
			ID:               "falcon",
			Name:             "FALCON",
			Type:             algorithms.TypeSignature,
			QuantumResistant: true,
			KeySizes:         []uint32{512, 1024},
			Performance: algorithms.PerformanceMetrics{
				KeyGenerationMs: 8.5,
				SignMs:          0.35,
				VerifyMs:        0.05,
				MemoryKB:        512,
				CPUPercent:      18,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   192,
				ClassicalBitStrength: 256,
				LastReviewed:         reviewed,
				RecommendedUntil:     reviewed.AddDate(8, 0, 0),
			},
			Compliance: []string{"NIST-PQC"},
			Maturity:   algorithms.MaturityDraft,
		},
		{
			ID:               "sphincs-plus",
			Name:             "SPHINCS+",
			Type:             algorithms.TypeSignature,
			QuantumResistant: true,
			KeySizes:         []uint32{128, 192, 256},
			Performance: algorithms.PerformanceMetrics{
				KeyGenerationMs: 2.1,
				SignMs:          14.0,
				VerifyMs:        0.9,
				MemoryKB:        256,
				CPUPercent:      35,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   256,
				ClassicalBitStrength: 256,
				LastReviewed:         reviewed,
				RecommendedUntil:     reviewed.AddDate(12, 0, 0),
			},
			Compliance: []string{"NIST-PQC", "FIPS-205"},
			Maturity:   algorithms.MaturityStandardized,
		},
		{
			ID:               "rsa-2048",
			Name:             "RSA-2048",
			Type:             algorithms.TypeAsymmetric,
			QuantumResistant: false,
			KeySizes:         []uint32{2048},
			Performance: algorithms.PerformanceMetrics{
				EncryptionSpeedMBps: 45,
				KeyGenerationMs:     120,
				SignMs:              1.8,
				VerifyMs:            0.06,
				MemoryKB:            256,
				CPUPercent:          20,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   0,
				ClassicalBitStrength: 112,
				KnownVulnerabilities: []string{"shor-algorithm"},
				LastReviewed:         staleReview,
				RecommendedUntil:     time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
			Compliance: []string{"FIPS-186", "PCI-DSS"},
			Maturity:   algorithms.MaturityStandardized,
		},
		{
			ID:               "rsa-4096",
			Name:             "RSA-4096",
			Type:             algorithms.TypeAsymmetric,
			QuantumResistant: false,
			KeySizes:         []uint32{4096},
			Performance: algorithms.PerformanceMetrics{
				EncryptionSpeedMBps: 12,
				KeyGenerationMs:     850,
				SignMs:              8.5,
				VerifyMs:            0.12,
				MemoryKB:            512,
				CPUPercent:          30,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   0,
				ClassicalBitStrength: 140,
				KnownVulnerabilities: []string{"shor-algorithm"},
				LastReviewed:         staleReview,
				RecommendedUntil:     time.Date(2032, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
			Compliance: []string{"FIPS-186", "PCI-DSS"},
			Maturity:   algorithms.MaturityStandardized,
		},
		{
			ID:               "ecdsa-p256",
			Name:             "ECDSA-P256",
			Type:             algorithms.TypeSignature,
			QuantumResistant: false,
			KeySizes:         []uint32{256},
			Performance: algorithms.PerformanceMetrics{
				KeyGenerationMs: 0.15,
				SignMs:          0.25,
				VerifyMs:        0.8,
				MemoryKB:        64,
				CPUPercent:      8,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   0,
				ClassicalBitStrength: 128,
				KnownVulnerabilities: []string{"shor-algorithm"},
				LastReviewed:         staleReview,
				RecommendedUntil:     time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
			},
			Compliance: []string{"FIPS-186", "NIST-SP800-186"},
			Maturity:   algorithms.MaturityStandardized,
		},
		{
			ID:               "aes-256-gcm",
			Name:             "AES-256-GCM",
			Type:             algorithms.TypeSymmetric,
			QuantumResistant: true,
			KeySizes:         []uint32{128, 192, 256},
			Performance: algorithms.PerformanceMetrics{
				EncryptionSpeedMBps: 1800,
				KeyGenerationMs:     0.001,
				MemoryKB:            16,
				CPUPercent:          5,
			},
			Security: algorithms.SecurityMetrics{
				QuantumBitStrength:   128,
				ClassicalBitStrength: 256,
				LastReviewed:         reviewed,
				RecommendedUntil:     reviewed.AddDate(15, 0, 0),
			},
			Compliance: []string{"FIPS-197", "PCI-DSS", "HIPAA"},
			Maturity:   algorithms.MaturityStandardized,
		},
	}
}
