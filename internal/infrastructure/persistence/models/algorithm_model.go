package models

import (
	"time"

	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/domain/algorithms"
)

// AlgorithmModel mirrors the in-memory algorithm catalog into the
// cryptographic_algorithms table so dashboard queries can join against it.
type AlgorithmModel struct {
	ID                   string    `gorm:"primaryKey;type:varchar(64)"`
	Name                 string    `gorm:"not null;uniqueIndex;type:varchar(64)"`
	Type                 string    `gorm:"not null;type:varchar(20)"`
	QuantumResistant     bool      `gorm:"not null"`
	KeySizes             []uint32  `gorm:"serializer:json"`
	EncryptionSpeedMBps  float64   `gorm:"not null"`
	KeyGenerationMs      float64   `gorm:"not null"`
	SignMs               float64   `gorm:"not null"`
	VerifyMs             float64   `gorm:"not null"`
	MemoryKB             int       `gorm:"not null"`
	CPUPercent           float64   `gorm:"not null"`
	QuantumBitStrength   int       `gorm:"not null"`
	ClassicalBitStrength int       `gorm:"not null"`
	KnownVulnerabilities []string  `gorm:"serializer:json"`
	LastReviewed         time.Time `gorm:""`
	RecommendedUntil     time.Time `gorm:""`
	Compliance           []string  `gorm:"serializer:json"`
	Maturity             string    `gorm:"not null;type:varchar(20)"`
}

// TableName specifies the table name for GORM
func (AlgorithmModel) TableName() string {
	return "cryptographic_algorithms"
}

// ToDomain converts GORM model to domain entity
func (m *AlgorithmModel) ToDomain() *algorithms.AlgorithmProfile {
	return &algorithms.AlgorithmProfile{
		ID:               m.ID,
		Name:             m.Name,
		Type:             algorithms.AlgorithmType(m.Type),
		QuantumResistant: m.QuantumResistant,
		KeySizes:         m.KeySizes,
		Performance: algorithms.PerformanceMetrics{
			EncryptionSpeedMBps: m.EncryptionSpeedMBps,
			KeyGenerationMs:     m.KeyGenerationMs,
			SignMs:              m.SignMs,
			VerifyMs:            m.VerifyMs,
			MemoryKB:            m.MemoryKB,
			CPUPercent:          m.CPUPercent,
		},
		Security: algorithms.SecurityMetrics{
			QuantumBitStrength:   m.QuantumBitStrength,
			ClassicalBitStrength: m.ClassicalBitStrength,
			KnownVulnerabilities: m.KnownVulnerabilities,
			LastReviewed:         m.LastReviewed,
			RecommendedUntil:     m.RecommendedUntil,
		},
		Compliance: m.Compliance,
		Maturity:   algorithms.Maturity(m.Maturity),
	}
}

// FromDomain converts domain entity to GORM model
func (m *AlgorithmModel) FromDomain(p *algorithms.AlgorithmProfile) {
	m.ID = p.ID
	m.Name = p.Name
	m.Type = string(p.Type)
	m.QuantumResistant = p.QuantumResistant
	m.KeySizes = p.KeySizes
	m.EncryptionSpeedMBps = p.Performance.EncryptionSpeedMBps
	m.KeyGenerationMs = p.Performance.KeyGenerationMs
	m.SignMs = p.Performance.SignMs
	m.VerifyMs = p.Performance.VerifyMs
	m.MemoryKB = p.Performance.MemoryKB
	m.CPUPercent = p.Performance.CPUPercent
	m.QuantumBitStrength = p.Security.QuantumBitStrength
	m.ClassicalBitStrength = p.Security.ClassicalBitStrength
	m.KnownVulnerabilities = p.Security.KnownVulnerabilities
	m.LastReviewed = p.Security.LastReviewed
	m.RecommendedUntil = p.Security.RecommendedUntil
	m.Compliance = p.Compliance
	m.Maturity = string(p.Maturity)
}
