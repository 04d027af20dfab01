// Package algorithms contains the cryptographic algorithm catalog domain:
// immutable algorithm profiles with performance/security metadata, scoring
// requirements and the contracts for catalog lookup and algorithm selection.
package algorithms
