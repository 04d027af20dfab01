// Package models contains the GORM database models for the persisted
// aggregates and their conversions to and from domain entities.
package models
