// Package keys contains the key lifecycle domain: managed key records,
// adaptive rotation schedules with their triggers, rotation history and the
// lifecycle service contracts.
package keys
