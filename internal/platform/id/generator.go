package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Generator creates opaque IDs for audit records.
type Generator interface {
	NewID() (string, error)
}

// TimeRandomGenerator issues ids of the form 20260829T120000Z-a1b2c3d4:
// a UTC second prefix so plain-text audit logs sort by time, plus random
// bytes for uniqueness.
type TimeRandomGenerator struct {
	now func() time.Time
}

func NewTimeRandomGenerator() *TimeRandomGenerator {
	return &TimeRandomGenerator{now: time.Now}
}

func (g *TimeRandomGenerator) NewID() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	stamp := g.now().UTC().Format("20060102T150405Z")
	return stamp + "-" + hex.EncodeToString(buf), nil
}
