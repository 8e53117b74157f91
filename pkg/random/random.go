// Package random provides an injectable uniform random source. The
// production source draws from crypto/rand; tests supply a fixed stream
// so draws are reproducible.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// Source yields uniform values in [0, 1).
type Source interface {
	Float64() (float64, error)
}

// CryptoSource is a Source backed by crypto/rand.
type CryptoSource struct{}

// NewCryptoSource creates a cryptographically strong Source.
func NewCryptoSource() CryptoSource {
	return CryptoSource{}
}

// Float64 returns a uniform value in [0, 1) with 53 bits of precision.
func (CryptoSource) Float64() (float64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read random bytes: %w", err)
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53), nil
}
