package engine

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
)

// Source yields uniform randomness for outcome generation. Implementations
// must be safe to use for a single round at a time; they are not required to
// be safe for concurrent use.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// CryptoSource draws from crypto/rand. This is the production source: every
// round gets independent, non-replayable randomness.
type CryptoSource struct{}

func (CryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Sprintf("engine: crypto/rand failed: %v", err))
	}
	// Top 53 bits so the value is exactly representable.
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

func (CryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("engine: Intn called with non-positive n")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("engine: crypto/rand failed: %v", err))
	}
	return int(v.Int64())
}

// SeedSource derives its stream from a provably fair seed pair. The float
// sequence is identical to Floats(serverSeed, clientSeed, nonce, 0, n), so a
// round settled with a SeedSource can be replayed by anyone holding the
// revealed seeds.
type SeedSource struct {
	stream *byteStream
}

// NewSeedSource creates a source for one (seeds, nonce) round.
func NewSeedSource(serverSeed, clientSeed string, nonce uint64) *SeedSource {
	return &SeedSource{stream: newByteStream(serverSeed, clientSeed, nonce, 0)}
}

func (s *SeedSource) Float64() float64 {
	return s.stream.nextFloat()
}

func (s *SeedSource) Intn(n int) int {
	if n <= 0 {
		panic("engine: Intn called with non-positive n")
	}
	idx := int(s.stream.nextFloat() * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return idx
}
