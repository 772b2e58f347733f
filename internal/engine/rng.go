package engine

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
)

// byteStream generates a deterministic byte sequence via HMAC-SHA256 over
// the (clientSeed, nonce, round) message, keyed by the server seed. Each
// 32-byte digest is consumed before the round counter advances.
type byteStream struct {
	serverSeed string
	clientSeed string
	nonce      uint64
	round      uint64
	pos        int
	buf        [32]byte
}

func newByteStream(serverSeed, clientSeed string, nonce, cursor uint64) *byteStream {
	bs := &byteStream{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
		round:      cursor / 32,
		pos:        int(cursor % 32),
	}
	bs.fill()
	return bs
}

func (bs *byteStream) next() byte {
	if bs.pos >= 32 {
		bs.round++
		bs.pos = 0
		bs.fill()
	}
	b := bs.buf[bs.pos]
	bs.pos++
	return b
}

// nextFloat consumes exactly 4 bytes and maps them into [0, 1).
func (bs *byteStream) nextFloat() float64 {
	result := 0.0
	for i := 0; i < 4; i++ {
		result += float64(bs.next()) / math.Pow(256, float64(i+1))
	}
	return result
}

func (bs *byteStream) fill() {
	h := hmac.New(sha256.New, []byte(bs.serverSeed))
	fmt.Fprintf(h, "%s:%d:%d", bs.clientSeed, bs.nonce, bs.round)
	copy(bs.buf[:], h.Sum(nil))
}

// Floats generates count floats in [0, 1) starting at the given cursor.
// The sequence is a pure function of its inputs.
func Floats(serverSeed, clientSeed string, nonce, cursor uint64, count int) []float64 {
	bs := newByteStream(serverSeed, clientSeed, nonce, cursor)
	floats := make([]float64, count)
	for i := range floats {
		floats[i] = bs.nextFloat()
	}
	return floats
}

// NewServerSeed returns a fresh 32-byte hex server seed.
func NewServerSeed() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("engine: crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// SeedHash returns the SHA-256 commitment for a server seed. Only the hash
// may be shown to a player before the seed is rotated out.
func SeedHash(serverSeed string) string {
	if serverSeed == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}
