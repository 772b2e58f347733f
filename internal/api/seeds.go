package api

import (
	"sync"

	"github.com/tashanwin/club-settle-go/internal/engine"
)

// SeedChain rotates server seeds for provably fair rounds. Only the hash of
// the active seed is visible; the raw seed is revealed when the chain
// rotates, at which point every round it settled becomes replayable.
type SeedChain struct {
	mu         sync.Mutex
	serverSeed string
	nonce      uint64
}

// NewSeedChain starts a chain with a fresh server seed.
func NewSeedChain() *SeedChain {
	return &SeedChain{serverSeed: engine.NewServerSeed()}
}

// Next claims the next nonce and returns the round's seeded source together
// with the commitment that goes into the audit record.
func (c *SeedChain) Next(clientSeed string) (src engine.Source, seedHash string, nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nonce++
	return engine.NewSeedSource(c.serverSeed, clientSeed, c.nonce), engine.SeedHash(c.serverSeed), c.nonce
}

// Commitment returns the active seed hash and the last claimed nonce.
func (c *SeedChain) Commitment() (seedHash string, nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return engine.SeedHash(c.serverSeed), c.nonce
}

// Rotate reveals the active seed and replaces it with a fresh one. The
// nonce restarts so replays index cleanly into the new chain.
func (c *SeedChain) Rotate() (revealed, nextHash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	revealed = c.serverSeed
	c.serverSeed = engine.NewServerSeed()
	c.nonce = 0
	return revealed, engine.SeedHash(c.serverSeed)
}
