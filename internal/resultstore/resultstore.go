// Package resultstore persists scoring runs and their per-product results.
package resultstore

import (
	"sync"

	"github.com/AgitatedBuddha/protein-analyser/internal/contract"
)

// ScoreStoreManager manages the results ScoreStore instance.
type ScoreStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	results      contract.ScoreStore
}

var _ contract.StoreManager = &ScoreStoreManager{} // Compile-time check

// GetScoreStore returns the results ScoreStore.
func (mgr *ScoreStoreManager) GetScoreStore() contract.ScoreStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.results
}
