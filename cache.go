package huffpack

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// modelCache keeps recently built models keyed by a hash of the serialized
// frequency table. Hits are confirmed against the full table.
type modelCache struct {
	lru *lru.Cache[uint64, *Model]
}

func newModelCache(size int) (*modelCache, error) {
	cache, err := lru.New[uint64, *Model](size)
	if err != nil {
		return nil, errors.Wrap(err, "model cache")
	}
	return &modelCache{lru: cache}, nil
}

func frequencyKey(ft *FrequencyTable) uint64 {
	return xxhash.Sum64(appendFrequencyTable(make([]byte, 0, ft.Unique()*freqEntrySize), ft))
}

func (mc *modelCache) getOrBuild(ft *FrequencyTable) (*Model, error) {
	key := frequencyKey(ft)
	if m, ok := mc.lru.Get(key); ok && m.Frequencies().Equal(ft) {
		return m, nil
	}
	m, err := NewModel(ft)
	if err != nil {
		return nil, err
	}
	mc.lru.Add(key, m)
	return m, nil
}

func (mc *modelCache) len() int {
	return mc.lru.Len()
}
