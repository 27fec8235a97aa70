package repository

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryRepository is a mutex-guarded in-memory implementation used by unit
// tests and store-less dev runs. Documents are deep-copied on both read and
// write so callers can't mutate stored state through shared references.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]map[string]interface{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]map[string]interface{})}
}

func (r *MemoryRepository) Get(ctx context.Context, section string) (map[string]interface{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.store[section]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(doc)
}

func (r *MemoryRepository) Set(ctx context.Context, section string, doc map[string]interface{}) error {
	cp, err := deepCopy(doc)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[section] = cp
	return nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.store)), nil
}

func deepCopy(doc map[string]interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var cp map[string]interface{}
	if err := json.Unmarshal(b, &cp); err != nil {
		return nil, err
	}
	return cp, nil
}
