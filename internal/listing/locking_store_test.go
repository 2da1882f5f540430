package listing_test

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/storage"
	"estatehub/backend/internal/storage/storagetest"
	"fmt"
	"sync"
)

// lockingStore keeps properties in a map and serializes transactions the
// way a row lock would. afterRead runs once, after the first locked read.
type lockingStore struct {
	*storagetest.MockStorage

	rowLock    sync.Mutex
	mu         sync.Mutex
	properties map[string]models.Property
	afterRead  func()
}

func newLockingStore(props ...models.Property) *lockingStore {
	st := &lockingStore{
		MockStorage: new(storagetest.MockStorage),
		properties:  map[string]models.Property{},
	}
	for _, p := range props {
		st.properties[p.ID] = p
	}
	return st
}

func (s *lockingStore) WithTx(_ context.Context, fn func(tx storage.Storage) error) error {
	s.rowLock.Lock()
	defer s.rowLock.Unlock()
	return fn(s)
}

func (s *lockingStore) GetPropertyForUpdate(_ context.Context, id string) (*models.Property, error) {
	s.mu.Lock()
	p, ok := s.properties[id]
	hook := s.afterRead
	s.afterRead = nil
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: property not found", apperr.ErrNotFound)
	}
	if hook != nil {
		hook()
	}
	return &p, nil
}

func (s *lockingStore) UpdateProperty(_ context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = *p
	return nil
}

func (s *lockingStore) get(id string) models.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.properties[id]
}
