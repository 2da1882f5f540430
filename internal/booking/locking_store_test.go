package booking_test

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/storage"
	"estatehub/backend/internal/storage/storagetest"
	"fmt"
	"sync"
)

// lockingStore holds bookings in a map and lets one transaction in at a
// time, like a row lock. afterRead fires once after the first locked read.
type lockingStore struct {
	*storagetest.MockStorage

	rowLock   sync.Mutex
	mu        sync.Mutex
	bookings  map[string]models.Booking
	property  *models.Property
	afterRead func()
}

func newLockingStore(p *models.Property, bookings ...models.Booking) *lockingStore {
	st := &lockingStore{
		MockStorage: new(storagetest.MockStorage),
		bookings:    map[string]models.Booking{},
		property:    p,
	}
	for _, b := range bookings {
		st.bookings[b.ID] = b
	}
	return st
}

func (s *lockingStore) WithTx(_ context.Context, fn func(tx storage.Storage) error) error {
	s.rowLock.Lock()
	defer s.rowLock.Unlock()
	return fn(s)
}

func (s *lockingStore) GetBookingForUpdate(_ context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	b, ok := s.bookings[id]
	hook := s.afterRead
	s.afterRead = nil
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: booking not found", apperr.ErrNotFound)
	}
	if hook != nil {
		hook()
	}
	return &b, nil
}

func (s *lockingStore) GetPropertyByID(_ context.Context, id string) (*models.Property, error) {
	if s.property == nil || s.property.ID != id {
		return nil, fmt.Errorf("%w: property not found", apperr.ErrNotFound)
	}
	p := *s.property
	return &p, nil
}

func (s *lockingStore) UpdateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = *b
	return nil
}

func (s *lockingStore) get(id string) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id]
}
