// Package store owns the in-memory hotels, bookings and users collections
// and persists them as a single JSON snapshot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
)

// Data is the live dataset. It is only reachable inside Read/Write closures.
type Data struct {
	Hotels   []models.Hotel   `json:"hotels"`
	Bookings []models.Booking `json:"bookings"`
	Users    []models.User    `json:"users"`
}

// Store serialises all access to Data behind one RW mutex: readers run
// concurrently, writers run alone, and the last write wins.
type Store struct {
	mu   sync.RWMutex
	data Data

	saveMu sync.Mutex
	snap   Snapshotter
	log    *logrus.Entry
}

// New wraps an already-loaded dataset. snap may be nil for a store that is
// never persisted.
func New(data Data, snap Snapshotter) *Store {
	if data.Bookings == nil {
		data.Bookings = []models.Booking{}
	}
	return &Store{
		data: data,
		snap: snap,
		log:  logrus.WithField("component", "store"),
	}
}

// Open loads the last snapshot from snap. Any failure, including a missing
// snapshot, falls back to the built-in seed; Open itself never fails.
func Open(ctx context.Context, snap Snapshotter) *Store {
	s := New(Data{}, snap)

	data, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			s.log.Info("no snapshot found, using seed data")
		} else {
			s.log.WithError(err).Warn("failed to load snapshot, using seed data")
		}
		data = Seed()
	} else {
		s.log.WithFields(logrus.Fields{
			"backend":  snap.Name(),
			"hotels":   len(data.Hotels),
			"bookings": len(data.Bookings),
			"users":    len(data.Users),
		}).Info("snapshot loaded")
	}
	s.data = data
	return s
}

func (s *Store) load(ctx context.Context) (Data, error) {
	if s.snap == nil {
		return Data{}, ErrNoSnapshot
	}
	raw, err := s.snap.Load(ctx)
	if err != nil {
		return Data{}, err
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("decode snapshot: %w", err)
	}

	// Missing collections fall back one by one.
	if data.Hotels == nil || data.Users == nil {
		seed := Seed()
		if data.Hotels == nil {
			data.Hotels = seed.Hotels
		}
		if data.Users == nil {
			data.Users = seed.Users
		}
	}
	if data.Bookings == nil {
		data.Bookings = []models.Booking{}
	}
	return data, nil
}

// Read runs fn with shared access. fn must not retain references to the
// collections after it returns.
func (s *Store) Read(fn func(d *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

// Write runs fn with exclusive access. Multi-step mutations belong in a
// single Write so no other request observes a half-applied change.
func (s *Store) Write(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

// Encode returns the current dataset as a snapshot document.
func (s *Store) Encode() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.data, "", "  ")
}

// Save writes the whole dataset through the snapshotter, replacing the
// previous snapshot.
func (s *Store) Save(ctx context.Context) error {
	if s.snap == nil {
		return nil
	}
	// Encoding inside saveMu keeps snapshots landing in the order they were taken.
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	raw, err := s.Encode()
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.snap.Save(ctx, raw); err != nil {
		return fmt.Errorf("save snapshot to %s: %w", s.snap.Name(), err)
	}
	s.log.WithField("bytes", len(raw)).Debug("snapshot saved")
	return nil
}
