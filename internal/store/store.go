// Package store owns the canonical todo list and keeps the session copy in sync.
//
// The list is read from session storage once, when the store opens, and
// written back as a whole after every change.
package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/session"
)

const (
	// minPrefix is the shortest id prefix Resolve accepts.
	minPrefix = 4
	// idAttempts bounds how often Add asks for a fresh id after a collision.
	idAttempts = 8
)

type Store struct {
	storage session.Storage
	items   model.List

	newID  func() string
	now    func() time.Time
	logger *log.Logger
}

type Option func(*Store)

// WithIDFunc replaces the uuid generator.
func WithIDFunc(f func() string) Option { return func(s *Store) { s.newID = f } }

func WithClock(f func() time.Time) Option { return func(s *Store) { s.now = f } }

func WithLogger(l *log.Logger) Option { return func(s *Store) { s.logger = l } }

// Open restores the last snapshot from storage, or starts empty when there is
// none or it cannot be read. The starting list is written back immediately.
func Open(storage session.Storage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("store: nil session storage")
	}
	s := &Store{
		storage: storage,
		newID:   uuid.NewString,
		now:     time.Now,
		logger:  logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}

	s.items = s.load()
	if err := s.persist(); err != nil {
		s.logger.Warn("initial snapshot not saved", "err", err)
	}
	return s, nil
}

func (s *Store) load() model.List {
	raw, ok, err := s.storage.Get(Key)
	if err != nil {
		s.logger.Debug("session unreadable, starting empty", "err", err)
		return model.List{}
	}
	if !ok {
		s.logger.Debug("no snapshot in session")
		return model.List{}
	}
	items, err := Decode([]byte(raw))
	if err != nil {
		s.logger.Debug("malformed snapshot, starting empty", "err", err)
		return model.List{}
	}
	s.logger.Debug("snapshot restored", "items", len(items))
	return items
}

func (s *Store) persist() error {
	b, err := Encode(s.items)
	if err != nil {
		return err
	}
	if err := s.storage.Set(Key, string(b)); err != nil {
		s.logger.Error("persist snapshot", "err", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.logger.Debug("snapshot saved", "items", len(s.items))
	return nil
}

// commit swaps in next and writes it out. The in-memory list moves on even
// when the write fails.
func (s *Store) commit(next model.List) error {
	s.items = next
	return s.persist()
}

// Items returns a copy of the current list.
func (s *Store) Items() model.List {
	return s.items.Clone()
}

func (s *Store) Len() int { return len(s.items) }

// Add appends a new open item titled title. An empty title is ignored and
// reported with added == false. Invalid UTF-8 is replaced with U+FFFD so the
// stored title is exactly what the snapshot holds.
func (s *Store) Add(title string) (it model.Item, added bool, err error) {
	if title == "" {
		return model.Item{}, false, nil
	}
	id, err := s.freshID()
	if err != nil {
		return model.Item{}, false, err
	}
	it = model.NewItem(id, strings.ToValidUTF8(title, "\uFFFD"), s.now())
	s.logger.Info("add", "id", it.ID)
	return it, true, s.commit(s.items.Add(it))
}

func (s *Store) freshID() (string, error) {
	for i := 0; i < idAttempts; i++ {
		if id := s.newID(); id != "" && !s.items.Has(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("generate id: no unused id after %d attempts", idAttempts)
}

// Remove deletes the item with the given id; unknown ids are a no-op.
func (s *Store) Remove(id string) (bool, error) {
	if !s.items.Has(id) {
		return false, nil
	}
	s.logger.Info("remove", "id", id)
	return true, s.commit(s.items.Remove(id))
}

// Toggle flips the completed flag of the item with the given id; unknown ids are a no-op.
func (s *Store) Toggle(id string) (bool, error) {
	if !s.items.Has(id) {
		return false, nil
	}
	next := s.items.Toggle(id)
	it, _ := next.Find(id)
	s.logger.Info("toggle", "id", id, "state", it.State())
	return true, s.commit(next)
}

// Resolve finds an item from user input: an exact id, a 1-based position in
// display order, or an unambiguous id prefix of at least four characters.
func (s *Store) Resolve(ref string) (model.Item, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Item{}, false
	}
	if it, ok := s.items.Find(ref); ok {
		return it, true
	}
	// Out-of-range numbers may still be an all-digit id prefix.
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.items) {
		return s.items[n-1], true
	}
	if len(ref) < minPrefix {
		return model.Item{}, false
	}
	var (
		match model.Item
		found int
	)
	for _, it := range s.items {
		if strings.HasPrefix(it.ID, ref) {
			match = it
			found++
		}
	}
	return match, found == 1
}
