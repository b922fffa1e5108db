// Package notes keeps the date-keyed note collection and persists it as a
// single JSON document.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tempo/internal/core/calendar"
	"tempo/internal/core/model"
)

// SlotKey is the durable slot holding the collection.
const SlotKey = "notes"

// ErrEmptyText is returned by Add when the text is blank. Callers treat it as a no-op.
var ErrEmptyText = errors.New("note text is empty")

// Slot is a durable key/value cell.
// Load returns nil data and no error when the key was never written.
type Slot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Options configures a Store.
type Options struct {
	Now    func() time.Time
	Logger *zap.Logger
}

// Store is the note collection. Every mutation rewrites the whole slot.
type Store struct {
	mu        sync.Mutex
	slot      Slot
	notes     []model.Note
	lastID    int64
	now       func() time.Time
	logger    *zap.Logger
	listeners []func()
}

// Open loads the collection from slot. A missing, unreadable or malformed
// slot yields an empty collection.
func Open(ctx context.Context, slot Slot, options Options) *Store {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	store := &Store{
		slot:   slot,
		now:    options.Now,
		logger: options.Logger,
	}
	store.Reload(ctx)
	return store
}

// OnChange registers a handler called after every mutation or reload.
func (store *Store) OnChange(handler func()) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listeners = append(store.listeners, handler)
}

// Reload replaces the in-memory collection with the slot contents.
func (store *Store) Reload(ctx context.Context) {
	loaded := store.load(ctx)

	store.mu.Lock()
	store.notes = loaded
	store.lastID = 0
	for _, note := range loaded {
		if note.ID > store.lastID {
			store.lastID = note.ID
		}
	}
	store.mu.Unlock()

	store.notify()
}

// Add appends a note for date, or for today when date is empty.
// On a write failure the note stays in memory and the error is returned.
func (store *Store) Add(ctx context.Context, text, date string) (model.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Note{}, ErrEmptyText
	}

	store.mu.Lock()
	if date == "" {
		date = calendar.KeyOf(store.now())
	}
	note := model.Note{ID: store.nextIDLocked(), Date: date, Text: text}
	store.notes = append(store.notes, note)
	err := store.persistLocked(ctx)
	store.mu.Unlock()

	store.notify()
	return note, err
}

// Delete removes the note with id. It reports whether a note was removed.
func (store *Store) Delete(ctx context.Context, id int64) (bool, error) {
	store.mu.Lock()
	kept := make([]model.Note, 0, len(store.notes))
	for _, note := range store.notes {
		if note.ID != id {
			kept = append(kept, note)
		}
	}
	if len(kept) == len(store.notes) {
		store.mu.Unlock()
		return false, nil
	}
	store.notes = kept
	err := store.persistLocked(ctx)
	store.mu.Unlock()

	store.notify()
	return true, err
}

// List returns every note, most recently created first.
func (store *Store) List() []model.Note {
	store.mu.Lock()
	listed := append([]model.Note(nil), store.notes...)
	store.mu.Unlock()

	sortByRecency(listed)
	return listed
}

// ForDate returns the notes of one day, most recently created first.
func (store *Store) ForDate(key string) []model.Note {
	store.mu.Lock()
	var listed []model.Note
	for _, note := range store.notes {
		if note.Date == key {
			listed = append(listed, note)
		}
	}
	store.mu.Unlock()

	sortByRecency(listed)
	return listed
}

// HasNotes implements calendar.NoteIndex.
func (store *Store) HasNotes(key string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, note := range store.notes {
		if note.Date == key {
			return true
		}
	}
	return false
}

// Len returns the number of notes.
func (store *Store) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.notes)
}

func (store *Store) load(ctx context.Context) []model.Note {
	data, err := store.slot.Load(ctx, SlotKey)
	if err != nil {
		store.logger.Warn("load notes failed, starting empty", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var loaded []model.Note
	if err := json.Unmarshal(data, &loaded); err != nil {
		store.logger.Warn("notes slot is malformed, starting empty", zap.Error(err))
		return nil
	}
	for i := range loaded {
		if key, ok := calendar.NormalizeKey(loaded[i].Date); ok {
			loaded[i].Date = key
		}
	}
	return loaded
}

func (store *Store) persistLocked(ctx context.Context) error {
	notes := store.notes
	if notes == nil {
		notes = []model.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := store.slot.Save(ctx, SlotKey, data); err != nil {
		store.logger.Error("persist notes failed", zap.Error(err), zap.Int("notes", len(notes)))
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

func (store *Store) nextIDLocked() int64 {
	id := store.now().UnixMilli()
	if id <= store.lastID {
		id = store.lastID + 1
	}
	store.lastID = id
	return id
}

func (store *Store) notify() {
	store.mu.Lock()
	listeners := append([]func(){}, store.listeners...)
	store.mu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}

func sortByRecency(notes []model.Note) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].ID > notes[j].ID
	})
}
