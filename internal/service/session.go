package service

import (
	"sync"
	"time"

	"github.com/amterp/swatch/internal/clipboard"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/generator"
	"github.com/amterp/swatch/internal/id"
	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
	"github.com/sirupsen/logrus"
)

// DefaultCopyFeedback is how long "Copied!" stays on when not configured.
const DefaultCopyFeedback = time.Second

// StateSubscriber receives the session state after every change.
type StateSubscriber interface {
	OnStateChange(state model.State)
}

// SessionOptions configures a Session. Zero values pick defaults.
type SessionOptions struct {
	CopyFeedback time.Duration
	Generate     func() model.Palette
}

// Session owns one user's palette, favorites and copied flag.
//
// State changes go through the pure functions in state.go. Session adds the
// side effects: it saves favorites after every favorites operation, runs the
// timer that clears the copied flag, and notifies subscribers.
//
// Methods are safe for concurrent use; serve handles requests and timer
// callbacks on different goroutines.
type Session struct {
	id           string
	store        store.FavoritesStore
	clipboard    clipboard.Clipboard
	generate     func() model.Palette
	copyFeedback time.Duration
	log          *logrus.Entry

	mu        sync.Mutex
	state     model.State
	loaded    bool
	copyTimer *time.Timer
	copyGen   uint64 // bumped whenever a pending clear becomes stale
	version   uint64 // bumped on every change, under mu

	subMu       sync.RWMutex
	subscribers []StateSubscriber

	// notifyMu orders delivery; delivered is the newest version sent.
	notifyMu  sync.Mutex
	delivered uint64
}

// NewSession creates a session showing a fresh palette and no favorites.
// Call Load to read persisted favorites.
func NewSession(favorites store.FavoritesStore, cb clipboard.Clipboard, opts SessionOptions) *Session {
	if cb == nil {
		cb = clipboard.Noop{}
	}
	if opts.Generate == nil {
		opts.Generate = generator.Generate
	}
	if opts.CopyFeedback <= 0 {
		opts.CopyFeedback = DefaultCopyFeedback
	}

	sessionID := id.Generate()
	return &Session{
		id:           sessionID,
		store:        favorites,
		clipboard:    cb,
		generate:     opts.Generate,
		copyFeedback: opts.CopyFeedback,
		log:          logging.Component("session").WithField("session", sessionID),
		state: model.State{
			Palette:   opts.Generate(),
			Favorites: model.FavoritesList{},
		},
	}
}

// ID returns the session's unique ID.
func (s *Session) ID() string {
	return s.id
}

// State returns a snapshot of the current state.
func (s *Session) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loaded reports whether favorites have been read from storage.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Load reads favorites from storage. Storage problems read as no favorites.
func (s *Session) Load() model.State {
	s.mu.Lock()
	s.state = WithFavorites(s.state, s.store.Load())
	s.loaded = true
	state, version := s.snapshotLocked()
	s.mu.Unlock()

	s.log.WithField("favorites", len(state.Favorites)).Debug("Favorites loaded")
	s.notify(state, version)
	return state
}

// Reload re-reads favorites after the storage changed underneath us.
// Subscribers are only notified if the list actually differs.
func (s *Session) Reload() model.State {
	s.mu.Lock()
	list := s.store.Load()
	if favoritesEqual(list, s.state.Favorites) {
		state := s.state
		s.mu.Unlock()
		return state
	}
	s.state = WithFavorites(s.state, list)
	state, version := s.snapshotLocked()
	s.mu.Unlock()

	s.log.WithField("favorites", len(state.Favorites)).Info("Favorites changed on disk")
	s.notify(state, version)
	return state
}

// Generate shows a new random palette.
func (s *Session) Generate() model.State {
	s.mu.Lock()
	s.stopCopyTimerLocked()
	s.state = Regenerate(s.state, s.generate())
	state, version := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state, version)
	return state
}

// SaveCurrent adds the shown palette to favorites and persists the list.
func (s *Session) SaveCurrent() model.State {
	return s.mutateFavorites(SaveCurrent)
}

// SavePalette adds p to favorites and persists the list.
func (s *Session) SavePalette(p model.Palette) (model.State, error) {
	if !p.Valid() {
		return s.State(), kanerr.InvalidField("palette", "every color must be #RRGGBB")
	}
	return s.mutateFavorites(func(st model.State) model.State {
		return SavePalette(st, p)
	}), nil
}

// RemoveFavorite removes the favorite at index and persists the list.
// An out-of-range index leaves the list as it was.
func (s *Session) RemoveFavorite(index int) model.State {
	return s.mutateFavorites(func(st model.State) model.State {
		return RemoveFavorite(st, index)
	})
}

// Copy puts c on the clipboard and shows copied feedback until the
// feedback interval passes or another copy replaces it.
// Clipboard failures are logged and otherwise ignored.
func (s *Session) Copy(c model.Color) (model.State, error) {
	if !c.Valid() {
		return s.State(), kanerr.InvalidColor(string(c))
	}

	if err := s.clipboard.Copy(c); err != nil {
		s.log.WithError(err).WithField("color", c).Debug("Clipboard write failed")
	}

	s.mu.Lock()
	s.stopCopyTimerLocked()
	gen := s.copyGen
	s.copyTimer = time.AfterFunc(s.copyFeedback, func() {
		s.expireCopied(gen)
	})
	s.state = MarkCopied(s.state, c)
	state, version := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state, version)
	return state, nil
}

// Subscribe adds a subscriber to receive state changes.
func (s *Session) Subscribe(sub StateSubscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, sub)
}

// Unsubscribe removes a subscriber.
func (s *Session) Unsubscribe(sub StateSubscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for i, existing := range s.subscribers {
		if existing == sub {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			return
		}
	}
}

// Close cancels the pending copied-feedback timer.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCopyTimerLocked()
}

func (s *Session) mutateFavorites(update func(model.State) model.State) model.State {
	s.mu.Lock()
	s.state = update(s.state)
	state, version := s.snapshotLocked()
	// Fire-and-forget: the list in memory stays authoritative for this session.
	if err := s.store.Save(state.Favorites); err != nil {
		s.log.WithError(err).Warn("Failed to save favorites")
	}
	s.mu.Unlock()

	s.notify(state, version)
	return state
}

func (s *Session) expireCopied(gen uint64) {
	s.mu.Lock()
	if gen != s.copyGen {
		// Superseded by a newer copy or a new palette
		s.mu.Unlock()
		return
	}
	s.copyTimer = nil
	s.state = ClearCopied(s.state)
	state, version := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state, version)
}

// stopCopyTimerLocked cancels any pending clear. Caller holds s.mu.
func (s *Session) stopCopyTimerLocked() {
	s.copyGen++
	if s.copyTimer != nil {
		s.copyTimer.Stop()
		s.copyTimer = nil
	}
}

// snapshotLocked stamps the current state with a new version. Caller holds s.mu.
func (s *Session) snapshotLocked() (model.State, uint64) {
	s.version++
	return s.state, s.version
}

// notify delivers state unless a newer version already went out, so the last
// state every subscriber sees is the session's latest. Subscribers must not
// call back into the session.
func (s *Session) notify(state model.State, version uint64) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if version <= s.delivered {
		return
	}
	s.delivered = version

	s.subMu.RLock()
	subs := make([]StateSubscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.OnStateChange(state)
	}
}

// SubscriberCount returns the number of subscribers.
func (s *Session) SubscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subscribers)
}
