package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amterp/swatch/internal/clipboard"
	kanerr "github.com/amterp/swatch/internal/errors"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/testutil"
)

var _ store.FavoritesStore = (*testFavoritesStore)(nil)

var (
	paletteA = testutil.Grays()
	paletteB = testutil.Darks()
)

// testFavoritesStore is an in-memory FavoritesStore that records saves.
type testFavoritesStore struct {
	mu      sync.Mutex
	list    model.FavoritesList
	saves   []model.FavoritesList
	saveErr error
}

func newTestFavoritesStore(initial ...model.Palette) *testFavoritesStore {
	return &testFavoritesStore{list: model.FavoritesList(initial)}
}

func (s *testFavoritesStore) Load() model.FavoritesList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Clone()
}

func (s *testFavoritesStore) Save(list model.FavoritesList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, list.Clone())
	if s.saveErr != nil {
		return s.saveErr
	}
	s.list = list.Clone()
	return nil
}

func (s *testFavoritesStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func (s *testFavoritesStore) lastSave() model.FavoritesList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves[len(s.saves)-1]
}

// recordingSubscriber collects every state it is sent.
type recordingSubscriber struct {
	mu     sync.Mutex
	states []model.State
}

func (r *recordingSubscriber) OnStateChange(state model.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *recordingSubscriber) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *recordingSubscriber) last() model.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[len(r.states)-1]
}

func newTestSession(t *testing.T, favorites *testFavoritesStore, cb clipboard.Clipboard, feedback time.Duration) *Session {
	t.Helper()
	s := NewSession(favorites, cb, SessionOptions{
		CopyFeedback: feedback,
		Generate:     testutil.Sequence(paletteA, paletteB),
	})
	t.Cleanup(s.Close)
	return s
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// ============================================================================
// Loading
// ============================================================================

func TestSession_InitialState(t *testing.T) {
	favorites := newTestFavoritesStore(paletteB)
	s := newTestSession(t, favorites, nil, 0)

	state := s.State()
	if state.Palette != paletteA {
		t.Errorf("Palette = %v, want generated paletteA", state.Palette)
	}
	if len(state.Favorites) != 0 {
		t.Errorf("Favorites should be empty before Load, got %v", state.Favorites)
	}
	if s.Loaded() {
		t.Error("Session should not be loaded yet")
	}
	if s.ID() == "" {
		t.Error("Expected session ID")
	}
}

func TestSession_Load(t *testing.T) {
	favorites := newTestFavoritesStore(paletteB)
	s := newTestSession(t, favorites, nil, 0)

	state := s.Load()

	if !s.Loaded() {
		t.Error("Expected session to be loaded")
	}
	if len(state.Favorites) != 1 || state.Favorites[0] != paletteB {
		t.Errorf("Favorites = %v, want [paletteB]", state.Favorites)
	}
	if favorites.saveCount() != 0 {
		t.Errorf("Load should not save, got %d saves", favorites.saveCount())
	}
}

func TestSession_Reload_NotifiesOnlyOnChange(t *testing.T) {
	favorites := newTestFavoritesStore(paletteB)
	s := newTestSession(t, favorites, nil, 0)
	s.Load()

	sub := &recordingSubscriber{}
	s.Subscribe(sub)

	s.Reload()
	if sub.count() != 0 {
		t.Errorf("Reload with unchanged storage notified %d times", sub.count())
	}

	favorites.mu.Lock()
	favorites.list = model.FavoritesList{paletteA, paletteB}
	favorites.mu.Unlock()

	state := s.Reload()
	if len(state.Favorites) != 2 {
		t.Errorf("Favorites = %v, want two entries", state.Favorites)
	}
	if sub.count() != 1 {
		t.Errorf("Expected one notification, got %d", sub.count())
	}
}

// ============================================================================
// Favorites
// ============================================================================

func TestSession_Scenario(t *testing.T) {
	favorites := newTestFavoritesStore()
	s := newTestSession(t, favorites, nil, 0)
	s.Load()

	state := s.SaveCurrent()
	if len(state.Favorites) != 1 || state.Favorites[0] != paletteA {
		t.Fatalf("After first save: %v", state.Favorites)
	}

	state = s.SaveCurrent()
	if len(state.Favorites) != 1 {
		t.Fatalf("Saving again should be a no-op, got %v", state.Favorites)
	}

	state = s.RemoveFavorite(0)
	if len(state.Favorites) != 0 {
		t.Fatalf("After remove: %v", state.Favorites)
	}

	if favorites.saveCount() != 3 {
		t.Errorf("Expected a save per favorites operation, got %d", favorites.saveCount())
	}
	if len(favorites.lastSave()) != 0 {
		t.Errorf("Last saved list = %v, want empty", favorites.lastSave())
	}
}

func TestSession_SaveCurrentPrependsAndPersists(t *testing.T) {
	favorites := newTestFavoritesStore(paletteB)
	s := newTestSession(t, favorites, nil, 0)
	s.Load()

	state := s.SaveCurrent()

	if len(state.Favorites) != 2 || state.Favorites[0] != paletteA {
		t.Errorf("Expected paletteA first, got %v", state.Favorites)
	}
	if !state.IsSaved() {
		t.Error("Expected IsSaved after saving")
	}
	if got := favorites.Load(); len(got) != 2 || got[0] != paletteA {
		t.Errorf("Store holds %v", got)
	}
}

func TestSession_SavePalette(t *testing.T) {
	favorites := newTestFavoritesStore()
	s := newTestSession(t, favorites, nil, 0)

	state, err := s.SavePalette(paletteB)
	if err != nil {
		t.Fatalf("SavePalette failed: %v", err)
	}
	if len(state.Favorites) != 1 || state.Favorites[0] != paletteB {
		t.Errorf("Favorites = %v", state.Favorites)
	}

	_, err = s.SavePalette(model.Palette{})
	if !kanerr.IsValidationError(err) {
		t.Errorf("Expected validation error for empty palette, got %v", err)
	}
}

func TestSession_RemoveOutOfRange(t *testing.T) {
	favorites := newTestFavoritesStore(paletteA, paletteB)
	s := newTestSession(t, favorites, nil, 0)
	s.Load()

	state := s.RemoveFavorite(5)

	if len(state.Favorites) != 2 {
		t.Errorf("Out-of-range remove changed favorites: %v", state.Favorites)
	}
}

func TestSession_SaveFailureIsNotFatal(t *testing.T) {
	favorites := newTestFavoritesStore()
	favorites.saveErr = errors.New("disk full")
	s := newTestSession(t, favorites, nil, 0)

	state := s.SaveCurrent()

	if len(state.Favorites) != 1 {
		t.Errorf("In-memory favorites should still update, got %v", state.Favorites)
	}
	if favorites.saveCount() != 1 {
		t.Errorf("Expected one save attempt, got %d", favorites.saveCount())
	}
}

// ============================================================================
// Copy feedback
// ============================================================================

func TestSession_CopyWritesClipboard(t *testing.T) {
	var copied []model.Color
	cb := clipboard.Func(func(c model.Color) error {
		copied = append(copied, c)
		return nil
	})
	s := newTestSession(t, newTestFavoritesStore(), cb, time.Minute)

	state, err := s.Copy("#BBBBBB")
	if err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	if len(copied) != 1 || copied[0] != "#BBBBBB" {
		t.Errorf("Clipboard got %v", copied)
	}
	if state.Copied != "#BBBBBB" {
		t.Errorf("Copied = %q, want #BBBBBB", state.Copied)
	}
}

func TestSession_CopyInvalidColor(t *testing.T) {
	s := newTestSession(t, newTestFavoritesStore(), nil, 0)

	_, err := s.Copy("#bbbbbb")
	if !kanerr.IsValidationError(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if s.State().Copied != "" {
		t.Error("Invalid copy should not set the flag")
	}
}

func TestSession_ClipboardFailureIgnored(t *testing.T) {
	cb := clipboard.Func(func(model.Color) error {
		return errors.New("no clipboard")
	})
	s := newTestSession(t, newTestFavoritesStore(), cb, time.Minute)

	state, err := s.Copy("#AAAAAA")
	if err != nil {
		t.Fatalf("Clipboard errors should not surface, got %v", err)
	}
	if state.Copied != "#AAAAAA" {
		t.Errorf("Copied = %q, want #AAAAAA", state.Copied)
	}
}

func TestSession_CopiedClearsAfterFeedback(t *testing.T) {
	s := newTestSession(t, newTestFavoritesStore(), nil, 30*time.Millisecond)
	sub := &recordingSubscriber{}
	s.Subscribe(sub)

	if _, err := s.Copy("#AAAAAA"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	cleared := waitFor(t, time.Second, func() bool {
		return s.State().Copied == ""
	})
	if !cleared {
		t.Fatal("Copied flag was never cleared")
	}

	// One notification for the copy, one for the clear
	if !waitFor(t, time.Second, func() bool { return sub.count() == 2 }) {
		t.Fatalf("Expected 2 notifications, got %d", sub.count())
	}
	if sub.last().Copied != "" {
		t.Errorf("Last notification should have a cleared flag, got %q", sub.last().Copied)
	}
}

func TestSession_NewCopySupersedesTimer(t *testing.T) {
	s := newTestSession(t, newTestFavoritesStore(), nil, 200*time.Millisecond)

	if _, err := s.Copy("#AAAAAA"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if _, err := s.Copy("#111111"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}

	// Past the first timer's deadline but well before the second's
	time.Sleep(130 * time.Millisecond)
	if got := s.State().Copied; got != "#111111" {
		t.Errorf("Copied = %q, want #111111 (first timer should be cancelled)", got)
	}

	if !waitFor(t, time.Second, func() bool { return s.State().Copied == "" }) {
		t.Error("Second copy's flag was never cleared")
	}
}

func TestSession_FlagSharedAcrossPaletteAndFavorites(t *testing.T) {
	favorites := newTestFavoritesStore(paletteB)
	s := newTestSession(t, favorites, nil, time.Minute)
	s.Load()

	// Copy from the main palette, then from a favorite
	s.Copy(paletteA[0])
	state, _ := s.Copy(paletteB[2])

	if state.IsCopied(paletteA[0]) {
		t.Error("Copying a favorite color should replace the palette color's feedback")
	}
	if !state.IsCopied(paletteB[2]) {
		t.Error("Expected favorite color to show as copied")
	}
}

func TestSession_GenerateClearsCopied(t *testing.T) {
	s := newTestSession(t, newTestFavoritesStore(), nil, 50*time.Millisecond)

	s.Copy("#AAAAAA")
	state := s.Generate()

	if state.Copied != "" {
		t.Errorf("Generate should clear the flag, got %q", state.Copied)
	}
	if state.Palette != paletteB {
		t.Errorf("Palette = %v, want next generated palette", state.Palette)
	}

	sub := &recordingSubscriber{}
	s.Subscribe(sub)
	time.Sleep(100 * time.Millisecond)
	if sub.count() != 0 {
		t.Errorf("Cancelled timer still fired %d notifications", sub.count())
	}
}

func TestSession_Unsubscribe(t *testing.T) {
	s := newTestSession(t, newTestFavoritesStore(), nil, 0)
	sub := &recordingSubscriber{}

	s.Subscribe(sub)
	s.Generate()
	s.Unsubscribe(sub)
	s.Generate()

	if sub.count() != 1 {
		t.Errorf("Expected 1 notification, got %d", sub.count())
	}
}

// slowFirstSubscriber blocks inside its first delivery until released, and
// records each state only after returning from that wait.
type slowFirstSubscriber struct {
	recordingSubscriber
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *slowFirstSubscriber) OnStateChange(state model.State) {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	s.recordingSubscriber.OnStateChange(state)
}

func TestSession_ConcurrentChangesDeliverNewestLast(t *testing.T) {
	s := newTestSession(t, newTestFavoritesStore(), nil, 0)
	sub := &slowFirstSubscriber{entered: make(chan struct{}), release: make(chan struct{})}
	s.Subscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Generate()
	}()
	<-sub.entered

	saved := make(chan struct{})
	go func() {
		defer close(saved)
		s.SaveCurrent()
	}()
	// Give the save time to overtake the stalled delivery if it could
	time.Sleep(50 * time.Millisecond)
	close(sub.release)
	<-done
	<-saved

	want := s.State()
	got := sub.last()
	if len(got.Favorites) != len(want.Favorites) || got.Palette != want.Palette {
		t.Errorf("Last delivered state is stale: %d favorites delivered, session has %d",
			len(got.Favorites), len(want.Favorites))
	}
}

func TestSession_SubscriberCount(t *testing.T) {
	s := newTestSession(t, newTestFavoritesStore(), nil, 0)
	sub := &recordingSubscriber{}

	s.Subscribe(sub)
	if s.SubscriberCount() != 1 {
		t.Errorf("Expected 1 subscriber, got %d", s.SubscriberCount())
	}
	s.Unsubscribe(sub)
	if s.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers, got %d", s.SubscriberCount())
	}
}
