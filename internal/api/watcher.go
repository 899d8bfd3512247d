package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/amterp/swatch/internal/config"
	"github.com/amterp/swatch/internal/logging"
	"github.com/amterp/swatch/internal/model"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounceInterval coalesces the bursts of events a single save produces.
const debounceInterval = 100 * time.Millisecond

// FileChangeType is what happened to the favorites file.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
)

// FileChange is one debounced change to the favorites file.
type FileChange struct {
	Type FileChangeType `json:"type"`
	// Path is relative to the data directory.
	Path string `json:"path"`
	// Events counts the raw filesystem events folded into this change.
	Events int `json:"events"`
}

// FileWatcherSubscriber receives favorites file changes.
type FileWatcherSubscriber interface {
	OnFileChange(change FileChange)
}

type watcherState int

const (
	watcherIdle watcherState = iota
	watcherRunning
	watcherStopped
)

var errWatcherStopped = errors.New("file watcher cannot be restarted after stop")

// FileWatcher reports changes to the favorites file made by another process
// (the CLI, a second server, a text editor). The directory is watched rather
// than the file because editors and atomic writers replace the file.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	dataDir string
	log     *logrus.Entry

	mu          sync.Mutex
	state       watcherState
	subscribers []FileWatcherSubscriber
	pending     *time.Timer
	pendingType FileChangeType
	pendingN    int

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFileWatcher creates a watcher for the favorites file in dataDir.
func NewFileWatcher(dataDir string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		watcher: watcher,
		dataDir: dataDir,
		log:     logging.Component("watcher"),
		done:    make(chan struct{}),
	}, nil
}

// Subscribe adds a subscriber.
func (fw *FileWatcher) Subscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.subscribers = append(fw.subscribers, sub)
}

// Unsubscribe removes a subscriber.
func (fw *FileWatcher) Unsubscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for i, s := range fw.subscribers {
		if s == sub {
			fw.subscribers = append(fw.subscribers[:i], fw.subscribers[i+1:]...)
			return
		}
	}
}

// Start creates the data directory if needed and begins watching it.
// Starting twice is a no-op; starting after Stop is an error.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	switch fw.state {
	case watcherRunning:
		return nil
	case watcherStopped:
		return errWatcherStopped
	}

	if err := os.MkdirAll(fw.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := fw.watcher.Add(fw.dataDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", fw.dataDir, err)
	}

	fw.state = watcherRunning
	fw.wg.Add(1)
	go fw.run()
	return nil
}

// Stop ends watching, drops any change still being debounced, and waits for
// the event loop to exit.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	switch fw.state {
	case watcherStopped:
		fw.mu.Unlock()
		return nil
	case watcherIdle:
		fw.state = watcherStopped
		fw.mu.Unlock()
		return fw.watcher.Close()
	}
	fw.state = watcherStopped
	if fw.pending != nil {
		fw.pending.Stop()
		fw.pending = nil
	}
	fw.mu.Unlock()

	close(fw.done)
	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}

func (fw *FileWatcher) run() {
	defer fw.wg.Done()
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if change, ok := fw.classifyChange(event); ok {
				fw.queue(change.Type)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.WithError(err).Warn("File watcher error")

		case <-fw.done:
			return
		}
	}
}

// queue restarts the debounce window. The last event's type wins: a save
// that writes a temp file and renames it over the old one reads as created.
func (fw *FileWatcher) queue(t FileChangeType) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.state != watcherRunning {
		return
	}
	fw.pendingType = t
	fw.pendingN++
	if fw.pending != nil {
		fw.pending.Stop()
	}
	fw.pending = time.AfterFunc(debounceInterval, fw.flush)
}

func (fw *FileWatcher) flush() {
	fw.mu.Lock()
	if fw.state != watcherRunning || fw.pendingN == 0 {
		fw.mu.Unlock()
		return
	}
	change := FileChange{
		Type:   fw.pendingType,
		Path:   config.FavoritesFileName,
		Events: fw.pendingN,
	}
	fw.pending = nil
	fw.pendingN = 0
	subs := append([]FileWatcherSubscriber(nil), fw.subscribers...)
	fw.mu.Unlock()

	fw.log.WithFields(logrus.Fields{
		"type":   change.Type,
		"events": change.Events,
	}).Debug("Favorites file changed")

	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

// classifyChange maps a raw event to a favorites change. Events for any other
// file, and attribute-only changes, are not favorites changes.
func (fw *FileWatcher) classifyChange(event fsnotify.Event) (FileChange, bool) {
	relPath, err := filepath.Rel(fw.dataDir, event.Name)
	if err != nil || relPath != config.FavoritesFileName {
		return FileChange{}, false
	}

	change := FileChange{Path: relPath, Events: 1}
	switch {
	case event.Has(fsnotify.Create):
		change.Type = FileChangeCreated
	case event.Has(fsnotify.Write):
		change.Type = FileChangeModified
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		change.Type = FileChangeDeleted
	default:
		return FileChange{}, false
	}
	return change, true
}

// Reloader is the part of a session the watcher drives.
type Reloader interface {
	Reload() model.State
}

// FavoritesReloader re-reads favorites whenever the favorites file changes.
// The session only notifies its subscribers when the list really differs,
// so the server's own writes echo back as no-ops.
type FavoritesReloader struct {
	Session Reloader
}

// OnFileChange implements FileWatcherSubscriber.
func (r FavoritesReloader) OnFileChange(FileChange) {
	r.Session.Reload()
}
