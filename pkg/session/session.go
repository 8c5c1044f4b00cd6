// Package session holds the state of one drawing panel: the ordered
// command list being edited and the file it is saved to.
package session

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/chazu/paint/pkg/drawing"
	"github.com/chazu/paint/pkg/savefile"
)

// ErrNoPath is returned by Save when no file path has been set.
var ErrNoPath = errors.New("session: no save path set")

// Default panel size in drawing units.
const (
	DefaultWidth  = 300
	DefaultHeight = 300
)

// Session is safe for concurrent use.
type Session struct {
	id string

	mu       sync.RWMutex
	doc      *drawing.Document
	opts     savefile.Options
	path     string
	dirty    bool
	revision uint64
}

// New returns an empty session with a fresh ID.
func New() *Session {
	return &Session{id: uuid.NewString(), doc: drawing.NewDocument()}
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Add appends a shape on top of the drawing.
func (s *Session) Add(shape drawing.Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Add(shape)
	s.touch()
}

// Reset removes every command.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Reset()
	s.touch()
}

// SetDocument replaces the command list with a copy of doc.
func (s *Session) SetDocument(doc *drawing.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = drawing.NewDocument(doc.Commands()...)
	s.touch()
}

// Document returns a copy of the current command list.
func (s *Session) Document() *drawing.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return drawing.NewDocument(s.doc.Commands()...)
}

// Len returns the number of commands.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Len()
}

// SetOptions selects the save file grammar used by Open and Save.
func (s *Session) SetOptions(opts savefile.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

// Options returns the save file grammar settings.
func (s *Session) Options() savefile.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// Path returns the file the session saves to, or "".
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// SetPath changes the file Save writes to.
func (s *Session) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
}

// Dirty reports whether there are changes since the last open or save.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Revision increases with every change to the command list.
func (s *Session) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Open parses path and, on success, replaces the command list and makes
// path the save target. On failure the session is left untouched.
func (s *Session) Open(path string) error {
	doc, err := savefile.ParseFileWithOptions(path, s.Options())
	if err != nil {
		log.Printf("session %s: open %s failed: %v", s.short(), path, err)
		return fmt.Errorf("session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.path = path
	s.revision++
	s.dirty = false
	log.Printf("session %s: opened %s (%d commands)", s.short(), path, doc.Len())
	return nil
}

// Save writes the command list to the session path. Documents holding
// numbers the grammar cannot store are refused with an error wrapping
// savefile.ErrUnrepresentable.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return ErrNoPath
	}
	return s.saveLocked(s.path)
}

// SaveAs writes the command list to path and makes it the save target.
func (s *Session) SaveAs(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveLocked(path); err != nil {
		return err
	}
	s.path = path
	return nil
}

// saveLocked refuses documents the parser could not read back, so a
// saved file always reopens.
func (s *Session) saveLocked(path string) error {
	if err := savefile.Representable(s.doc, s.opts); err != nil {
		log.Printf("session %s: not saving %s: %v", s.short(), path, err)
		return fmt.Errorf("session: save %s: %w", path, err)
	}
	if err := savefile.WriteFile(path, s.doc); err != nil {
		log.Printf("session %s: save %s failed: %v", s.short(), path, err)
		return fmt.Errorf("session: %w", err)
	}
	s.dirty = false
	log.Printf("session %s: saved %s (%d commands)", s.short(), path, s.doc.Len())
	return nil
}

// touch records a change. Callers hold mu.
func (s *Session) touch() {
	s.revision++
	s.dirty = true
}

func (s *Session) short() string {
	if len(s.id) >= 8 {
		return s.id[:8]
	}
	return s.id
}
