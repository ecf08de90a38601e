// Package store is the caller-side persistence layer spec §6 calls for:
// "callers that persist must serialize the externally-visible state —
// set of (DocKey, perField raw strings, perFeature values) — and
// replay on load." It is not part of the engine's own contract; it
// wraps an engine.Engine with the raw document content the engine
// itself discards once extraction has run, so that content survives a
// restart.
package store

import (
	"encoding/gob"
	"errors"
	"os"
	"sync"

	"github.com/gcbaptista/docsearch/config"
	"github.com/gcbaptista/docsearch/engine"
	"github.com/gcbaptista/docsearch/internal/persistence"
	"github.com/gcbaptista/docsearch/model"
)

func init() {
	// Every concrete model.Doc variant must be registered so gob can
	// encode/decode the Markup field of a StoredField, which is typed
	// as the model.Doc interface.
	gob.Register(model.DocEmpty{})
	gob.Register(model.DocString{})
	gob.Register(model.DocParagraph{})
	gob.Register(model.DocAppend{})
	gob.Register(model.DocIdentifier{})
	gob.Register(model.DocModule{})
	gob.Register(model.DocEmphasis{})
	gob.Register(model.DocMonospaced{})
	gob.Register(model.DocUnorderedList{})
	gob.Register(model.DocOrderedList{})
	gob.Register(model.DocDefList{})
	gob.Register(model.DocCodeBlock{})
	gob.Register(model.DocHyperlink{})
	gob.Register(model.DocPicture{})
	gob.Register(model.DocAName{})
}

// StoredField is one field's raw content as it was originally
// presented to InsertDoc. Exactly one of Text/Markup is meaningful,
// mirroring engine.FieldInput.
type StoredField struct {
	Text   string
	Markup model.Doc
}

// StoredDoc is the externally-visible state of one document: its key,
// its raw per-field content, and its raw per-feature values.
type StoredDoc struct {
	Key      model.DocKey
	Fields   map[string]StoredField
	Features map[string]float32
}

// gobStoreData is a helper struct for Gob encoding/decoding Store data,
// excluding the mutex and the live engine.
type gobStoreData struct {
	Docs map[model.DocKey]StoredDoc
}

// Store composes an engine.Engine with the raw document content needed
// to persist and reload it. All mutation goes through Store's own
// methods rather than the wrapped Engine directly, so the raw-content
// map and the engine's index stay in sync.
type Store struct {
	Mu     sync.RWMutex
	Engine *engine.Engine
	Docs   map[model.DocKey]StoredDoc
}

// New builds an empty Store for schema.
func New(schema *config.Schema) *Store {
	return &Store{
		Engine: engine.New(schema),
		Docs:   make(map[model.DocKey]StoredDoc),
	}
}

// InsertDoc inserts or replaces a document, recording its raw content
// alongside indexing it.
func (s *Store) InsertDoc(key model.DocKey, fields map[string]engine.FieldInput, features map[string]float32) model.DocId {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	id := s.Engine.InsertDoc(key, fields, features)

	storedFields := make(map[string]StoredField, len(fields))
	for name, f := range fields {
		storedFields[name] = StoredField{Text: f.Text, Markup: f.Markup}
	}
	s.Docs[key] = StoredDoc{Key: key, Fields: storedFields, Features: features}
	return id
}

// DeleteDoc removes a document's raw content along with its index
// entry.
func (s *Store) DeleteDoc(key model.DocKey) bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	ok := s.Engine.DeleteDoc(key)
	if ok {
		delete(s.Docs, key)
	}
	return ok
}

// Save gob-encodes the store's raw document content to filePath.
func (s *Store) Save(filePath string) error {
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	return persistence.SaveGob(filePath, gobStoreData{Docs: s.Docs})
}

// Load replays a previously Saved snapshot from filePath, re-inserting
// every document through InsertDoc so the index is rebuilt exactly as
// it would be from fresh writes. A missing file is not an error: it
// means this is the first run with no prior snapshot.
func (s *Store) Load(filePath string) error {
	var data gobStoreData
	if err := persistence.LoadGob(filePath, &data); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	for key, stored := range data.Docs {
		fields := make(map[string]engine.FieldInput, len(stored.Fields))
		for name, f := range stored.Fields {
			fields[name] = engine.FieldInput{Text: f.Text, Markup: f.Markup}
		}
		s.Engine.InsertDoc(key, fields, stored.Features)
		s.Docs[key] = stored
	}
	return nil
}
