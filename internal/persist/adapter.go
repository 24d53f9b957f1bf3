// Package persist is the persistence adapter for the CV document. It
// serializes the whole document to a single key of an abstract key-value
// store, tolerating absent or corrupt stored data by falling back to the
// default document. Persistence is best-effort, not transactional: a
// failed write is logged and never interrupts the caller.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/jonathan/cv-studio/internal/schemas"
	"github.com/jonathan/cv-studio/internal/store"
	"github.com/jonathan/cv-studio/internal/types"
)

// Fixed storage keys. One holds the JSON-serialized document, the other
// a boolean-like consent flag string.
const (
	documentKey = "cvData"
	consentKey  = "cvConsent"
)

// Adapter loads and saves the CV document through a store.KV.
type Adapter struct {
	kv store.KV
}

// New returns an adapter over the given store.
func New(kv store.KV) *Adapter {
	return &Adapter{kv: kv}
}

// Load reads the stored document. An absent key returns the default
// document. Stored data that fails to parse, or parses but does not
// match the document schema, is logged and replaced by the default
// document; Load never returns an error to the caller.
func (a *Adapter) Load(ctx context.Context) types.CVData {
	raw, err := a.kv.Get(ctx, documentKey)
	if errors.Is(err, store.ErrNotFound) {
		return types.DefaultCV()
	}
	if err != nil {
		log.Printf("persist: failed to read stored document: %v", err)
		return types.DefaultCV()
	}

	if err := schemas.Validate(schemas.CVDocument, []byte(raw)); err != nil {
		log.Printf("persist: stored document rejected, using default: %v", err)
		return types.DefaultCV()
	}

	var cv types.CVData
	if err := json.Unmarshal([]byte(raw), &cv); err != nil {
		log.Printf("persist: failed to parse stored document: %v", err)
		return types.DefaultCV()
	}
	return cv.Normalize()
}

// Save serializes the full document and writes it. Write failures (for
// example, quota exceeded on the backing store) are logged and swallowed.
func (a *Adapter) Save(ctx context.Context, cv types.CVData) {
	data, err := json.Marshal(cv)
	if err != nil {
		log.Printf("persist: failed to serialize document: %v", err)
		return
	}
	if err := a.kv.Set(ctx, documentKey, string(data)); err != nil {
		log.Printf("persist: failed to save document: %v", err)
	}
}

// Consent reports whether the consent flag has been recorded.
func (a *Adapter) Consent(ctx context.Context) bool {
	value, err := a.kv.Get(ctx, consentKey)
	if err != nil {
		return false
	}
	return value == "true"
}

// SetConsent records the consent flag. Best-effort, like Save.
func (a *Adapter) SetConsent(ctx context.Context, granted bool) {
	value := "false"
	if granted {
		value = "true"
	}
	if err := a.kv.Set(ctx, consentKey, value); err != nil {
		log.Printf("persist: failed to save consent flag: %v", err)
	}
}
