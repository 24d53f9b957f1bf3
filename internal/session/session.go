// Package session owns the live CV document: the single place where
// mutations, persistence, the skills-text reconciliation rule, and the
// AI pipeline meet. All document mutations are atomic with respect to
// each other; every mutation persists the new snapshot best-effort and
// re-evaluates the skills text field against the canonical list.
package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/document"
	"github.com/jonathan/cv-studio/internal/enhance"
	"github.com/jonathan/cv-studio/internal/identity"
	"github.com/jonathan/cv-studio/internal/llm"
	"github.com/jonathan/cv-studio/internal/merge"
	"github.com/jonathan/cv-studio/internal/persist"
	"github.com/jonathan/cv-studio/internal/skills"
	"github.com/jonathan/cv-studio/internal/types"
)

// Busy-flag errors: a second concurrent request of the same kind is
// refused while one is in flight. Requests of different kinds may
// overlap; they touch independent parts of the document.
var (
	ErrEnhanceInProgress = errors.New("an enhancement is already in progress")
	ErrImportInProgress  = errors.New("a CV import is already in progress")
	ErrPhotoInProgress   = errors.New("a photo transform is already in progress")
	// ErrNoPhoto is returned when a photo transform is requested before a
	// photo has been uploaded.
	ErrNoPhoto = errors.New("upload a photo first")
)

// Session orchestrates the document lifecycle for one user.
type Session struct {
	mu         sync.Mutex
	cv         types.CVData
	skillsText string

	store  *persist.Adapter
	client llm.Client
	alloc  identity.Allocator

	generating        bool
	parsingCV         bool
	transformingPhoto bool

	exportArmed bool
}

// Flags is a snapshot of the busy flags.
type Flags struct {
	Generating        bool `json:"isGenerating"`
	ParsingCV         bool `json:"isParsingCv"`
	TransformingPhoto bool `json:"isTransformingPhoto"`
}

// New loads the persisted document (or the default) and returns a ready
// session. The skills text field starts in sync with the canonical list.
func New(ctx context.Context, store *persist.Adapter, client llm.Client, alloc identity.Allocator) *Session {
	cv := store.Load(ctx)
	return &Session{
		cv:         cv,
		skillsText: skills.ToText(cv.Skills),
		store:      store,
		client:     client,
		alloc:      alloc,
	}
}

// Document returns the current snapshot.
func (s *Session) Document() types.CVData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cv.Clone()
}

// SkillsText returns the current contents of the skills text field.
func (s *Session) SkillsText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skillsText
}

// BusyFlags returns the current busy flags.
func (s *Session) BusyFlags() Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Flags{
		Generating:        s.generating,
		ParsingCV:         s.parsingCV,
		TransformingPhoto: s.transformingPhoto,
	}
}

// apply installs a new snapshot produced by a mutation: persist, then
// re-evaluate the skills reconciliation rule. Callers hold s.mu.
func (s *Session) apply(ctx context.Context, cv types.CVData) {
	s.cv = cv
	s.store.Save(ctx, s.cv)
	s.skillsText = skills.Resync(s.skillsText, s.cv.Skills)
}

// SetPersonalDetails replaces the personal details section.
func (s *Session) SetPersonalDetails(ctx context.Context, details types.PersonalDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, document.SetPersonalDetails(s.cv, details))
}

// SetSummary replaces the summary.
func (s *Session) SetSummary(ctx context.Context, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, document.SetSummary(s.cv, summary))
}

// SetSkillsText records every change of the skills text field and derives
// the canonical list from it, so the document always matches what is
// visibly typed. The raw text, trailing separators included, is kept as
// the field state; Resync leaves it alone because it derives the same
// list.
func (s *Session) SetSkillsText(ctx context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skillsText = text
	s.apply(ctx, document.SetSkills(s.cv, skills.FromText(text)))
}

// UpdateWorkExperience edits one field of one work entry.
func (s *Session) UpdateWorkExperience(ctx context.Context, id, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, document.UpdateWorkExperience(s.cv, id, field, value))
}

// AddWorkExperience appends a blank work entry and returns its identity.
func (s *Session) AddWorkExperience(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := document.AddWorkExperience(s.cv, s.alloc)
	s.apply(ctx, next)
	return next.WorkExperience[len(next.WorkExperience)-1].ID
}

// RemoveWorkExperience removes the matching work entry.
func (s *Session) RemoveWorkExperience(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, document.RemoveWorkExperience(s.cv, id))
}

// UpdateEducation edits one field of one education entry.
func (s *Session) UpdateEducation(ctx context.Context, id, field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, document.UpdateEducation(s.cv, id, field, value))
}

// AddEducation appends a blank education entry and returns its identity.
func (s *Session) AddEducation(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := document.AddEducation(s.cv, s.alloc)
	s.apply(ctx, next)
	return next.Education[len(next.Education)-1].ID
}

// RemoveEducation removes the matching education entry.
func (s *Session) RemoveEducation(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(ctx, document.RemoveEducation(s.cv, id))
}

// Enhance runs the enhancement call against a read-only snapshot and
// merges the partial result into whatever the document has become by the
// time the call returns. A user edit made while the call is in flight is
// preserved; the partial is layered on top, field by field.
func (s *Session) Enhance(ctx context.Context) error {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return ErrEnhanceInProgress
	}
	s.generating = true
	snapshot := s.cv.Clone()
	s.mu.Unlock()

	token := uuid.NewString()
	log.Printf("[enhance %s] request started", token)

	patch, err := enhance.EnhanceCV(ctx, s.client, s.alloc, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	if err != nil {
		log.Printf("[enhance %s] failed: %v", token, err)
		return err
	}
	s.apply(ctx, merge.Enhancement(s.cv, patch))
	log.Printf("[enhance %s] merged", token)
	return nil
}

// ImportCV parses pasted legacy CV text and merges the result, with the
// same in-flight semantics as Enhance.
func (s *Session) ImportCV(ctx context.Context, rawText string) error {
	s.mu.Lock()
	if s.parsingCV {
		s.mu.Unlock()
		return ErrImportInProgress
	}
	s.parsingCV = true
	s.mu.Unlock()

	token := uuid.NewString()
	log.Printf("[import %s] request started", token)

	patch, err := enhance.ParseCV(ctx, s.client, s.alloc, rawText)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.parsingCV = false
	if err != nil {
		log.Printf("[import %s] failed: %v", token, err)
		return err
	}
	s.apply(ctx, merge.Import(s.cv, patch))
	log.Printf("[import %s] merged", token)
	return nil
}

// TransformPhoto runs the headshot transform on the current photo. The
// missing-photo precondition is checked before any external call. The
// result lands on the then-current document.
func (s *Session) TransformPhoto(ctx context.Context) error {
	s.mu.Lock()
	if s.transformingPhoto {
		s.mu.Unlock()
		return ErrPhotoInProgress
	}
	photo := s.cv.PersonalDetails.Photo
	if photo == "" {
		s.mu.Unlock()
		return ErrNoPhoto
	}
	s.transformingPhoto = true
	s.mu.Unlock()

	token := uuid.NewString()
	log.Printf("[photo %s] request started", token)

	transformed, err := enhance.TransformPhoto(ctx, s.client, photo)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transformingPhoto = false
	if err != nil {
		log.Printf("[photo %s] failed: %v", token, err)
		return err
	}
	details := s.cv.PersonalDetails
	details.Photo = transformed
	s.apply(ctx, document.SetPersonalDetails(s.cv, details))
	log.Printf("[photo %s] applied", token)
	return nil
}

// Persist writes the current snapshot to the store immediately. Used
// before handing the browser to an external page, where the in-memory
// session may not survive the round trip.
func (s *Session) Persist(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Save(ctx, s.cv)
}

// Consent reports the stored consent flag.
func (s *Session) Consent(ctx context.Context) bool {
	return s.store.Consent(ctx)
}

// SetConsent records the consent flag.
func (s *Session) SetConsent(ctx context.Context, granted bool) {
	s.store.SetConsent(ctx, granted)
}

// ArmExport marks a successful payment return: the next ConsumeExport
// call, and only that one, reports true.
func (s *Session) ArmExport() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exportArmed = true
}

// ConsumeExport consumes the export trigger. Refreshing or re-visiting
// after the first consumption does not re-trigger the export.
func (s *Session) ConsumeExport() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	armed := s.exportArmed
	s.exportArmed = false
	return armed
}
