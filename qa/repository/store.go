package repository

import (
	"sort"
	"sync"
	"time"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/models"
)

// defaultReviewerID stands in until reviewer identity is wired through auth.
const defaultReviewerID = "current-user"

// AssessmentStore is the keyed overlay holding reviewer annotations per
// conversation. Writes upsert: a missing record is created on first touch
// rather than reported as an error, except RemoveTags which only ever
// shrinks an existing record.
type AssessmentStore interface {
	Get(conversationID string) (*models.Assessment, bool)
	SetRating(conversationID, rating string) *models.Assessment
	AddTags(conversationID string, tags []string) *models.Assessment
	RemoveTags(conversationID string, tags []string) *models.Assessment
	SetNotes(conversationID, notes string) *models.Assessment
	Update(conversationID string, update models.AssessmentUpdate) *models.Assessment
	AllTags() []string
}

// MemoryStore is the in-memory AssessmentStore. All methods are safe for
// concurrent use.
type MemoryStore struct {
	mu          sync.Mutex
	assessments map[string]*models.Assessment
}

// NewMemoryStore creates an empty in-memory assessment store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{assessments: make(map[string]*models.Assessment)}
}

// Get returns a copy of the assessment for the conversation, if one exists.
func (s *MemoryStore) Get(conversationID string) (*models.Assessment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment, ok := s.assessments[conversationID]
	if !ok {
		return nil, false
	}
	return copyAssessment(assessment), true
}

// SetRating sets the reviewer rating, creating the record if needed. Unlike
// the other write paths, creation here carries no default rating; the caller
// supplied one.
func (s *MemoryStore) SetRating(conversationID, rating string) *models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment := s.ensure(conversationID, "")
	assessment.Rating = rating
	assessment.UpdatedAt = time.Now().UTC()
	return copyAssessment(assessment)
}

// AddTags merges tags into the assessment, deduplicating while preserving
// first-seen order. Creation through this path seeds the okay rating.
func (s *MemoryStore) AddTags(conversationID string, tags []string) *models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment := s.ensure(conversationID, models.RatingOkay)
	seen := make(map[string]struct{}, len(assessment.Tags)+len(tags))
	for _, tag := range assessment.Tags {
		seen[tag] = struct{}{}
	}
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		assessment.Tags = append(assessment.Tags, tag)
	}
	assessment.UpdatedAt = time.Now().UTC()
	return copyAssessment(assessment)
}

// RemoveTags removes the given tags. Unlike the other write paths this one
// never creates: removing tags from an unreviewed conversation is a no-op and
// returns nil.
func (s *MemoryStore) RemoveTags(conversationID string, tags []string) *models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment, ok := s.assessments[conversationID]
	if !ok {
		return nil
	}
	if len(tags) > 0 && len(assessment.Tags) > 0 {
		drop := make(map[string]struct{}, len(tags))
		for _, tag := range tags {
			drop[tag] = struct{}{}
		}
		kept := assessment.Tags[:0]
		for _, tag := range assessment.Tags {
			if _, ok := drop[tag]; !ok {
				kept = append(kept, tag)
			}
		}
		assessment.Tags = kept
	}
	assessment.UpdatedAt = time.Now().UTC()
	return copyAssessment(assessment)
}

// SetNotes replaces the reviewer notes, creating the record if needed.
func (s *MemoryStore) SetNotes(conversationID, notes string) *models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment := s.ensure(conversationID, models.RatingOkay)
	assessment.Notes = &notes
	assessment.UpdatedAt = time.Now().UTC()
	return copyAssessment(assessment)
}

// Update applies a partial update. A non-nil Tags pointer replaces the tag
// list wholesale, it does not merge.
func (s *MemoryStore) Update(conversationID string, update models.AssessmentUpdate) *models.Assessment {
	s.mu.Lock()
	defer s.mu.Unlock()

	assessment := s.ensure(conversationID, models.RatingOkay)
	if update.Rating != nil {
		assessment.Rating = *update.Rating
	}
	if update.Tags != nil {
		assessment.Tags = append([]string(nil), (*update.Tags)...)
	}
	if update.Notes != nil {
		notes := *update.Notes
		assessment.Notes = &notes
	}
	assessment.UpdatedAt = time.Now().UTC()
	return copyAssessment(assessment)
}

// AllTags returns the sorted distinct tags across every assessment.
func (s *MemoryStore) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	for _, assessment := range s.assessments {
		for _, tag := range assessment.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ensure returns the live record for the conversation, creating it with the
// given initial rating when absent. Callers must hold the lock.
func (s *MemoryStore) ensure(conversationID, initialRating string) *models.Assessment {
	if assessment, ok := s.assessments[conversationID]; ok {
		return assessment
	}

	now := time.Now().UTC()
	assessment := &models.Assessment{
		ID:             "qa-" + conversationID,
		ConversationID: conversationID,
		ReviewerID:     defaultReviewerID,
		Rating:         initialRating,
		Tags:           []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.assessments[conversationID] = assessment
	return assessment
}

// copyAssessment returns a detached copy so callers cannot mutate store
// state after the lock is released.
func copyAssessment(assessment *models.Assessment) *models.Assessment {
	copied := *assessment
	copied.Tags = append([]string(nil), assessment.Tags...)
	if assessment.Notes != nil {
		notes := *assessment.Notes
		copied.Notes = &notes
	}
	return &copied
}
