package service

import (
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/models"
	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/qa/repository"
)

// AssessmentService exposes QA annotation operations over the keyed store.
type AssessmentService struct {
	store repository.AssessmentStore
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(store repository.AssessmentStore) *AssessmentService {
	return &AssessmentService{store: store}
}

// Get returns the assessment for the conversation, or nil when none exists.
func (s *AssessmentService) Get(conversationID string) *models.Assessment {
	assessment, ok := s.store.Get(conversationID)
	if !ok {
		return nil
	}
	return assessment
}

// SetRating records a reviewer rating, creating the assessment if needed.
func (s *AssessmentService) SetRating(conversationID, rating string) *models.Assessment {
	return s.store.SetRating(conversationID, rating)
}

// AddTags merges tags into the assessment.
func (s *AssessmentService) AddTags(conversationID string, tags []string) *models.Assessment {
	return s.store.AddTags(conversationID, tags)
}

// RemoveTags removes tags from the assessment.
func (s *AssessmentService) RemoveTags(conversationID string, tags []string) *models.Assessment {
	return s.store.RemoveTags(conversationID, tags)
}

// SetNotes replaces the reviewer notes on the assessment.
func (s *AssessmentService) SetNotes(conversationID, notes string) *models.Assessment {
	return s.store.SetNotes(conversationID, notes)
}

// Update applies a partial update to the assessment.
func (s *AssessmentService) Update(conversationID string, update models.AssessmentUpdate) *models.Assessment {
	return s.store.Update(conversationID, update)
}

// AllTags returns the sorted distinct tags across every assessment.
func (s *AssessmentService) AllTags() []string {
	return s.store.AllTags()
}

// SetBulkRating applies one rating to many conversations and returns the
// resulting assessments in input order.
func (s *AssessmentService) SetBulkRating(conversationIDs []string, rating string) []*models.Assessment {
	assessments := make([]*models.Assessment, 0, len(conversationIDs))
	for _, id := range conversationIDs {
		assessments = append(assessments, s.store.SetRating(id, rating))
	}
	return assessments
}

// AddBulkTags merges the same tag set into many conversations and returns the
// resulting assessments in input order.
func (s *AssessmentService) AddBulkTags(conversationIDs []string, tags []string) []*models.Assessment {
	assessments := make([]*models.Assessment, 0, len(conversationIDs))
	for _, id := range conversationIDs {
		assessments = append(assessments, s.store.AddTags(id, tags))
	}
	return assessments
}
