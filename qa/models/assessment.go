package models

import "time"

// Rating buckets a reviewer can assign to a conversation.
const (
	RatingGood = "good"
	RatingOkay = "okay"
	RatingBad  = "bad"
)

// Assessment is a reviewer's annotation overlay for one conversation.
// Rating stays empty until a reviewer sets one explicitly, except when the
// record is first created through a tags/notes/partial-update path, which
// seeds it with RatingOkay.
type Assessment struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	ReviewerID     string    `json:"reviewerId"`
	Rating         string    `json:"rating,omitempty"`
	Tags           []string  `json:"tags"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AssessmentUpdate carries a partial update. Nil fields are left untouched;
// a non-nil Tags pointer replaces the tag list wholesale.
type AssessmentUpdate struct {
	Rating *string   `json:"rating"`
	Tags   *[]string `json:"tags"`
	Notes  *string   `json:"notes"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u AssessmentUpdate) IsEmpty() bool {
	return u.Rating == nil && u.Tags == nil && u.Notes == nil
}
