package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// ConversationRow is one aggregated row from the warehouse list/detail query:
// conversation columns plus the message aggregates computed in SQL.
type ConversationRow struct {
	ConversationID         string
	CreatedAt              *time.Time
	LastMessageAt          *time.Time
	Status                 string
	SourceDetails          datatypes.JSON
	ConversationEvaluation datatypes.JSON
	Tags                   datatypes.JSON
	MessageCount           int64
	LastMessageTime        *time.Time
	HasHumanAgent          int
}

// MessageRow is one raw message row from the transcript query
type MessageRow struct {
	ID             int64
	ConversationID string
	MessageContent *string
	CreatedAt      *time.Time
	MessageType    string
	Direction      string
	AgentID        *string
}

// Evaluation is the nested conversation_evaluation payload. All fields are
// optional; the warehouse stores this as loose JSON text.
type Evaluation struct {
	Summary              *string `json:"summary"`
	ResolutionStatus     string  `json:"resolution_status"`
	CustomerSatisfaction any     `json:"customer_satisfaction"`
	Theme                *Theme  `json:"theme"`
}

// Theme carries the classified conversation topic
type Theme struct {
	MainTheme *string `json:"main_theme"`
}

// SourceDetails is the nested source_details payload
type SourceDetails struct {
	Channel string `json:"channel"`
	Source  string `json:"source"`
}

// ParseEvaluation decodes the raw evaluation payload. Absent, empty or
// malformed payloads all come back nil so derivation rules treat them the
// same way.
func ParseEvaluation(raw datatypes.JSON) *Evaluation {
	if len(raw) == 0 {
		return nil
	}
	var ev Evaluation
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil
	}
	return &ev
}

// ParseSourceDetails decodes the raw source_details payload, nil on any
// absence or mismatch
func ParseSourceDetails(raw datatypes.JSON) *SourceDetails {
	if len(raw) == 0 {
		return nil
	}
	var sd SourceDetails
	if err := json.Unmarshal(raw, &sd); err != nil {
		return nil
	}
	return &sd
}
