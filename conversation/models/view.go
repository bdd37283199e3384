package models

import "time"

// Public channel values
const (
	ChannelWebsite  = "website"
	ChannelWhatsApp = "whatsapp"
)

// Outcome values
const (
	OutcomeQualified = "qualified"
	OutcomeDropped   = "dropped"
	OutcomeEscalated = "escalated"
	OutcomeOngoing   = "ongoing"
)

// CSAT buckets; a neutral score is surfaced as no rating, never as a value
const (
	CSATGood = "good"
	CSATBad  = "bad"
)

// Message sender roles
const (
	SenderUser  = "user"
	SenderHuman = "human"
	SenderAI    = "ai"
)

// Interaction types
const (
	InteractionAIOnly   = "ai_only"
	InteractionHandover = "ai_to_human_handover"
)

// Version placeholders. Agent/prompt/KB versioning is not tracked upstream
// yet, so every conversation reports the same fixed version.
const (
	PlaceholderVersion = "v1.0.0"
	PlaceholderTraceID = "demo-trace-abc123"
)

// ConversationView is the denormalized conversation representation served to
// the dashboard. MessageCount and LastMessageTime appear on list rows only.
type ConversationView struct {
	ID               string         `json:"id"`
	Channel          string         `json:"channel"`
	StartTime        *time.Time     `json:"startTime"`
	EndTime          *time.Time     `json:"endTime"`
	ParticipantCount int            `json:"participantCount"`
	AIAgentVersion   string         `json:"aiAgentVersion"`
	PromptVersion    string         `json:"promptVersion"`
	KBVersion        string         `json:"kbVersion"`
	DetectedIntent   *string        `json:"detectedIntent"`
	Outcome          string         `json:"outcome"`
	CSAT             *string        `json:"csat"`
	HumanHandover    bool           `json:"humanHandover"`
	InteractionType  string         `json:"interactionType"`
	AutoSummary      *string        `json:"autoSummary"`
	CreatedAt        *time.Time     `json:"createdAt"`
	UpdatedAt        *time.Time     `json:"updatedAt"`
	MessageCount     *int64         `json:"messageCount,omitempty"`
	LastMessageTime  *time.Time     `json:"lastMessageTime,omitempty"`
	Messages         []MessageView  `json:"messages,omitempty"`
}

// MessageView is the transcript message representation. The diagnostic fields
// are placeholders for the deep-observability integration and stay null; only
// AI messages carry the demo trace id.
type MessageView struct {
	ID                string     `json:"id"`
	ConversationID    string     `json:"conversationId"`
	Sender            string     `json:"sender"`
	Content           string     `json:"content"`
	Timestamp         *time.Time `json:"timestamp"`
	MessageType       string     `json:"messageType"`
	ProcessingLatency any        `json:"processingLatency"`
	LangsmithTraceID  *string    `json:"langsmithTraceId"`
	PromptUsed        any        `json:"promptUsed"`
	RAGContext        any        `json:"ragContext"`
	ModelOutput       any        `json:"modelOutput"`
	ToolCalls         any        `json:"toolCalls"`
	Errors            any        `json:"errors"`
}

// ConversationPage is the paginated list payload
type ConversationPage struct {
	Conversations []ConversationView `json:"conversations"`
	Total         int64              `json:"total"`
	Page          int                `json:"page"`
	PageSize      int                `json:"pageSize"`
}

// FilterOption is a value/label pair for a dashboard filter control
type FilterOption struct {
	Value any    `json:"value"`
	Label string `json:"label"`
}

// FilterCatalog is the filter option catalog served to the dashboard
type FilterCatalog struct {
	CSATOptions          []FilterOption `json:"csatOptions"`
	IntentOptions        []string       `json:"intentOptions"`
	ChannelOptions       []FilterOption `json:"channelOptions"`
	AgentVersionOptions  []string       `json:"agentVersionOptions"`
	PromptVersionOptions []string       `json:"promptVersionOptions"`
	KBVersionOptions     []string       `json:"kbVersionOptions"`
	OutcomeOptions       []FilterOption `json:"outcomeOptions"`
}
