package service

import (
	"strconv"
	"strings"

	"github.com/Wakdeprathamesh-amber/Copilot-QA-Tool/conversation/models"
)

// MapChannel derives the public channel from the source_details payload.
// Everything that isn't explicitly whatsapp, including the legacy
// "zd:answerBot" and "web" tags and a missing payload, is the website channel.
func MapChannel(sd *models.SourceDetails) string {
	if sd == nil {
		return models.ChannelWebsite
	}
	if sd.Channel == "whatsapp" {
		return models.ChannelWhatsApp
	}
	return models.ChannelWebsite
}

// MapCSAT buckets the raw satisfaction score. Score 3 is neutral and is
// reported as no rating, as are absent, zero and unparseable values.
func MapCSAT(ev *models.Evaluation) *string {
	if ev == nil {
		return nil
	}
	score, ok := satisfactionScore(ev.CustomerSatisfaction)
	if !ok {
		return nil
	}
	switch {
	case score >= 4:
		return strPtr(models.CSATGood)
	case score <= 2:
		return strPtr(models.CSATBad)
	default:
		return nil
	}
}

// satisfactionScore coerces the loosely-typed satisfaction value to an int.
// Empty and zero values count as unrated.
func satisfactionScore(v any) (int, bool) {
	switch s := v.(type) {
	case float64:
		if s == 0 {
			return 0, false
		}
		return int(s), true
	case string:
		if s == "" {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// MapOutcome derives the conversation outcome from the evaluation's
// resolution status. Anything unrecognized, including a missing evaluation
// and open conversations, is ongoing.
func MapOutcome(ev *models.Evaluation, status string) string {
	if ev != nil {
		switch ev.ResolutionStatus {
		case "resolved":
			return models.OutcomeQualified
		case "unresolved":
			return models.OutcomeDropped
		case "escalated":
			return models.OutcomeEscalated
		}
	}
	_ = status // open and everything else both fall through to ongoing
	return models.OutcomeOngoing
}

// MapSender derives the message sender role from direction and agent
// presence. Outbound messages are the AI unless a human agent sent them.
func MapSender(direction string, agentID *string) string {
	hasAgent := agentID != nil && *agentID != ""
	switch direction {
	case "inbound":
		return models.SenderUser
	case "outbound":
		if hasAgent {
			return models.SenderHuman
		}
		return models.SenderAI
	}
	if hasAgent {
		return models.SenderHuman
	}
	return models.SenderUser
}

// BuildConversationView maps an aggregated warehouse row to the external
// representation. includeAggregates controls whether the list-only
// messageCount/lastMessageTime fields are populated.
func BuildConversationView(row *models.ConversationRow, includeAggregates bool) models.ConversationView {
	evaluation := models.ParseEvaluation(row.ConversationEvaluation)
	sourceDetails := models.ParseSourceDetails(row.SourceDetails)

	var detectedIntent *string
	var autoSummary *string
	if evaluation != nil {
		if evaluation.Theme != nil {
			detectedIntent = evaluation.Theme.MainTheme
		}
		autoSummary = evaluation.Summary
	}

	handover := row.HasHumanAgent == 1
	interaction := models.InteractionAIOnly
	if handover {
		interaction = models.InteractionHandover
	}

	view := models.ConversationView{
		ID:               row.ConversationID,
		Channel:          MapChannel(sourceDetails),
		StartTime:        row.CreatedAt,
		EndTime:          row.LastMessageTime,
		ParticipantCount: 1,
		AIAgentVersion:   models.PlaceholderVersion,
		PromptVersion:    models.PlaceholderVersion,
		KBVersion:        models.PlaceholderVersion,
		DetectedIntent:   detectedIntent,
		Outcome:          MapOutcome(evaluation, row.Status),
		CSAT:             MapCSAT(evaluation),
		HumanHandover:    handover,
		InteractionType:  interaction,
		AutoSummary:      autoSummary,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.CreatedAt,
	}

	if includeAggregates {
		count := row.MessageCount
		view.MessageCount = &count
		view.LastMessageTime = row.LastMessageTime
	}

	return view
}

// BuildMessageView maps a raw message row to the transcript representation
func BuildMessageView(row models.MessageRow) models.MessageView {
	sender := MapSender(row.Direction, row.AgentID)

	content := ""
	if row.MessageContent != nil {
		content = *row.MessageContent
	}

	messageType := "file"
	if row.MessageType == "text" {
		messageType = "text"
	}

	var traceID *string
	if sender == models.SenderAI {
		traceID = strPtr(models.PlaceholderTraceID)
	}

	return models.MessageView{
		ID:               strconv.FormatInt(row.ID, 10),
		ConversationID:   row.ConversationID,
		Sender:           sender,
		Content:          content,
		Timestamp:        row.CreatedAt,
		MessageType:      messageType,
		LangsmithTraceID: traceID,
	}
}

func strPtr(s string) *string {
	return &s
}
