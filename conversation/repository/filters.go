package repository

import (
	"strings"
)

// Filters captures the optional conversation list parameters. Zero values
// mean "not supplied"; only predicate shape depends on which fields are set,
// every literal is bound.
type Filters struct {
	Search   string
	Channels []string
	DateFrom string
	DateTo   string
}

// provenanceConditions are asserted on every conversation query regardless of
// caller filters: the row must carry a non-empty, object-shaped source_details
// payload tagged with the zoho source. Conversations from any other ingestion
// path are invisible to this API.
func provenanceConditions(alias string) []string {
	col := "source_details"
	if alias != "" {
		col = alias + "." + col
	}
	return []string{
		col + " IS NOT NULL",
		col + " NOT IN ('', 'null')",
		col + " LIKE '{%'",
		col + ` LIKE '%"source": "zoho"%'`,
	}
}

// WhereClause builds the conjunctive predicate over the aliased conversations
// table and the bound arguments in reference order. Date strings are passed
// through untouched; the warehouse rejects malformed ones.
func (f Filters) WhereClause() (string, []any) {
	conditions := provenanceConditions("wc")
	var args []any

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		conditions = append(conditions, `(
			LOWER(wc.conversation_id) LIKE ? OR
			LOWER(wc.conversation_evaluation->>'summary') LIKE ? OR
			LOWER(wc.conversation_evaluation->'theme'->>'main_theme') LIKE ?
		)`)
		args = append(args, pattern, pattern, pattern)
	}

	// Channel values expand to fixed literal sets; "website" covers the two
	// legacy channel tags. Unknown selectors are ignored.
	var channelConditions []string
	for _, ch := range f.Channels {
		switch ch {
		case "website":
			channelConditions = append(channelConditions, "wc.source_details->>'channel' IN ('zd:answerBot', 'web')")
		case "whatsapp":
			channelConditions = append(channelConditions, "wc.source_details->>'channel' = 'whatsapp'")
		}
	}
	if len(channelConditions) > 0 {
		conditions = append(conditions, "("+strings.Join(channelConditions, " OR ")+")")
	}

	if f.DateFrom != "" {
		conditions = append(conditions, "wc.created_at >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		conditions = append(conditions, "wc.created_at <= ?")
		args = append(args, f.DateTo)
	}

	return strings.Join(conditions, " AND "), args
}

// IsZero reports whether no optional filter was supplied
func (f Filters) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && len(f.Channels) == 0 && f.DateFrom == "" && f.DateTo == ""
}
