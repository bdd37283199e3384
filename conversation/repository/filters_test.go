package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClause_ProvenanceAlwaysPresent(t *testing.T) {
	where, args := Filters{}.WhereClause()

	assert.Contains(t, where, "wc.source_details IS NOT NULL")
	assert.Contains(t, where, "wc.source_details NOT IN ('', 'null')")
	assert.Contains(t, where, "wc.source_details LIKE '{%'")
	assert.Contains(t, where, `wc.source_details LIKE '%"source": "zoho"%'`)
	assert.Empty(t, args)
}

func TestWhereClause_Search(t *testing.T) {
	where, args := Filters{Search: "  Visa Query  "}.WhereClause()

	// one lowercased pattern bound once per searched column
	require.Len(t, args, 3)
	for _, arg := range args {
		assert.Equal(t, "%visa query%", arg)
	}
	assert.Contains(t, where, "LOWER(wc.conversation_id) LIKE ?")
	assert.Contains(t, where, "LOWER(wc.conversation_evaluation->>'summary') LIKE ?")
	assert.Contains(t, where, "LOWER(wc.conversation_evaluation->'theme'->>'main_theme') LIKE ?")
}

func TestWhereClause_BlankSearchIgnored(t *testing.T) {
	where, args := Filters{Search: "   "}.WhereClause()

	assert.NotContains(t, where, "LIKE ?")
	assert.Empty(t, args)
}

func TestWhereClause_Channels(t *testing.T) {
	t.Run("website expands to the legacy channel tags", func(t *testing.T) {
		where, args := Filters{Channels: []string{"website"}}.WhereClause()
		assert.Contains(t, where, "wc.source_details->>'channel' IN ('zd:answerBot', 'web')")
		assert.Empty(t, args)
	})

	t.Run("whatsapp matches exactly", func(t *testing.T) {
		where, _ := Filters{Channels: []string{"whatsapp"}}.WhereClause()
		assert.Contains(t, where, "wc.source_details->>'channel' = 'whatsapp'")
	})

	t.Run("multiple channels are OR-joined", func(t *testing.T) {
		where, _ := Filters{Channels: []string{"website", "whatsapp"}}.WhereClause()
		assert.Contains(t, where, "IN ('zd:answerBot', 'web') OR wc.source_details->>'channel' = 'whatsapp'")
	})

	t.Run("unknown channel selector contributes nothing", func(t *testing.T) {
		base, _ := Filters{}.WhereClause()
		where, args := Filters{Channels: []string{"telegram"}}.WhereClause()
		assert.Equal(t, base, where)
		assert.Empty(t, args)
	})
}

func TestWhereClause_DateBounds(t *testing.T) {
	where, args := Filters{DateFrom: "2026-01-01", DateTo: "2026-01-31"}.WhereClause()

	assert.Contains(t, where, "wc.created_at >= ?")
	assert.Contains(t, where, "wc.created_at <= ?")
	require.Len(t, args, 2)
	assert.Equal(t, "2026-01-01", args[0])
	assert.Equal(t, "2026-01-31", args[1])
}

func TestWhereClause_ArgOrderMatchesPlaceholders(t *testing.T) {
	filters := Filters{
		Search:   "refund",
		Channels: []string{"whatsapp"},
		DateFrom: "2026-02-01",
		DateTo:   "2026-02-28",
	}

	where, args := filters.WhereClause()

	require.Len(t, args, 5)
	assert.Equal(t, "%refund%", args[0])
	assert.Equal(t, "%refund%", args[2])
	assert.Equal(t, "2026-02-01", args[3])
	assert.Equal(t, "2026-02-28", args[4])
	assert.Equal(t, len(args), strings.Count(where, "?"))
}

func TestWhereClause_ConditionsAreConjoined(t *testing.T) {
	where, _ := Filters{Search: "x", DateFrom: "2026-01-01"}.WhereClause()

	// four provenance predicates plus search plus the date bound
	assert.Equal(t, 5, strings.Count(where, " AND "))
}

func TestProvenanceConditions_UnaliasedForMessageQueries(t *testing.T) {
	conditions := provenanceConditions("")

	require.Len(t, conditions, 4)
	for _, condition := range conditions {
		assert.True(t, strings.HasPrefix(condition, "source_details"), condition)
	}
}

func TestFiltersIsZero(t *testing.T) {
	assert.True(t, Filters{}.IsZero())
	assert.True(t, Filters{Search: "  "}.IsZero())
	assert.False(t, Filters{Channels: []string{"website"}}.IsZero())
	assert.False(t, Filters{DateTo: "2026-03-01"}.IsZero())
}
