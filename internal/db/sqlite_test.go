package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "askbox.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestLogQuestionAnswer(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	entry, err := database.LogQuestionAnswer(ctx, "What is Go?", "A programming language.", ts)
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	logs, err := database.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "What is Go?", logs[0].Question)
	assert.Equal(t, "A programming language.", logs[0].Answer)
	assert.True(t, ts.Equal(logs[0].Timestamp))
}

func TestRecentLogs_NewestFirstAndLimited(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, q := range []string{"one", "two", "three"} {
		_, err := database.LogQuestionAnswer(ctx, q, "answer "+q, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
	}

	logs, err := database.RecentLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "three", logs[0].Question)
	assert.Equal(t, "two", logs[1].Question)
}

func TestSearchAnswers(t *testing.T) {
	database := newTestDatabase(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := database.LogQuestionAnswer(ctx, "How do goroutines work?", "They are scheduled by the Go runtime.", now)
	require.NoError(t, err)
	_, err = database.LogQuestionAnswer(ctx, "Best pasta recipe?", "Carbonara, obviously.", now.Add(time.Second))
	require.NoError(t, err)

	results, err := database.SearchAnswers(ctx, "goroutines?!", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "How do goroutines work?", results[0].Question)

	// porter stemming matches other word forms, answers are indexed too
	results, err = database.SearchAnswers(ctx, "scheduling", 3)
	require.NoError(t, err)
	require.Len(t, results, 1)

	results, err = database.SearchAnswers(ctx, "\"unbalanced ( quote", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = database.SearchAnswers(ctx, "?? !!", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchExpression(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a an it", ""},
		{"What is Go's GC?", `"what"`},
		{"cache Cache CACHE eviction", `"cache" OR "eviction"`},
		{`drop"table(x)`, `"drop" OR "table"`},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, matchExpression(tc.in), "input %q", tc.in)
	}
}
