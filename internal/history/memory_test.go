package history

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_AddAndList(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.AddIssue(ctx, NewIssue("user123", fmt.Sprintf("Message %d", i), "reply", nil)))
	}

	issues, err := store.ListIssues(ctx, "user123", 0)
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, "Message 3", issues[0].UserMessage, "newest first")
	assert.Equal(t, "Message 1", issues[2].UserMessage)

	limited, err := store.ListIssues(ctx, "user123", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "Message 3", limited[0].UserMessage)
	assert.Equal(t, "Message 2", limited[1].UserMessage)
}

func TestMemoryStore_PerUserLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(3)

	for i := 1; i <= 5; i++ {
		require.NoError(t, store.AddIssue(ctx, NewIssue("user123", fmt.Sprintf("Message %d", i), "reply", nil)))
	}

	issues, err := store.ListIssues(ctx, "user123", 0)
	require.NoError(t, err)

	var got []string
	for _, issue := range issues {
		got = append(got, issue.UserMessage)
	}
	assert.Equal(t, []string{"Message 5", "Message 4", "Message 3"}, got)
}

func TestMemoryStore_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(10)

	issue := NewIssue("user1", "cough", "reply", nil)
	require.NoError(t, store.AddIssue(ctx, issue))

	other, err := store.ListIssues(ctx, "user2", 0)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = store.GetIssue(ctx, "user2", issue.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.GetIssue(ctx, "user1", issue.ID)
	require.NoError(t, err)
	assert.Equal(t, issue, got)

	store.Clear("user1")
	_, err = store.GetIssue(ctx, "user1", issue.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	_, err := NewMemoryStore(1).GetIssue(context.Background(), "user1", uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewMemoryStore(1)
	assert.ErrorIs(t, store.AddIssue(ctx, NewIssue("u", "m", "r", nil)), context.Canceled)
	_, err := store.ListIssues(ctx, "u", 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.AddIssue(ctx, NewIssue("user123", fmt.Sprintf("m%d", i), "r", nil))
			_, _ = store.ListIssues(ctx, "user123", 5)
		}(i)
	}
	wg.Wait()

	issues, err := store.ListIssues(ctx, "user123", 0)
	require.NoError(t, err)
	assert.Len(t, issues, 50)
}

func TestNewIssue(t *testing.T) {
	issue := NewIssue("user1", "Severe headache every day since yesterday", "reply", nil)

	assert.NotEqual(t, uuid.Nil, issue.ID)
	assert.Equal(t, "severe", issue.ReportedSeverity)
	assert.Equal(t, "daily", issue.Frequency)
	assert.Equal(t, "yesterday", issue.Onset)
	assert.False(t, issue.CreatedAt.IsZero())
	assert.Nil(t, issue.Insight)
}
