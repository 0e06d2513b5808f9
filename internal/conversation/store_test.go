// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/tabchat/internal/model"
)

func texts(msgs []model.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

// =============================================================================
// SELECT TESTS
// =============================================================================

func TestStore_SelectSeedsWelcomeOnce(t *testing.T) {
	s := NewStore(Config{})

	require.True(t, s.Select(1))
	require.Equal(t, 1, s.ActiveID())

	msgs := s.Messages(1)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.DefaultWelcomeText, msgs[0].Text)
	assert.Equal(t, model.SenderBot, msgs[0].Sender)

	// Leaving and returning must not seed a second welcome.
	s.Select(2)
	s.Select(1)
	assert.Len(t, s.Messages(1), 1)
}

func TestStore_SelectActiveIsNoop(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)
	s.Append(1, model.NewUserMessage("hi"))

	calls := 0
	s.SetSelectCallback(func(int) { calls++ })

	assert.False(t, s.Select(1))
	assert.Equal(t, 0, calls)
	assert.Equal(t, []string{model.DefaultWelcomeText, "hi"}, texts(s.Messages(1)))
}

func TestStore_SelectDoesNotReseedExistingHistory(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)
	s.Append(1, model.NewUserMessage("first"))

	s.Select(2)
	s.Select(1)

	assert.Equal(t, []string{model.DefaultWelcomeText, "first"}, texts(s.Messages(1)))
}

func TestStore_CustomWelcomeText(t *testing.T) {
	s := NewStore(Config{WelcomeText: "Welcome aboard"})
	s.Select(4)

	assert.Equal(t, []string{"Welcome aboard"}, texts(s.Messages(4)))
}

func TestStore_SelectCallback(t *testing.T) {
	s := NewStore(Config{})

	var got []int
	s.SetSelectCallback(func(id int) {
		// Callback runs outside the lock.
		got = append(got, id, s.ActiveID())
	})

	s.Select(3)
	assert.Equal(t, []int{3, 3}, got)
}

// =============================================================================
// APPEND TESTS
// =============================================================================

func TestStore_AppendPreservesCallOrder(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)

	want := []string{model.DefaultWelcomeText}
	for i := 0; i < 20; i++ {
		text := fmt.Sprintf("message %d", i)
		require.True(t, s.Append(1, model.NewUserMessage(text)))
		want = append(want, text)
	}

	assert.Equal(t, want, texts(s.Messages(1)))
}

func TestStore_AppendUnknownChatIgnored(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)

	assert.False(t, s.Append(99, model.NewBotMessage("late reply")))
	assert.False(t, s.Has(99))
	assert.Empty(t, s.Messages(99))
}

func TestStore_AppendUnknownSenderRejected(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)

	msg := model.Message{Text: "from nowhere", Sender: model.Sender("system")}
	assert.False(t, s.Append(1, msg))
	assert.Equal(t, []string{model.DefaultWelcomeText}, texts(s.Messages(1)))
}

func TestStore_CountAndPreview(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)

	assert.Equal(t, 1, s.Count(1))
	assert.Equal(t, "Hello! I'm Gemini...", s.Preview(1, 20))

	s.Append(1, model.NewUserMessage("plan the trip\nday one: museums"))
	s.Append(1, model.NewBotMessage("Sure."))

	assert.Equal(t, 3, s.Count(1))
	assert.Equal(t, "plan the trip", s.Preview(1, 40))

	assert.Equal(t, 0, s.Count(9))
	assert.Equal(t, "", s.Preview(9, 40))
}

func TestStore_AppendToInactiveChat(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)
	s.Select(2)

	require.True(t, s.Append(1, model.NewBotMessage("reply for chat 1")))

	assert.Equal(t, 2, s.ActiveID())
	assert.Len(t, s.Messages(1), 2)
	assert.Len(t, s.ActiveMessages(), 1)
}

func TestStore_MessagesSnapshotIsolated(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)

	snap := s.Messages(1)
	snap[0].Text = "tampered"

	msgs := s.Messages(1)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.DefaultWelcomeText, msgs[0].Text)
}

// =============================================================================
// REMOVE TESTS
// =============================================================================

func TestStore_Remove(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)
	s.Select(2)
	require.Equal(t, 2, s.Len())

	s.Remove(1)

	assert.False(t, s.Has(1))
	assert.True(t, s.Has(2))
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Append(1, model.NewBotMessage("orphan")))
}

// =============================================================================
// CONCURRENCY TESTS
// =============================================================================

func TestStore_ConcurrentAppend(t *testing.T) {
	s := NewStore(Config{})
	s.Select(1)

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Append(1, model.NewBotMessage("x"))
			}
		}()
	}
	wg.Wait()

	assert.Len(t, s.Messages(1), 1+writers*perWriter)
}
