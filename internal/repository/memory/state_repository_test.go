package memory

import (
	"testing"

	"notibot-be/internal/conversation"

	"github.com/stretchr/testify/assert"
)

func TestStateRepositoryRoundTrip(t *testing.T) {
	repo := NewStateRepository()

	_, found := repo.Get(1)
	assert.False(t, found)

	state := conversation.NewState(1)
	state.Mode = conversation.ModeAwaitingNote
	repo.Save(state)

	got, found := repo.Get(1)
	assert.True(t, found)
	assert.Same(t, state, got)
	assert.Equal(t, conversation.ModeAwaitingNote, got.Mode)
}

func TestStateRepositoryDelete(t *testing.T) {
	repo := NewStateRepository()
	repo.Save(conversation.NewState(5))

	repo.Delete(5)

	_, found := repo.Get(5)
	assert.False(t, found)
}

func TestStateRepositoryKeysByUser(t *testing.T) {
	repo := NewStateRepository()
	a := conversation.NewState(1)
	b := conversation.NewState(2)
	repo.Save(a)
	repo.Save(b)

	gotA, _ := repo.Get(1)
	gotB, _ := repo.Get(2)
	assert.Same(t, a, gotA)
	assert.Same(t, b, gotB)
}
