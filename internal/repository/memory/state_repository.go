package memory

import (
	"strconv"

	"notibot-be/internal/conversation"

	"github.com/patrickmn/go-cache"
)

// StateRepository keeps per-user conversation state in process memory.
// Flows have no timeout: a stale flow persists until the user cancels or
// completes it, so entries never expire.
type StateRepository struct {
	cache *cache.Cache
}

func NewStateRepository() *StateRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &StateRepository{
		cache: c,
	}
}

func (r *StateRepository) Save(state *conversation.State) {
	r.cache.Set(key(state.UserID), state, cache.NoExpiration)
}

func (r *StateRepository) Get(userID int64) (*conversation.State, bool) {
	if x, found := r.cache.Get(key(userID)); found {
		return x.(*conversation.State), true
	}
	return nil, false
}

func (r *StateRepository) Delete(userID int64) {
	r.cache.Delete(key(userID))
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
