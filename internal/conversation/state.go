package conversation

import "github.com/google/uuid"

// State is the full per-user conversation state. It lives in process
// memory only and is created lazily on first interaction.
type State struct {
	UserID  int64
	Mode    Mode
	Scratch Scratch

	// PendingImageNote marks the note an uploaded photo should attach to.
	// Unlike Scratch it is set from the note list while the user is Idle,
	// and consumed by the next image upload.
	PendingImageNote *uuid.UUID
}

func NewState(userID int64) *State {
	return &State{
		UserID: userID,
		Mode:   ModeIdle,
	}
}
