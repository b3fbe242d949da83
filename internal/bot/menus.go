package bot

import (
	"context"
	"strings"

	"notibot-be/internal/chat"
	"notibot-be/internal/entity"
	"notibot-be/internal/pkg/boterr"

	"github.com/google/uuid"
)

func (r *Router) handleListNotes(ctx context.Context, ev chat.Event, user *entity.User) error {
	notes, err := r.noteService.List(ctx, user.Id)
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		return r.send(ctx, ev, chat.WithKeyboard(msgNoNotes, chat.Keyboard{backRow(cbNotes)}))
	}

	// One message per note so each carries its own action buttons.
	for _, note := range notes {
		if err := r.send(ctx, ev, noteListItemReply(note)); err != nil {
			return err
		}
	}
	return r.send(ctx, ev, chat.WithKeyboard(msgPickNote, chat.Keyboard{backRow(cbNotes)}))
}

func (r *Router) handleListGoals(ctx context.Context, ev chat.Event, user *entity.User) error {
	goals, err := r.goalService.List(ctx, user.Id)
	if err != nil {
		return err
	}
	return r.send(ctx, ev, goalListReply(goals))
}

func (r *Router) handleDeleteNote(ctx context.Context, ev chat.Event, user *entity.User) error {
	id, err := callbackUUID(ev.Callback, prefixDeleteNote)
	if err != nil {
		return err
	}

	if err := r.noteService.Delete(ctx, user.Id, id); err != nil {
		if boterr.KindOf(err) == boterr.KindNotFound {
			if sendErr := r.send(ctx, ev, chat.Text("❌ "+userMessage(err))); sendErr != nil {
				return sendErr
			}
			return r.send(ctx, ev, notesMenuReply())
		}
		return err
	}

	if err := r.send(ctx, ev, chat.Text(msgNoteDeleted)); err != nil {
		return err
	}
	return r.send(ctx, ev, notesMenuReply())
}

func (r *Router) handleDeleteGoal(ctx context.Context, ev chat.Event, user *entity.User) error {
	id, err := callbackUUID(ev.Callback, prefixDeleteGoal)
	if err != nil {
		return err
	}

	if err := r.goalService.Delete(ctx, user.Id, id); err != nil {
		if boterr.KindOf(err) == boterr.KindNotFound {
			if sendErr := r.send(ctx, ev, chat.Text("❌ "+userMessage(err))); sendErr != nil {
				return sendErr
			}
			return r.send(ctx, ev, goalsMenuReply())
		}
		return err
	}

	if err := r.send(ctx, ev, chat.Text(msgGoalDeleted)); err != nil {
		return err
	}
	return r.send(ctx, ev, goalsMenuReply())
}

// handleAddImage marks the note the next uploaded photo should attach to.
func (r *Router) handleAddImage(ctx context.Context, ev chat.Event) error {
	id, err := callbackUUID(ev.Callback, prefixAddImage)
	if err != nil {
		return err
	}
	r.conversations.SetPendingImageNote(ev.Sender.TelegramID, id)
	return r.send(ctx, ev, chat.Text(msgImagePrompt))
}

func (r *Router) handleShowImage(ctx context.Context, ev chat.Event, user *entity.User) error {
	id, err := callbackUUID(ev.Callback, prefixShowImage)
	if err != nil {
		return err
	}

	image, note, err := r.noteService.ImageFor(ctx, user.Id, id)
	if err != nil {
		if boterr.KindOf(err) == boterr.KindNotFound {
			if sendErr := r.send(ctx, ev, chat.Text("❌ "+userMessage(err))); sendErr != nil {
				return sendErr
			}
			return r.send(ctx, ev, notesMenuReply())
		}
		return err
	}

	caption := "📷 Image"
	if note != nil {
		caption = "📷 Image for note:\n" + note.Content
	}
	return r.send(ctx, ev, chat.Reply{
		Text:        caption,
		PhotoFileID: image.FileId,
		Keyboard:    chat.Keyboard{chat.Row(chat.Btn("📋 My notes", cbListNotes))},
	})
}

// handlePhoto attaches an uploaded photo to the marked note. Without a
// marker the photo is not persisted; the user is pointed at the note list
// instead.
func (r *Router) handlePhoto(ctx context.Context, ev chat.Event, user *entity.User) error {
	noteId, ok := r.conversations.TakePendingImageNote(ev.Sender.TelegramID)
	if !ok {
		return r.send(ctx, ev, chat.Text(msgImageNoTarget))
	}

	if err := r.noteService.AttachImage(ctx, user.Id, noteId, ev.PhotoFileID, strings.TrimSpace(ev.Caption)); err != nil {
		return err
	}
	return r.send(ctx, ev, chat.WithKeyboard(msgImageAttached, chat.Keyboard{
		chat.Row(chat.Btn("📋 My notes", cbListNotes), chat.Btn("🔙 Back", cbNotes)),
	}))
}

func callbackUUID(callback, prefix string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimPrefix(callback, prefix))
	if err != nil {
		return uuid.Nil, boterr.Validation("malformed record reference")
	}
	return id, nil
}
