package chat

// Button is one inline keyboard entry: a label plus an opaque callback id.
type Button struct {
	Label string
	Data  string
}

// Keyboard is an ordered list of button rows; order is significant.
type Keyboard [][]Button

// Reply is one outbound message. When PhotoFileID is set the text is sent
// as the photo caption.
type Reply struct {
	Text        string
	Keyboard    Keyboard
	PhotoFileID string

	// QuickReplies renders a persistent reply keyboard instead of an
	// inline one (used by the main menu).
	QuickReplies []string
}

func Text(text string) Reply {
	return Reply{Text: text}
}

func WithKeyboard(text string, kb Keyboard) Reply {
	return Reply{Text: text, Keyboard: kb}
}

func Row(buttons ...Button) []Button {
	return buttons
}

func Btn(label, data string) Button {
	return Button{Label: label, Data: data}
}
