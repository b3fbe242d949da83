package chat

// EventKind discriminates the inbound event variants the router accepts.
type EventKind int

const (
	EventCommand EventKind = iota
	EventCallback
	EventText
	EventPhoto
)

// Sender identifies the user behind an event, as reported by the platform.
type Sender struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

// Event is one inbound interaction. Only the fields of the active Kind
// are meaningful.
type Event struct {
	Kind   EventKind
	Sender Sender
	ChatID int64

	// EventCommand
	Command string
	Args    []string

	// EventCallback
	Callback   string
	CallbackID string // platform ack handle

	// EventText
	Text string

	// EventPhoto
	PhotoFileID string
	Caption     string
}
