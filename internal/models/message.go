package models

import "time"

// Origin identifies who authored a chat message.
type Origin int

const (
	OriginUser Origin = iota
	OriginAssistant
)

// Label is the heading shown above a message in the log.
func (o Origin) Label() string {
	if o == OriginUser {
		return "You"
	}
	return "AI Assistant"
}

func (o Origin) String() string {
	switch o {
	case OriginUser:
		return "user"
	case OriginAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Message is one entry of the rendered chat log.
type Message struct {
	Text   string
	Origin Origin
}

func UserMessage(text string) Message {
	return Message{Text: text, Origin: OriginUser}
}

func AssistantMessage(text string) Message {
	return Message{Text: text, Origin: OriginAssistant}
}

// QALog is a row of the server side question/answer audit log.
type QALog struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}
