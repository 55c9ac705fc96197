// Package commandtest provides a Caller that records replies for tests.
package commandtest

import (
	"sync"

	"github.com/OCharnyshevich/treasure-chest/internal/server/player"
)

// Message is one recorded reply.
type Message struct {
	Kind string // "success", "error" or "info"
	Text string
}

// Recorder is a command.Caller that keeps every reply in order.
type Recorder struct {
	mu       sync.Mutex
	player   *player.Player
	messages []Message
}

// NewRecorder wraps p.
func NewRecorder(p *player.Player) *Recorder {
	return &Recorder{player: p}
}

func (r *Recorder) Player() *player.Player { return r.player }

func (r *Recorder) SendSuccess(msg string) { r.add("success", msg) }
func (r *Recorder) SendError(msg string)   { r.add("error", msg) }
func (r *Recorder) SendInfo(msg string)    { r.add("info", msg) }

func (r *Recorder) add(kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Kind: kind, Text: text})
}

// Messages returns a copy of the recorded replies.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Last returns the most recent reply, or the zero Message.
func (r *Recorder) Last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}
	}
	return r.messages[len(r.messages)-1]
}

// Reset drops recorded replies.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
