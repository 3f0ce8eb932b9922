// Package narration reads fact text aloud when the host can.
package narration

import "log/slog"

// Speaker is a speech capability.
type Speaker interface {
	IsAvailable() bool
	// Speak queues text for vocalization and returns immediately.
	Speak(text string)
}

// Unsupported is the speaker used when no speech capability exists.
type Unsupported struct{}

func (Unsupported) IsAvailable() bool { return false }
func (Unsupported) Speak(string)      {}

// Adapter vocalizes text through a Speaker, logging instead of failing when
// speech is unavailable.
type Adapter struct {
	speaker Speaker
	logger  *slog.Logger
}

func NewAdapter(speaker Speaker, logger *slog.Logger) *Adapter {
	if speaker == nil {
		speaker = Unsupported{}
	}
	return &Adapter{
		speaker: speaker,
		logger:  logger.With("component", "narration"),
	}
}

// IsAvailable reports whether speech is supported.
func (a *Adapter) IsAvailable() bool {
	return a.speaker.IsAvailable()
}

// Speak is fire-and-forget.
func (a *Adapter) Speak(text string) {
	if text == "" {
		return
	}
	if !a.speaker.IsAvailable() {
		a.logger.Warn("text-to-speech not supported")
		return
	}
	a.speaker.Speak(text)
}
