package narration

import (
	"context"
	"log/slog"
	"os/exec"
)

type runner func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// CommandSpeaker speaks by running an external text-to-speech program such
// as espeak, with the text as the last argument after "--" so it is never
// read as an option. Utterances are played one at a time from a bounded
// queue.
type CommandSpeaker struct {
	command   string
	args      []string
	available bool
	queue     chan string
	run       runner
	logger    *slog.Logger
}

// NewCommandSpeaker starts a speaker that stops when ctx is done. It is
// unavailable when command cannot be found on PATH.
func NewCommandSpeaker(ctx context.Context, command string, args []string, queueSize int, logger *slog.Logger) *CommandSpeaker {
	_, err := exec.LookPath(command)
	s := newCommandSpeaker(command, args, queueSize, runCommand, logger)
	s.available = command != "" && err == nil
	if !s.available {
		s.logger.Warn("speech command not found", "command", command)
		return s
	}
	go s.loop(ctx)
	return s
}

func newCommandSpeaker(command string, args []string, queueSize int, run runner, logger *slog.Logger) *CommandSpeaker {
	if queueSize < 1 {
		queueSize = 1
	}
	return &CommandSpeaker{
		command:   command,
		args:      args,
		available: true,
		queue:     make(chan string, queueSize),
		run:       run,
		logger:    logger.With("component", "command-speaker", "command", command),
	}
}

func (s *CommandSpeaker) IsAvailable() bool {
	return s.available
}

// Speak never blocks; when the queue is full the text is dropped.
func (s *CommandSpeaker) Speak(text string) {
	select {
	case s.queue <- text:
	default:
		s.logger.Warn("speech queue full, dropping utterance")
	}
}

func (s *CommandSpeaker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-s.queue:
			args := append(append([]string(nil), s.args...), "--", text)
			if err := s.run(ctx, s.command, args...); err != nil {
				s.logger.Error("speech command failed", "error", err)
			}
		}
	}
}
