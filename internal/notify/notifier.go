// Package notify carries transient user-facing notices, the terminal
// equivalent of the storefront's toast popups. Failures inside the stores
// degrade to a notice here instead of propagating to the caller.
package notify

import "github.com/rs/zerolog/log"

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notices to the global zerolog logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	log.Info().Str("notice", "success").Msg(msg)
}

func (LogNotifier) Error(msg string) {
	log.Warn().Str("notice", "error").Msg(msg)
}

// Discard drops all notices. Handy as a default in tests.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
