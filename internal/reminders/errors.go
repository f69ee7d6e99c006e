package reminders

import "errors"

// ErrNoGameSelected is returned when a dispatch names no game.
var ErrNoGameSelected = errors.New("no game selected")

// ErrInvalidGameID is returned when the selected game id is not a UUID.
var ErrInvalidGameID = errors.New("invalid game id")

// ErrGameNotFound is returned when the selected game is not in the
// upcoming candidate set.
var ErrGameNotFound = errors.New("game not found")

// ErrNoGroupConfigured is returned by the scheduler when it is started
// without a group chat id. Automatic dispatch is group-only; refusing to
// start keeps a misconfigured job from broadcasting to every contact.
var ErrNoGroupConfigured = errors.New("reminder scheduler requires a group chat id")

// ErrNoRecipients is returned by broadcast mode when no registered
// contact has a phone number. Callers surface it as a warning, not a
// hard failure.
var ErrNoRecipients = errors.New("no registered contacts with a phone number")
