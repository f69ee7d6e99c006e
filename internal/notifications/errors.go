package notifications

import "errors"

// ErrCredentialsMissing is returned when neither the per-call override nor
// the process-wide defaults resolve to usable Green API credentials.
var ErrCredentialsMissing = errors.New("green api credentials not configured")

// ErrNoDestination is returned when a send names neither a phone number
// nor a group chat id.
var ErrNoDestination = errors.New("either phone or groupChatId must be provided")
