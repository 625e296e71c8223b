package domain

// APIError is a failure reported by the GameTrack backend itself, as opposed to
// a transport failure. Message is meant to be shown to the user as-is.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
