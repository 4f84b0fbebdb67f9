package protocol

import "fmt"

const (
	// Message could not be parsed or failed schema validation.
	ErrBadRequest = "E_BAD_REQUEST"
	// HELLO named a protocol version the server does not speak.
	ErrVersion = "E_PROTO_VERSION"
	// Valid message sent at the wrong point of the conversation.
	ErrUnexpected = "E_UNEXPECTED"
	// HELLO asked for a variant that is not registered.
	ErrUnknownVariant = "E_UNKNOWN_VARIANT"
	ErrInternal       = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:     {},
	ErrVersion:        {},
	ErrUnexpected:     {},
	ErrUnknownVariant: {},
	ErrInternal:       {},
}

// IsKnownCode reports whether code is one of the E_* codes above.
func IsKnownCode(code string) bool {
	_, ok := knownCodes[code]
	return ok
}

// Error is a protocol failure that can be reported to the client.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("protocol: %s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Msg converts the error to an ERROR message.
func (e *Error) Msg() ErrorMsg {
	return NewError(e.Code, e.Err.Error())
}
