package domain

import "errors"

// Sentinel errors returned by storage operations. Callers match them with
// errors.Is; the wrapped message carries the detail.
var (
	// ErrNotFound is returned when a database, collection or registry entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a registry entry is already present.
	ErrAlreadyExists = errors.New("already exists")

	// ErrParse is returned when stored or supplied JSON text is malformed.
	ErrParse = errors.New("parse error")

	// ErrFormat is returned when well-formed data has the wrong shape.
	ErrFormat = errors.New("format error")

	// ErrNameTooLong is returned when a composed path exceeds the configured bound.
	ErrNameTooLong = errors.New("name too long")

	// ErrInvalidName is returned for empty names or names that would escape their directory.
	ErrInvalidName = errors.New("invalid name")

	// ErrMalformedPayload is returned when insert or action data has the wrong shape.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrInvalidCondition is returned when a condition cannot be parsed.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrInvalidAction is returned when an action cannot be parsed.
	ErrInvalidAction = errors.New("invalid action")

	// ErrIO is returned when the filesystem fails.
	ErrIO = errors.New("io error")
)

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrNotFound, "NotFound"},
	{ErrAlreadyExists, "AlreadyExists"},
	{ErrParse, "ParseError"},
	{ErrFormat, "FormatError"},
	{ErrNameTooLong, "NameTooLong"},
	{ErrInvalidName, "InvalidName"},
	{ErrMalformedPayload, "MalformedPayload"},
	{ErrInvalidCondition, "InvalidCondition"},
	{ErrInvalidAction, "InvalidAction"},
	{ErrIO, "IOError"},
}

// KindOf returns the taxonomy name of err, or "Unknown" when err wraps none of
// the sentinels. A nil error has kind "".
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "Unknown"
}
