package client

import "fmt"

// ValidationError is raised before any request is sent, for input that
// can never succeed (e.g. an empty title).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// RequestError is a non-success HTTP status. Message carries the
// server's error field when the body had one, otherwise "HTTP {status}".
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// ParseError is a success response whose body could not be decoded.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable response: %s", e.Raw)
}
