package connectors

import "fmt"

// OrderRejectedError is returned when the venue declines a money-moving call
// (place or cancel). Message carries the venue's text verbatim so the
// operator channel can report it unchanged. A failed placement is never
// reported as success.
type OrderRejectedError struct {
	Message string
}

func (e *OrderRejectedError) Error() string {
	return fmt.Sprintf("order rejected by venue: %s", e.Message)
}

// VenueError is a non-success response on a read-only call: the request
// reached the venue but the venue answered with an error for that query.
// Distinct from OrderRejectedError so "status unknown" never looks like
// "order may not have been placed".
type VenueError struct {
	Op      string
	Message string
}

func (e *VenueError) Error() string {
	return fmt.Sprintf("venue error on %s: %s", e.Op, e.Message)
}
