package backend

import "fmt"

// NetworkError means the request could not be sent or no response arrived.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ProtocolError means a response arrived but was not in the expected shape.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error during %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// BusinessError means the backend explicitly refused the operation, e.g.
// insufficient stock. Message is user-facing and shown verbatim.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}
