package gemini

import (
	"errors"
	"fmt"
)

// TransportError means the model service could not be reached or rejected
// the call.
type TransportError struct {
	Model string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gemini transport error (model %s): %v", e.Model, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// MalformedResponseError means the service answered with an unexpected shape.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed gemini response: " + e.Reason
}

// NoImageDataError means an image call succeeded but carried no inline image.
type NoImageDataError struct {
	Parts int
}

func (e *NoImageDataError) Error() string {
	return fmt.Sprintf("no image data returned (%d parts inspected)", e.Parts)
}

// ServiceError is the insight client's single public failure type.
type ServiceError struct {
	Op    string
	Cause error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func IsTransport(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

func IsMalformedResponse(err error) bool {
	var target *MalformedResponseError
	return errors.As(err, &target)
}

func IsNoImageData(err error) bool {
	var target *NoImageDataError
	return errors.As(err, &target)
}

func IsService(err error) bool {
	var target *ServiceError
	return errors.As(err, &target)
}
