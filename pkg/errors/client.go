// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
)

// Validation represents a caller error, such as an undeclared field name
// or a submission attempted from the wrong state.
type Validation struct {
	base
}

// Error returns the error message for Validation.
func (v Validation) Error() string {
	return v.error()
}

// NewValidation creates a new Validation error with the provided message.
func NewValidation(message string, err ...error) Validation {
	return Validation{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// NotFound represents a lookup of something the client does not know about.
type NotFound struct {
	base
}

// Error returns the error message for NotFound.
func (n NotFound) Error() string {
	return n.error()
}

// NewNotFound creates a new NotFound error with the provided message.
func NewNotFound(message string, err ...error) NotFound {
	return NotFound{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// RequestError is returned when the backend answers with a non-2xx status.
type RequestError struct {
	base
	StatusCode int
	StatusText string
}

// Error returns the error message for RequestError.
func (r RequestError) Error() string {
	return r.error()
}

// NewRequestError creates a new RequestError for the given HTTP status.
func NewRequestError(statusCode int, statusText string, err ...error) RequestError {
	return RequestError{
		base: base{
			message: fmt.Sprintf("request failed with status %d %s", statusCode, statusText),
			err:     errors.Join(err...),
		},
		StatusCode: statusCode,
		StatusText: statusText,
	}
}

// DecodeError is returned when a response body is not the JSON the caller expected.
type DecodeError struct {
	base
}

// Error returns the error message for DecodeError.
func (d DecodeError) Error() string {
	return d.error()
}

// NewDecodeError creates a new DecodeError with the provided message.
func NewDecodeError(message string, err ...error) DecodeError {
	return DecodeError{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}
