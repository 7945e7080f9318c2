// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package responseerror

import (
	"errors"
	"net/http"
)

// Failure is the classification of an error that reached the error responder.
//
// It is sealed: the only implementations are Classified and Unclassified.
type Failure interface {
	// StatusCode is the HTTP status to respond with.
	StatusCode() int
	// ErrorMessage is the text for the "error" field of the response body.
	ErrorMessage() string

	failure()
}

// Classified is a failure raised deliberately through a *ResponseError.
type Classified struct {
	Status  int
	Message string
}

// Unclassified is any other failure.
type Unclassified struct {
	Message string
}

func (c Classified) StatusCode() int      { return c.Status }
func (c Classified) ErrorMessage() string { return c.Message }
func (Classified) failure()               {}

func (Unclassified) StatusCode() int        { return http.StatusInternalServerError }
func (u Unclassified) ErrorMessage() string { return u.Message }
func (Unclassified) failure()               {}

// Classify sorts err into Classified or Unclassified.
//
// A *ResponseError anywhere in err's chain makes it Classified. Classify returns
// nil for a nil error.
func Classify(err error) Failure {
	if err == nil {
		return nil
	}

	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr != nil {
		return Classified{Status: respErr.StatusCode(), Message: respErr.Message}
	}

	return Unclassified{Message: err.Error()}
}
