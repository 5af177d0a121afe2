package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fetch failures
type ErrorKind string

const (
	// KindTransport means the request could not be sent or no successful response was received
	KindTransport ErrorKind = "transport"
	// KindDecode means the response body did not match the expected shape
	KindDecode ErrorKind = "decode"
	// KindDataShape means well-formed data violated a documented invariant
	KindDataShape ErrorKind = "data_shape"
	// KindEncode means a decoded bitmap could not be turned into a renderer handle
	KindEncode ErrorKind = "encode"
)

// FetchError is returned by fetchers and the normalizer
type FetchError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// NewFetchError creates a new fetch error of the given kind
func NewFetchError(kind ErrorKind, op string, err error) *FetchError {
	return &FetchError{Kind: kind, Op: op, Err: err}
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err contains a FetchError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var fe *FetchError
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Kind == kind
}
