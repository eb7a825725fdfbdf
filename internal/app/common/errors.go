// Package common holds the error taxonomy shared by the store, the
// repositories and the HTTP layer.
package common

import (
	"errors"
	"fmt"
)

// ConfigurationError means required environment credentials are missing.
// It is surfaced on first store access and never retried.
type ConfigurationError struct {
	Missing string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Missing)
}

// ConnectionError means the store client could not be constructed or a
// database/collection could not be provisioned.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NotFoundError means an update or delete targeted a document that does
// not exist. Reads that find nothing return nil instead.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s/%s not found", e.Collection, e.ID)
}

// StorageError is any other failure from the underlying store, carrying
// the collection and operation attempted.
type StorageError struct {
	Collection string
	Op         string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s.%s: %v", e.Collection, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ExternalAPIError is a non-2xx or non-JSON response from an outbound
// collaborator (places API, generative text service).
type ExternalAPIError struct {
	Service  string
	Endpoint string
	Status   int
	Err      error
}

func (e *ExternalAPIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %v", e.Service, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s %s returned status %d", e.Service, e.Endpoint, e.Status)
}

func (e *ExternalAPIError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsExternalAPI(err error) bool {
	var ae *ExternalAPIError
	return errors.As(err, &ae)
}
