// Package storage is the file storage adapter: binary uploads (resumes,
// company logos) go to a managed object store and only the resulting URL
// is kept locally.
package storage

import (
	"context"
	"io"

	"github.com/hirehive/hirehive/internal/apperror"
)

// Folders the application uploads into. Kept as constants so the bucket
// layout is visible in one place.
const (
	FolderResumes = "resumes"
	FolderLogos   = "logos"
)

// Uploader transfers a file to the object store and returns its public URL.
//
// Implementations must treat the upload as a fallible external call:
// bounded by a timeout, never retried. The caller decides what a failure
// means for the request.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string) (string, error)
}

// Disabled is an Uploader for deployments without object-store credentials.
// Every upload fails with an external-service error; the rest of the API
// keeps working.
type Disabled struct{}

var _ Uploader = Disabled{}

func (Disabled) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	return "", apperror.External("file storage", errNotConfigured)
}

var errNotConfigured = notConfiguredError{}

type notConfiguredError struct{}

func (notConfiguredError) Error() string { return "object store not configured" }
