package service

import (
	"context"
	"io"
	"strings"

	"github.com/hirehive/hirehive/internal/apperror"
	"github.com/hirehive/hirehive/internal/model"
	"github.com/hirehive/hirehive/internal/repository"
	"github.com/hirehive/hirehive/internal/storage"
)

// MaxResumeSize is the largest resume upload accepted, in bytes. The HTTP
// layer additionally caps the request body so oversized uploads are cut off
// at the wire.
const MaxResumeSize = 5 << 20

// UserService handles job seeker profiles and resume uploads.
type UserService struct {
	users    repository.UserRepository
	uploader storage.Uploader
}

func NewUserService(users repository.UserRepository, uploader storage.Uploader) *UserService {
	return &UserService{users: users, uploader: uploader}
}

// GetProfile fetches the authenticated seeker's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// UpdateResume uploads a new resume and replaces the stored URL. Accepts
// PDFs and images; the previous resume is not deleted from the store, only
// unlinked.
func (s *UserService) UpdateResume(ctx context.Context, userID string, file io.Reader, size int64, contentType string) (*model.User, error) {
	if file == nil {
		return nil, apperror.ValidationFailed("resume", "resume file is required")
	}
	if size > MaxResumeSize {
		return nil, apperror.ValidationFailed("resume", "resume must be 5 MB or smaller")
	}
	if contentType != "application/pdf" && !strings.HasPrefix(contentType, "image/") {
		return nil, apperror.ValidationFailed("resume", "resume must be a PDF or an image")
	}

	// Fetch first so an unknown user fails before we pay for the upload.
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, file, storage.FolderResumes)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateResume(ctx, userID, url); err != nil {
		return nil, err
	}
	user.ResumeURL = url
	return user, nil
}
