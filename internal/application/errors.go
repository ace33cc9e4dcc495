package application

import (
	"errors"

	"github.com/oksasatya/jobboard/internal/domain/apperror"
	"github.com/oksasatya/jobboard/internal/domain/repository"
)

var (
	ErrInvalidCredentials = apperror.NewUnauthenticated("Invalid credentials")
	ErrEmailTaken         = apperror.NewConflict("User already exists")
	ErrWalletTaken        = apperror.NewConflict("Wallet address is already connected to another account")
	ErrAlreadyApplied     = apperror.NewConflict("Already applied to this job")
	ErrNotJobOwner        = apperror.NewForbidden("Only the job poster can do that")
)

// storeErr translates repository sentinels into the application taxonomy.
// resource names the document for not-found messages.
func storeErr(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NewNotFound(resource)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateWallet):
		return ErrWalletTaken
	case errors.Is(err, repository.ErrAlreadyApplied):
		return ErrAlreadyApplied
	case errors.Is(err, repository.ErrNotOwner):
		return ErrNotJobOwner
	case errors.Is(err, repository.ErrNoApplication):
		return apperror.NewNotFound("Application")
	}
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperror.NewInternal(err)
}
