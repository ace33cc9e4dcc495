package mongodb

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/jobboard/internal/domain/repository"
)

const duplicateKeyCode = 11000

// isDuplicateKeyErr detects E11000 across write, bulk and command errors.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == duplicateKeyCode {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

// userWriteErr maps a duplicate key on the users collection to the sentinel
// for the index that fired. Other errors pass through.
func userWriteErr(err error) error {
	if !isDuplicateKeyErr(err) {
		return err
	}
	if strings.Contains(err.Error(), "walletAddress") {
		return repository.ErrDuplicateWallet
	}
	return repository.ErrDuplicateEmail
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}
