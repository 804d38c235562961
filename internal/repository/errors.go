package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateKey signals a uniqueness constraint violation at the store.
// Uniqueness invariants live in the database so that concurrent
// check-then-create sequences cannot both succeed.
var ErrDuplicateKey = errors.New("duplicate key")

func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}

	// Older sqlite/postgres driver combinations surface the raw message.
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return ErrDuplicateKey
	}

	return err
}
