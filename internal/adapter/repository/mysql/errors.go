package mysql

import (
	"errors"

	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error onto a domain sentinel.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

func duplicate(err, domainErr error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainErr
	}
	return err
}
