package db

import (
	"agricredit-backend/internal/domain/account"
	"agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/document"
	"agricredit-backend/internal/domain/notification"
	"agricredit-backend/internal/domain/profile"
	"agricredit-backend/internal/domain/program"
	"agricredit-backend/internal/domain/user"

	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
func Models() []any {
	return []any{
		&profile.Permission{},
		&profile.Profile{},
		&user.User{},
		&program.Program{},
		&application.Application{},
		&account.Account{},
		&account.Payment{},
		&notification.Notification{},
		&document.Document{},
		&document.ApplicationDocument{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
