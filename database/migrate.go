package database

import (
	"ecom-admin/domain"

	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.RolePrivilege{},
		&domain.Menu{},
		&domain.Submenu{},
		&domain.MenuPermission{},
		&domain.MenuGroup{},
	)
}
