// internal/model/user.go
package model

import "gorm.io/gorm"

// User is the persisted identity record. Username and email are unique at
// the database level and compare case-sensitively on every driver: the
// mysql table is created with a binary collation (see pkg/db), sqlite
// compares BINARY by default. PasswordHash never contains the raw password.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}
