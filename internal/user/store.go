package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrUsernameTaken = errors.New("username already exists")

// Exists reports whether any account has been created yet.
func Exists(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create hashes the password and stores a new account.
func Create(db *gorm.DB, username, name, password string, role Role) (*User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := User{Username: username, Name: name, PasswordHash: hash, Role: role}
	if err := db.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &u, nil
}
