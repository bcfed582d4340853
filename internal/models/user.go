// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the Inkwell blog backend. Passwords are
// stored only as bcrypt hashes and are never serialized.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"size:80;unique;not null" json:"username"`
	Email     string     `gorm:"size:120;unique;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool       `gorm:"default:false" json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Posts     []BlogPost `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}
