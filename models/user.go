package models

import "time"

// Role values stored on User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a blog author or reader. Passwords are stored as bcrypt hashes only.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Username  string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Name      *string   `gorm:"size:255" json:"name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Role      string    `gorm:"size:16;not null;default:user" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// UserSummary is the author projection embedded in blog and comment responses.
type UserSummary struct {
	Name  *string `json:"name"`
	Email string  `json:"email"`
	Bio   string  `json:"bio"`
}

// Summary returns the public author projection of u.
func (u User) Summary() UserSummary {
	return UserSummary{Name: u.Name, Email: u.Email, Bio: u.Bio}
}
