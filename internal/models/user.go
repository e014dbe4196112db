package models

import "time"

// User is an account record. The password is stored and compared as
// plaintext, matching the product's documented behavior; hardening the
// auth flow is out of scope.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
