package models

import "time"

type User struct {
	ID        int64
	Email     string
	UserName  string
	Password  string // bcrypt hash
	CreatedAt time.Time
	UpdatedAt time.Time
}
