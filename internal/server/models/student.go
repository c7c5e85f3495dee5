package models

import "time"

// DefaultGroup is reported for students stored without a group.
const DefaultGroup = "Default Group"

type Student struct {
	ID        int64
	UserID    int64
	FullName  string
	Group     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
