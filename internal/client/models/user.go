// Package models defines client-side data models mirroring the WatchB API
// response schemas.
package models

import "time"

// User is the account object returned by /api/users/{id}/.
//
// Avatar and Background hold absolute image URLs; an empty string means the
// image is not set (the API serializes it as null).
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Profile     string     `json:"profile"`
	Visibility  string     `json:"visibility"`
	Avatar      string     `json:"avatar"`
	Background  string     `json:"background"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`
}
