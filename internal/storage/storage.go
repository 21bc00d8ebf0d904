package storage

import "errors"

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("media item not found")
	ErrSectionNotFound = errors.New("section not found")
)
