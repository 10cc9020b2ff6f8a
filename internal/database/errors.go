package database

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
)
