package database

import "gorm.io/gorm"

// Database is the PostgreSQL user store backed by GORM.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
