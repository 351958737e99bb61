package db

import "gorm.io/gorm"

// EnsureSchema creates the named Postgres schema if it does not exist yet.
// Called before AutoMigrate for models living outside "public".
func EnsureSchema(d *gorm.DB, schema string) error {
	return d.Exec(`CREATE SCHEMA IF NOT EXISTS "` + schema + `"`).Error
}
