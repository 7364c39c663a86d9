package db

import (
	"github.com/ticketbase-dev/ticketbase/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the database and returns the handle. TranslateError is
// enabled so unique-constraint violations surface as gorm.ErrDuplicatedKey,
// which the signup path relies on for atomic duplicate-email rejection.
func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return nil, err
	}

	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {
	models := []interface{}{
		&models.User{},
		&models.Event{},
		&models.Booking{},
		&models.Blob{},
		&models.BlobChunk{},
	}

	migrator := gdb.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := gdb.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()

	if err != nil {
		return err
	}

	return sqlDB.Close()
}
