package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Connect picks the driver from the DSN: postgres for deployed environments,
// file-backed sqlite (modernc, cgo-free) for local development and tests.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Printf("level=info msg=connecting driver=postgres")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Printf("level=info msg=connecting driver=sqlite dsn=%s", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}
