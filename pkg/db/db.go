package db

import (
	"database/sql"
	"fmt"

	"deluxeblackjack-server/internal/config"
	"deluxeblackjack-server/internal/util"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // postgres driver
)

var instance *sql.DB

// Instance returns a database instance
func Instance() *sql.DB {
	if instance == nil {
		LoadInstance()
	}

	return instance
}

// LoadInstance will load the database instance
func LoadInstance() {
	dsn := config.Instance().PGDSN
	if dsn == "" {
		dsn = util.Getenv("PG_DSN", "postgres://postgres@localhost:5432/postgres?sslmode=disable")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	instance = db
}

// Migrate runs the migrations
func Migrate() {
	migrationsPath := config.Instance().MigrationsPath
	if migrationsPath == "" {
		migrationsPath = util.Getenv("MIGRATIONS_PATH", "./sql")
	}

	db := Instance()

	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		panic(err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			panic(err)
		}
	}
}

// Scanner is an interface over sql.Row and sql.Rows
type Scanner interface {
	Scan(...interface{}) error
}
