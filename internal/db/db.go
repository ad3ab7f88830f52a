package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/onedrop-app/onedrop-api/internal/config"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}
}

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(conf.DSN()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("gdb.DB -> %w", err)
	}
	if conf.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	}
	if conf.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	}

	return gdb, nil
}

func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(url), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	return gdb, nil
}

// OpenSQLite opens an embedded database at path, or a private in-memory
// database when path is empty. SQLite allows a single writer, so the pool
// is capped at one connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := "file::memory:"
	if path != "" {
		dsn = "file:" + path
	}

	return openSQLite(dsn + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
}

// OpenSQLiteMemory opens a named in-memory database, so independent tests
// do not share state.
func OpenSQLiteMemory(name string) (*gorm.DB, error) {
	return openSQLite("file:" + name + "?mode=memory&cache=shared&_pragma=foreign_keys(1)")
}

func openSQLite(dsn string) (*gorm.DB, error) {
	conf := gormConfig()
	conf.Logger = gormlogger.Discard

	gdb, err := gorm.Open(sqlite.Open(dsn), conf)
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("gdb.DB -> %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return gdb, nil
}
