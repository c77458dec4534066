// pkg/db/db.go
package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens the configured database (mysql for deployments, sqlite for
// local development) and migrates the schema. TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey regardless of
// driver.
func NewDB(cfg *config.Config) (*gorm.DB, func(), error) {
	gormConfig := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.File)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Database.Username,
			cfg.Database.Password,
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.DBname,
		)
		dialector = mysql.Open(dsn)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	migrator := db
	if cfg.Database.Driver != "sqlite" {
		// utf8mb4's default collation is case-insensitive, but username
		// and email must compare and deduplicate exactly. SQLite already
		// compares BINARY and rejects mysql collation names, so the
		// option only applies to mysql.
		migrator = db.Set("gorm:table_options", "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin")
	}
	if err := migrator.AutoMigrate(&model.User{}); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("auto migration failed: %w", err)
	}

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("failed to close database connection: %v", err)
		}
	}

	return db, cleanup, nil
}
