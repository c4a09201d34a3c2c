package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"artmarket/config"
	"artmarket/internal/domain/billing"
	"artmarket/internal/domain/brands"
	"artmarket/internal/domain/notifications"
	"artmarket/internal/domain/profiles"
	"artmarket/internal/domain/works"
	"artmarket/internal/platform/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Models lists every table the service owns, join tables included through
// their many2many owners.
func Models() []interface{} {
	return []interface{}{
		// people
		&profiles.Artist{},
		&profiles.Collector{},

		// works
		&works.Collection{},
		&works.Feature{},
		&works.Art{},

		// brands
		&brands.Brand{},
		&brands.BrandCategory{},

		// billing
		&billing.Transaction{},
		&billing.Data{},
		&billing.Output{},
		&billing.Invoice{},

		&notifications.Notification{},
	}
}

// Open connects to the configured store and migrates it when asked to.
func Open(cfg *config.Config, logg *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DBURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DBURL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DBDriver, err)
	}
	logg.Info("database connected", "driver", cfg.DBDriver)

	if cfg.DBAutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		logg.Info("database migrated", "tables", len(Models()))
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
