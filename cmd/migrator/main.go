package main

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/pflag"
)

const (
	driverFlag        = "driver"
	storagePathFlag   = "storage-path"
	migrationPathFlag = "migrations-path"
)

// database URL schemes by storage driver
var schemes = map[string]string{
	"postgres": "pgx5",
	"sqlite":   "sqlite",
}

func main() {
	driver, storagePath, migrationsPath := getFlagsValues()
	validateFlags(driver, storagePath, migrationsPath)
	makeMigrations(driver, storagePath, migrationsPath)
}

type MigrationLogger struct {
	logger  *slog.Logger
	verbose bool
}

func NewMigrationLogger() *MigrationLogger {
	return &MigrationLogger{
		logger:  slog.Default(),
		verbose: true,
	}
}

func (ml *MigrationLogger) Printf(format string, v ...any) {
	ml.logger.Info(fmt.Sprintf(format, v...))
}

func (ml *MigrationLogger) Verbose() bool {
	return ml.verbose
}

func getFlagsValues() (driver, storage, migrations string) {
	driverName := pflag.StringP(driverFlag, "d", "postgres", "postgres or sqlite")
	storagePath := pflag.StringP(storagePathFlag, "s", "", "")
	migrationsPath := pflag.StringP(migrationPathFlag, "m", "", "")
	pflag.Parse()
	return *driverName, *storagePath, *migrationsPath
}

func validateFlags(driver, storagePath, migrationsPath string) {
	var errs []error

	if _, ok := schemes[driver]; !ok {
		drivers := slices.Sorted(maps.Keys(schemes))
		errs = append(errs, fmt.Errorf("--%s flag: one of %q", driverFlag, drivers))
	}

	if storagePath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", storagePathFlag))
	}

	if migrationsPath == "" {
		errs = append(errs, fmt.Errorf("--%s flag: required", migrationPathFlag))
	}

	if len(errs) != 0 {
		slog.Error("invalid args", "err", errors.Join(errs...))
		fallDown()
	}
}

func makeMigrations(driver, storagePath, migrationsPath string) {

	m, err := migrate.New(
		fmt.Sprintf("file://%s", migrationsPath),
		fmt.Sprintf("%s://%s", schemes[driver], storagePath),
	)
	if err != nil {
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}

	m.Log = NewMigrationLogger()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.Log.Printf("no migrations to apply")
			return
		}
		slog.Error("failed to migrate", "err", err)
		fallDown()
	}
	m.Log.Printf("migration applied\n")
}

func fallDown() {
	os.Exit(2)
}
