package mongodb

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratemongo "github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:embed migrations/*.json
var migrationsFS embed.FS

// RunMigrations applies the embedded index migrations to dbName.
func RunMigrations(client *mongo.Client, dbName string, logger *logrus.Logger) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := migratemongo.WithInstance(client, &migratemongo.Config{DatabaseName: dbName})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "mongodb", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
