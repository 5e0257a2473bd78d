package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/civic-lab/fixpoint/pkg/domain/interfaces"
	"github.com/civic-lab/fixpoint/pkg/repository"
)

// Database holds datastore configuration. Firestore and MongoDB are both
// supported; if neither is configured the in-memory repository is used.
type Database struct {
	FirestoreProjectID  string
	FirestoreDatabaseID string
	MongoURI            string
	MongoDatabase       string
}

// Flags returns CLI flags for Database configuration
func (d *Database) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project",
			Usage:       "GCP project ID for Firestore",
			Category:    "Database",
			Sources:     cli.EnvVars("FIXPOINT_FIRESTORE_PROJECT"),
			Destination: &d.FirestoreProjectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database",
			Usage:       "Firestore database ID",
			Category:    "Database",
			Value:       "(default)",
			Sources:     cli.EnvVars("FIXPOINT_FIRESTORE_DATABASE"),
			Destination: &d.FirestoreDatabaseID,
		},
		&cli.StringFlag{
			Name:        "mongo-uri",
			Usage:       "MongoDB connection URI",
			Category:    "Database",
			Sources:     cli.EnvVars("FIXPOINT_MONGO_URI"),
			Destination: &d.MongoURI,
		},
		&cli.StringFlag{
			Name:        "mongo-database",
			Usage:       "MongoDB database name",
			Category:    "Database",
			Value:       "fixpoint",
			Sources:     cli.EnvVars("FIXPOINT_MONGO_DATABASE"),
			Destination: &d.MongoDatabase,
		},
	}
}

// Configure creates the repository for the configured backend. Firestore
// wins when both backends are configured.
func (d *Database) Configure(ctx context.Context) (interfaces.Repository, error) {
	logger := ctxlog.From(ctx)

	if d.FirestoreProjectID != "" {
		repo, err := repository.NewFirestore(ctx, d.FirestoreProjectID, d.FirestoreDatabaseID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init firestore",
				goerr.V("project", d.FirestoreProjectID),
				goerr.V("database", d.FirestoreDatabaseID),
			)
		}
		return repo, nil
	}

	if d.MongoURI != "" {
		repo, err := repository.NewMongo(ctx, d.MongoURI, d.MongoDatabase)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to init mongodb",
				goerr.V("database", d.MongoDatabase),
			)
		}
		return repo, nil
	}

	logger.Warn("Using memory database. The data will be removed when shutting down")
	return repository.NewMemory(), nil
}

// IsConfigured checks if a persistent backend is configured
func (d *Database) IsConfigured() bool {
	return d.FirestoreProjectID != "" || d.MongoURI != ""
}

// LogValue returns structured log value. The Mongo URI is omitted since it
// may carry credentials.
func (d Database) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("firestoreProject", d.FirestoreProjectID),
		slog.String("firestoreDatabase", d.FirestoreDatabaseID),
		slog.Bool("mongoConfigured", d.MongoURI != ""),
		slog.String("mongoDatabase", d.MongoDatabase),
	)
}
