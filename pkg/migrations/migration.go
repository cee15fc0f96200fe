package migrations

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Migration is the record kept for each applied migration
type Migration struct {
	Version     string    `bson:"version"`
	Description string    `bson:"description"`
	AppliedAt   time.Time `bson:"applied_at"`
}

// MigrationFunc defines a migration function signature
type MigrationFunc func(ctx context.Context, db *mongo.Database) error

// RegisteredMigration holds migration metadata and functions
type RegisteredMigration struct {
	Version     string
	Description string
	Up          MigrationFunc
	Down        MigrationFunc // optional rollback
}

// Runner manages database migrations
type Runner struct {
	db         *mongo.Database
	collection *mongo.Collection
	migrations []RegisteredMigration
}

// NewRunner creates a new migration runner
func NewRunner(db *mongo.Database) *Runner {
	return &Runner{
		db:         db,
		collection: db.Collection("_migrations"),
	}
}

// Register adds a migration to the runner
func (r *Runner) Register(migration RegisteredMigration) {
	r.migrations = append(r.migrations, migration)
}

// Run executes all pending migrations in registration order
func (r *Runner) Run(ctx context.Context) error {
	if err := r.ensureMigrationsIndex(ctx); err != nil {
		return fmt.Errorf("failed to create migrations index: %w", err)
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range r.migrations {
		if applied[migration.Version] {
			continue
		}

		fmt.Printf("Running migration: %s - %s\n", migration.Version, migration.Description)

		if err := migration.Up(ctx, r.db); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Version, err)
		}

		record := Migration{
			Version:     migration.Version,
			Description: migration.Description,
			AppliedAt:   time.Now().UTC(),
		}
		if _, err := r.collection.InsertOne(ctx, record); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
		}

		fmt.Printf("Migration %s completed\n", migration.Version)
	}

	return nil
}

// Rollback rolls back the last n applied migrations that define a Down
// function
func (r *Runner) Rollback(ctx context.Context, steps int) error {
	if steps < 1 {
		return fmt.Errorf("rollback steps must be at least 1")
	}

	applied, err := r.appliedInOrder(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	byVersion := make(map[string]RegisteredMigration, len(r.migrations))
	for _, m := range r.migrations {
		byVersion[m.Version] = m
	}

	rolledBack := 0
	for i := len(applied) - 1; i >= 0 && rolledBack < steps; i-- {
		migration, ok := byVersion[applied[i].Version]
		if !ok || migration.Down == nil {
			return fmt.Errorf("migration %s has no rollback", applied[i].Version)
		}

		fmt.Printf("Rolling back migration: %s\n", migration.Version)

		if err := migration.Down(ctx, r.db); err != nil {
			return fmt.Errorf("rollback of %s failed: %w", migration.Version, err)
		}

		if _, err := r.collection.DeleteOne(ctx, bson.M{"version": migration.Version}); err != nil {
			return fmt.Errorf("failed to remove migration record %s: %w", migration.Version, err)
		}
		rolledBack++
	}

	return nil
}

// Status prints each registered migration and whether it has been
// applied
func (r *Runner) Status(ctx context.Context) error {
	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range r.migrations {
		state := "pending"
		if applied[migration.Version] {
			state = "applied"
		}
		fmt.Printf("%-10s %s - %s\n", state, migration.Version, migration.Description)
	}

	return nil
}

func (r *Runner) ensureMigrationsIndex(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "version", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.collection.Indexes().CreateOne(ctx, index)
	return err
}

func (r *Runner) appliedVersions(ctx context.Context) (map[string]bool, error) {
	records, err := r.appliedInOrder(ctx)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(records))
	for _, record := range records {
		applied[record.Version] = true
	}
	return applied, nil
}

func (r *Runner) appliedInOrder(ctx context.Context) ([]Migration, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applied_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []Migration
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
