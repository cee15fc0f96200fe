package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register(Migration{
		Version:     "001_create_trained_pokemon_indexes",
		Description: "Create indexes for the trained_pokemon collection",
		Up:          up001,
		Down:        down001,
	})
}

func up001(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("trained_pokemon")
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "species_number", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func down001(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("trained_pokemon")
	if _, err := collection.Indexes().DropOne(ctx, "species_number_1"); err != nil {
		return err
	}
	_, err := collection.Indexes().DropOne(ctx, "created_at_1")
	return err
}
