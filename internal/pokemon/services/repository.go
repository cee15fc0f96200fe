package services

import (
	"context"
	"time"

	"go-evkeeper/internal/pokemon/models"
	"go-evkeeper/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles database operations for trained Pokemon
type Repository struct {
	mongodb    *database.MongoDB
	collection *mongo.Collection
}

// NewRepository creates a new trained Pokemon repository
func NewRepository(mongodb *database.MongoDB) *Repository {
	return &Repository{
		mongodb:    mongodb,
		collection: mongodb.Database.Collection(models.TrainedPokemonCollection),
	}
}

// GetByID retrieves a trained Pokemon by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*models.TrainedPokemon, error) {
	var pokemon models.TrainedPokemon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pokemon)
	if err != nil {
		return nil, err
	}
	return &pokemon, nil
}

// List retrieves all trained Pokemon sorted by creation time
func (r *Repository) List(ctx context.Context) ([]models.TrainedPokemon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pokemon := []models.TrainedPokemon{}
	if err := cursor.All(ctx, &pokemon); err != nil {
		return nil, err
	}
	return pokemon, nil
}

// Create inserts a new trained Pokemon record
func (r *Repository) Create(ctx context.Context, pokemon *models.TrainedPokemon) error {
	pokemon.CreatedAt = time.Now().UTC()
	pokemon.UpdatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, pokemon)
	return err
}

// Update replaces an existing trained Pokemon record
func (r *Repository) Update(ctx context.Context, pokemon *models.TrainedPokemon) error {
	pokemon.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pokemon.ID}, pokemon)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a trained Pokemon record
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CreateIndexes creates necessary database indexes for the trained Pokemon collection
func (r *Repository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "species_number", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
