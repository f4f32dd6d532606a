package repository

import (
	"babycare/domain"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mediaRepository struct {
	coll *mongo.Collection
}

// NewMediaRepository reads from the named collection. A nil database yields a
// repository that always lists nothing.
func NewMediaRepository(database *mongo.Database, collection string) domain.MediaRepo {
	repo := &mediaRepository{}
	if database != nil {
		repo.coll = database.Collection(collection)
	}
	return repo
}

func (mr *mediaRepository) ListMedia(ctx context.Context) ([]bson.M, error) {
	if mr.coll == nil {
		return nil, nil
	}

	cursor, err := mr.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query media: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode media: %w", err)
	}
	return docs, nil
}
