package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// MediaRepo lists opaque documents from the media collection.
type MediaRepo interface {
	ListMedia(ctx context.Context) ([]bson.M, error)
}

type MediaUseCase interface {
	List(ctx context.Context) ([]bson.M, error)
}
