package usecase

import (
	"babycare/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type mediaUseCase struct {
	media   domain.MediaRepo
	TimeOut time.Duration
}

func NewMediaUseCase(media domain.MediaRepo, to time.Duration) domain.MediaUseCase {
	return &mediaUseCase{
		media:   media,
		TimeOut: to,
	}
}

func (mu *mediaUseCase) List(ctx context.Context) ([]bson.M, error) {
	ctx, cancel := context.WithTimeout(ctx, mu.TimeOut)
	defer cancel()

	docs, err := mu.media.ListMedia(ctx)
	if err != nil {
		return nil, storageFault(err, "failed to list media")
	}
	if len(docs) == 0 {
		return nil, domain.NotFound("Media")
	}
	return docs, nil
}
