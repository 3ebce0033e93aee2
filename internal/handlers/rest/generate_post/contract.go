//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=generate_post_test
package generate_post

import (
	"context"

	"figurine/internal/entities"
	"figurine/pkg/logger"
)

type Service interface {
	Generate(ctx context.Context, photo []byte, contentType string) (*entities.GenerationResult, error)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
