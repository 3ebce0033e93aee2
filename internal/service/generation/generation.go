package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"figurine/internal/entities"
)

type Service struct {
	renderer     Renderer
	artifactsDir string
	imageCount   int
}

func New(renderer Renderer, artifactsDir string, imageCount int) (*Service, error) {
	if err := os.MkdirAll(artifactsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifacts dir %s: %w", artifactsDir, err)
	}

	return &Service{
		renderer:     renderer,
		artifactsDir: artifactsDir,
		imageCount:   imageCount,
	}, nil
}

// Generate derives a figure prompt from the uploaded photo, renders the
// images and persists them under the artifacts dir. The returned references
// are bare file names; they only become an order when the client checks out.
func (s *Service) Generate(ctx context.Context, photo []byte, contentType string) (*entities.GenerationResult, error) {
	if len(photo) == 0 {
		return nil, ErrEmptyUpload
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(photo))

	prompt, err := s.renderer.DescribeFigure(ctx, dataURL)
	if err != nil {
		return nil, fmt.Errorf("describe figure: %w", err)
	}

	images, err := s.renderer.RenderImages(ctx, prompt, s.imageCount)
	if err != nil {
		return nil, fmt.Errorf("render images: %w", err)
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	artifacts := make([]string, 0, len(images))
	for _, image := range images {
		name := uuid.NewString() + ".png"
		if err := os.WriteFile(filepath.Join(s.artifactsDir, name), image, 0o644); err != nil {
			return nil, fmt.Errorf("persist artifact %s: %w", name, err)
		}
		artifacts = append(artifacts, name)
	}

	return &entities.GenerationResult{
		Prompt:    prompt,
		Artifacts: artifacts,
	}, nil
}
