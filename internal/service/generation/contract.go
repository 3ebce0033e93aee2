//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=generation_test
package generation

import "context"

// Renderer is the external image pipeline: a vision call that turns the
// uploaded photo into a figure prompt, and a rendering call that produces
// the images.
type Renderer interface {
	DescribeFigure(ctx context.Context, imageDataURL string) (string, error)
	RenderImages(ctx context.Context, prompt string, count int) ([][]byte, error)
}
