package generation

import "errors"

var (
	ErrEmptyUpload = errors.New("empty photo upload")
	ErrNoImages    = errors.New("renderer returned no images")
)
