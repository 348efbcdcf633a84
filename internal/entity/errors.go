package entity

import "errors"

var (
	// Request errors
	ErrMissingField = errors.New("missing required field")
	ErrDecode       = errors.New("invalid image encoding")
	ErrInvalidColor = errors.New("invalid hex color")
	ErrInvalidForm  = errors.New("invalid multipart form")
	ErrTooLarge     = errors.New("request body too large")

	// Generation errors
	ErrGenerator       = errors.New("generator failed")
	ErrEmptyGeneration = errors.New("generator returned no images")

	// Archive errors
	ErrRenderNotFound = errors.New("render not found")
)
