package domain

import "errors"

var (
	// ErrNotIdentified is returned when every (strategy, model) attempt was
	// exhausted without a usable identification.
	ErrNotIdentified = errors.New("product could not be identified")

	// ErrVisionAPIFailure is returned when a vision-model API request fails
	ErrVisionAPIFailure = errors.New("vision API request failed")

	// ErrUploadFailure is returned when re-uploading an image to the public
	// file host fails.
	ErrUploadFailure = errors.New("image upload failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
