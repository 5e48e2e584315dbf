package receipt

import "errors"

var (
	// ErrNoFields is returned when nothing usable could be read off a receipt
	ErrNoFields = errors.New("no receipt fields detected")
	// ErrImageTooLarge is returned for uploads above the configured byte limit
	ErrImageTooLarge = errors.New("receipt image too large")
	// ErrUnsupportedImage is returned for data that is not a decodable image
	ErrUnsupportedImage = errors.New("unsupported receipt image")
	// ErrNotConfigured is returned by NoopExtractor
	ErrNotConfigured = errors.New("receipt extraction not configured")
)
