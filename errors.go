package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by client operations and hydration. Wrapped
// errors carry the underlying detail; match with errors.Is.
var (
	// ErrTransportFailure wraps any I/O error raised while performing a
	// request or reading its body. Requests are never retried.
	ErrTransportFailure = errors.New("transport failure")

	// ErrMalformedPayload signals a required JSON field that is missing or
	// has the wrong type, a non-numeric date component, or listing HTML
	// that cannot be split on the expected marker.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrMalformedURL signals an embedded URL string that failed to parse.
	// It is always recovered locally by storing an absent URL; it only
	// surfaces through an entity's defaulted-field list.
	ErrMalformedURL = errors.New("malformed url")

	// ErrValidationFailure wraps struct validation errors for client
	// configuration and scraped listing entries.
	ErrValidationFailure = errors.New("validation failure")

	// ErrSiteScrapingFailure wraps errors raised while scraping the site's
	// listing page for content that has no API endpoint.
	ErrSiteScrapingFailure = errors.New("site scraping failure")
)

func wrapErr(sentinel error, errs ...error) error {
	joined := errors.Join(errs...)
	return fmt.Errorf("%w: %s", sentinel, joined)
}
