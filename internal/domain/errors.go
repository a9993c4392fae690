package domain

import "errors"

var (
	// ErrPreferencesNotFound is returned when no stored preferences exist for
	// the caller; upstream redirects to onboarding
	ErrPreferencesNotFound = errors.New("preferences not found")

	// ErrVehicleNotFound is returned when a vehicle cannot be found in the catalog
	ErrVehicleNotFound = errors.New("vehicle not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when the cache store is unreachable
	ErrCacheUnavailable = errors.New("cache store unavailable")

	// ErrEnrichmentFailure is returned when the enrichment provider fails or
	// responds with a malformed payload
	ErrEnrichmentFailure = errors.New("enrichment provider request failed")

	// ErrCapacityExceeded is returned when waiting for enrichment token
	// capacity exceeds the request deadline
	ErrCapacityExceeded = errors.New("enrichment token capacity exceeded")
)
