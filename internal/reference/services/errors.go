package services

import "errors"

var (
	// ErrOutOfRange means a species number or item name argument is
	// outside its valid domain. Always a caller input error.
	ErrOutOfRange = errors.New("identifier out of valid range")

	// ErrNotCached means an allowNetwork=false item lookup missed both
	// cache tiers. A policy outcome, not a failure.
	ErrNotCached = errors.New("item not found in cache")

	// ErrUpstreamUnavailable means the PokeAPI call itself failed.
	// Failures are never cached; the next call retries from scratch.
	ErrUpstreamUnavailable = errors.New("PokeAPI unavailable")
)
