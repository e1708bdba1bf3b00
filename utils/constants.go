package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:admin:"

// AuthSessionPrefix keys the set of cached token keys held for one admin uid.
const AuthSessionPrefix = "auth:sessions:"

// DefaultAuthCacheTTL bounds how long a verified admin token is trusted without re-verification.
const DefaultAuthCacheTTL = 10 * time.Minute

// Pagination defaults shared by list endpoints.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)
