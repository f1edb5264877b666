package utils

// AuthCachePrefix is the Redis key prefix for cached auth token hashes.
const AuthCachePrefix = "auth:"

// RefreshLockPrefix is the Redis key prefix for calendar token refresh locks.
const RefreshLockPrefix = "gcal:refresh:"
