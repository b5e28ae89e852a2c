// Package apikey issues and resolves API keys for the JSON API.
//
// Keys are random secrets handed to the caller once; stores only keep the
// SHA-256 hash together with the [action.Principal] the key acts as.
// [MemoryStore] serves tests and single-process setups, [RedisStore] is used
// when REDIS_URL is configured.
//
//	store := apikey.NewMemoryStore()
//	secret, _, err := apikey.Issue(ctx, store, action.Principal{ID: "E1", Role: "hr"})
//	p, err := apikey.Resolve(ctx, store, secret)
package apikey
