// Package redis opens the optional Redis connection backing the API key
// store and provides its readiness check and shutdown hook.
//
//	client, err := redis.Open(ctx, cfg.String(config.RedisURL, ""), redis.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	keys := apikey.NewRedisStore(client, apikey.DefaultRedisPrefix)
//
// Open pings the server, retrying with a doubling delay, and only returns
// a client that answered.
package redis
