// Package health serves the liveness and readiness probes of an EMApp
// instance.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Probes answer with the JSON [Response] report. Clients accepting only
// text/plain get the bare status word instead. Readiness answers 503 when
// any check fails or outlives the timeout.
package health
