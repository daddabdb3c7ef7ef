// Package middleware holds reusable [client.MiddlewareConfig] values.
//
// [NewTimeoutMiddleware] bounds a provider call, including the full lifetime
// of a stream:
//
//	c, err := client.New(provider,
//	    client.WithMiddleware(middleware.NewTimeoutMiddleware(90*time.Second)),
//	)
package middleware
