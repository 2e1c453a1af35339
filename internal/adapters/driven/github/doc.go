// Package github opens pull requests on GitHub using go-github.
//
// Requests are authenticated with the account's personal access token via
// an oauth2 static token source and throttled by a RateLimiter that tracks
// GitHub's rate limit headers.
package github
