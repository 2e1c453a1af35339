// Package domain defines the core entities for the discovery updater.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DiscoveryDocument: One API's discovery document on disk
//   - DiscoveryIndex: The index.json manifest listing every known API
//   - DocumentMap: The resolved API ID to document path mapping
//   - Account: The identity used to commit, push and open pull requests
//   - Config: Explicit configuration for the tracked repository
//   - UpdateResult: The outcome of one update cycle
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
