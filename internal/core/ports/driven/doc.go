// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RepositoryCloner: Clones the tracked repository
//   - Repository: Stages, diffs, commits and pushes a working copy
//   - Regenerator: Runs the external corpus regeneration tool
//
// # Optional Interfaces
//
//   - ReviewRequestCreator: Opens pull requests. Only needed for the
//     review-request publish flow.
//   - ConfigStore: Persisted settings. The CLI resolves domain.Config from it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
