// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. They reach git, the regeneration
// tool and GitHub only through driven ports.
package services
