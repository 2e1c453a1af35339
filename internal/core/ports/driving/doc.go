// Package driving defines the interfaces the CLI and the MCP server use to
// reach the core. These are the "driving" ports in hexagonal architecture
// terminology: they drive the application.
//
// Implementations of these interfaces live in internal/core/services.
package driving
