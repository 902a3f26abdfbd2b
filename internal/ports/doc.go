// Package ports defines the interfaces that connect the application layer
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Store]: opaque string-keyed storage for the persisted list snapshot
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters under internal/adapters implement them for memory, the file
// system, and Redis.
package ports
