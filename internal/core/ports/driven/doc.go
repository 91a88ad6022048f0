// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ContentSource: snapshot plus change notification for one collection
//   - Refresher: sources that can be asked to re-read their backing location
//   - ConfigStore: Application configuration
//
// Every ContentSource is optional: a missing source is treated as an
// empty collection and search degrades to the remaining sources.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
