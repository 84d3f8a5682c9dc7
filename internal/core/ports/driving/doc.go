// Package driving defines the interfaces through which external actors
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI and MCP adapters depend on these interfaces; core services
// implement them.
//
// Control flow between the ports is fixed:
//
//	IndexerService → MatcherService → (human selection) → SynchronizerService
//
// The indexer runs once per invocation; matcher and synchronizer
// consume its output and never re-scan the tree themselves.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
