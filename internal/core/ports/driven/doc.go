// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Tree enumeration plus whole-file document read/write
//   - MetadataCodec: Metadata block parse/serialise with verbatim round-trip
//
// # Optional Interfaces
//
//   - ConfigStore: Scoring policy overrides. Without it, the contract
//     defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
