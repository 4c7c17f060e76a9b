// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentLibrary: Queries over papis documents
//   - DocumentIndex: A DocumentLibrary that can be rebuilt
//   - LibraryScanner: Reads documents from library folders
//   - FileOpener: Opens files with the default handler
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - NotificationService: Desktop notifications. Without it, messages are only logged.
//   - LibraryWatcher: Change events. Without it, the index is built once at startup.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
