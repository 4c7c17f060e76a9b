// Package domain defines the core entities of the papis search provider.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A bibliography entry read from a papis library
//   - ResultMeta: The display projection of a document for the shell
//   - Query: A parsed free-text library query
//   - Notification: A desktop notification request
//   - Settings: Application configuration
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
