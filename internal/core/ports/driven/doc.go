// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RepositoryHost: Lists and downloads repository files
//   - LLMService: Summarises chunks and writes the README
//   - SummaryCache: Chunk summary persistence
//   - DocumentStore: Generated README persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PromptStore: Customisable prompt templates. Built-in prompts are used otherwise.
//   - StatusObserver: Receives every processing status transition.
//   - TokenProvider: Repository host credentials. Public repositories work without one.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
