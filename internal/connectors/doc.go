// Package connectors holds the repository hosts readme-maker reads from.
// Each host implements driven.RepositoryHost; github is the only one today.
package connectors
