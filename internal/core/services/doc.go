// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters): repository hosts, LLM backends,
// prompt and summary stores.
//
// Services are pure Go with no CGO.
package services
