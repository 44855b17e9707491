// Package github implements driven.RepositoryHost for GitHub repositories.
//
// # Architecture
//
//   - Client: go-github API access (repository metadata, recursive tree,
//     contents API) with rate limiting, plus raw file downloads
//   - RateLimiter: proactive token-bucket throttle combined with the
//     X-RateLimit headers returned by the API
//
// # Authentication
//
// A Personal Access Token is optional. Without one, public repositories are
// read through unauthenticated API calls (60 requests per hour) and file
// bodies come from raw.githubusercontent.com, which is not metered.
// With a token, file bodies are read through the contents API first so that
// private repositories work, falling back to raw downloads.
//
// # Branches
//
// The tree is listed from the repository's default branch when known,
// otherwise from "main" and then "master". Downloads use the branch the tree
// was listed from.
package github
