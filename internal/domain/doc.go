// Package domain contains the core domain entities and value objects for
// sponsorscout.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [Entry]: A business name with its discovery timestamp
//   - [URLResult]: The outcome of processing one source URL
//   - [Summary]: Aggregated outcome of one pipeline run
package domain
