// Package internal contains the implementation packages for crabbysite.
//
// # Package Organization
//
//   - features: the ordered feature descriptors, YAML loading and validation
//   - richtext: sanitized inline HTML for descriptions
//   - assets: embedded static files and SVG inlining
//   - components: the card renderer, section composer and preview page
//   - config: viper-backed configuration with validation
//   - logging: structured logging on log/slog
//   - errors: typed errors and error collection
//   - watcher: debounced file watching
//   - server: the preview server with live reload
//   - version: build metadata
//
// Rendering in components is pure and synchronous. Everything else exists to
// load descriptors, check them, and preview the result.
package internal
