// Package cli provides the command-line interface for phonexml.
//
// Commands:
//   - serve: Run the HTTP server
//   - invoke: Handle one API Gateway event read from a file or stdin
//   - render: Build a document from a YAML or JSON definition
//   - fetch: Request a screen from a running server the way a phone would
//   - version: Show version information
package cli
