// Package provision turns an inbound phone request into a CiscoIPPhone
// response.
//
// A request flows through four steps:
//
//  1. ResolveOperation maps the "operation" path parameter to an Operation.
//  2. Dispatcher.Dispatch builds the document for that operation, using
//     ResolveSelfURL for links that point back at this service.
//  3. Success serializes the document into a Response.
//  4. Failure replaces the document with an error screen when anything in
//     steps 1-3 fails or panics.
//
// Handler.Handle runs all four and is the only place errors are caught: it
// always returns a well-formed XML response with status 200, because the
// phone firmware renders nothing else.
//
// Request mirrors the API Gateway HTTP API (payload format 2.0) event so raw
// events decode directly; the HTTP server in pkg/server builds the same
// value from an *http.Request.
package provision
