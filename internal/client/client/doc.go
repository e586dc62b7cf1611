// Package client talks to the pdfdrop server's JSON API.
//
// The Client interface is what the session store, the upload queue and the
// CLI depend on; HTTPClient is the concrete implementation.
//
// # Error Handling
//
// Non-2xx answers become *APIError carrying the status and the server's
// {"error": "..."} message. A 401 matches ErrUnauthorized and transport
// failures match ErrUnavailable, both via errors.Is.
package client
