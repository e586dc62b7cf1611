// Package common contains shared constants and sentinel errors used across
// the pdfdrop server and CLI.
package common

// AuthorizationHeaderName carries the bearer token on API requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

// SessionTokenKey is the metadata key the CLI persists the auth token under.
const SessionTokenKey = "pdf_uploader_token"

// PDFContentType is the only content type accepted for uploads.
const PDFContentType = "application/pdf"

// PDFExtension is matched case-insensitively against file names.
const PDFExtension = ".pdf"

// MaxFilenameLength bounds both client-supplied names and sanitized keys.
const MaxFilenameLength = 255
