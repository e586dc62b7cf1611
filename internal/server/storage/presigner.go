// Package storage issues presigned, conditional PUT authorizations for PDF
// uploads against an S3-compatible object store.
package storage

import (
	"context"
	"net/http"
	"time"
)

// IfNoneMatchAny is the conditional-write precondition: the PUT succeeds only
// when no object exists under the key yet.
const IfNoneMatchAny = "*"

// PutRequest describes one object-store write to authorize.
type PutRequest struct {
	Bucket      string
	Key         string
	ContentType string
	IfNoneMatch string
	Expires     time.Duration
}

// Presigned is a signed URL plus the headers that were covered by the
// signature and must be replayed on the PUT.
type Presigned struct {
	URL     string
	Headers map[string]string
}

// Presigner signs a single PUT. Implementations must not touch the network
// for anything but credential resolution.
type Presigner interface {
	PresignPut(ctx context.Context, req PutRequest) (*Presigned, error)
}

// requiredHeaders are the headers every upload authorization constrains.
func requiredHeaders(req PutRequest) map[string]string {
	h := map[string]string{"Content-Type": req.ContentType}
	if req.IfNoneMatch != "" {
		h["If-None-Match"] = req.IfNoneMatch
	}
	return h
}

// headersFromSigned flattens signed headers, dropping Host which the HTTP
// client always sets itself, and makes sure the required ones are present.
func headersFromSigned(signed http.Header, required map[string]string) map[string]string {
	out := make(map[string]string, len(signed)+len(required))
	for name, values := range signed {
		if http.CanonicalHeaderKey(name) == "Host" || len(values) == 0 {
			continue
		}
		out[http.CanonicalHeaderKey(name)] = values[0]
	}
	for name, value := range required {
		out[http.CanonicalHeaderKey(name)] = value
	}
	return out
}
