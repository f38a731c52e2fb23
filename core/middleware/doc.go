// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) for the accesslist endpoints.
//   - rayid: a request ID for every incoming request, stored in the fiber
//     locals for logger.WithRayID and echoed in the response headers.
package middleware
