// Package server serves the order API over HTTP: status, stage
// catalog, dashboard counts, order creation, queries, and stage
// transitions. Domain error kinds map onto 400/404/409/422 responses.
package server
