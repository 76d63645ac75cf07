// Package api defines the transport-neutral DTOs and the OrderService
// shared by the HTTP server and the CLI. Conversions flatten the stage
// catalog into each order view so clients render the sequence without
// knowing the catalog.
package api
