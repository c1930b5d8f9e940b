// Package fetch downloads the catalog and episode feeds over HTTP.
//
// Endpoints derives the two fixed URL templates from a base host, and Client
// performs GET requests with a proxy that can be switched at runtime between
// direct, system (environment) and manual host:port modes.
package fetch
