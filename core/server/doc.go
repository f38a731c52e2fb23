// Package server holds the HTTP server configuration.
//
// The server is only started by the `start` command. Besides the listen port and
// the API key it carries the interval of the background reconciliation loop.
package server
