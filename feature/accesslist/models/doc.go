// Package models defines the database mapping of the proxy manager's allowlist table.
package models
