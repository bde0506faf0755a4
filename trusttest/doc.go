// Package trusttest provides mocks and helpers for testing the trust
// extensions and the application.
package trusttest
