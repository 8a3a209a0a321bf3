// Package app is the composition root: it turns a loaded configuration into a
// ready UserRepository backed by the configured database.
package app
