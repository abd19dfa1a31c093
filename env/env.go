// Package env provides the environment-variable accessor used by config.
// Code that needs the process environment takes an Accessor so tests can
// substitute a Map.
package env

import "os"

// Accessor looks up environment variables.  Getenv returns "" for an unset
// variable.
type Accessor interface {
	Getenv(name string) string
}

// OS reads the process environment.
type OS struct{}

// Getenv implements Accessor.
func (OS) Getenv(name string) string { return os.Getenv(name) }

// Map is a fixed environment.
type Map map[string]string

// Getenv implements Accessor.
func (m Map) Getenv(name string) string { return m[name] }
