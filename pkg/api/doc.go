// Package api defines the core data types shared by the block runtime
//
// This package contains the Value variant that blocks produce and consume,
// the immutable block graph loaded from a project, the project and target
// definitions, render frames handed to presentation backends, and the
// notification events published while a project runs
package api
