// Package util provides common generic data structures
package util
