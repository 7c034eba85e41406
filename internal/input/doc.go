// Package input provides the pointer and keyboard sources polled by the
// runtime once per tick
//
// Sources report an immutable Snapshot. Manual is driven by the control
// server and tests, while Terminal reads a raw-mode console keyboard
package input
