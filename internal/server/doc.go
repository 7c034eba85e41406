// Package server implements the HTTP control API for a running project
//
// This package provides REST endpoints for inspecting the engine and
// driving it (green flag, stop, broadcasts, input and answers), plus
// WebSocket streams of rendered frames and runtime notifications
package server
