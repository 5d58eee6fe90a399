// Package service runs the viewer session.
//
// A Session owns the graph store, the force simulation, the renderer and the
// interaction controller, and drives all of them from a single goroutine.
// HTTP handlers and the tick timer never touch that state directly: they
// submit work to the session loop and wait for it to finish, so every click,
// keystroke, drag step and tick runs to completion before the next one starts.
//
// # Event System
//
// The session publishes what changed on an EventBus: positions after every
// tick, fills after a selection or search change, the detail panel, the
// search box value and load status. The hub forwards these to the browser
// over Server-Sent Events.
package service
