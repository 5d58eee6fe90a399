// Package handler implements the HTTP surface of glossgraph.
//
// The viewer router drives a service.Session: the page reads a snapshot from
// /api/view, follows /events for position, color and detail frames, and posts
// clicks, search input, reset and drag steps back. /graph.svg renders the
// current scene without a browser.
//
// The source router serves a stored glossary as {nodes, edges} for the viewer
// to fetch, plus the raw terms.
//
// Errors are returned as JSON with {error, details}.
package handler
