// Package session runs one editing session over a server.properties file.
//
// A Session owns the working set and the lifecycle around it: it loads the
// initial values from a Backend, hands the presentation layer grouped
// controls, applies edits, and turns a save request into a reconciled write
// through the Backend. Status transitions are published on the event broker
// for anything that wants to observe them.
package session
