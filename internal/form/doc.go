// Package form turns the schema and the current working values into
// renderable controls.
//
// Three pure functions make up the engine:
//
//   - Classify picks the control kind for a key from its schema entry and
//     the runtime shape of its value.
//   - Derive builds the ControlSpec a presentation layer needs to draw the
//     control and report a change.
//   - Interpret converts raw user input for a control into the value that is
//     written back to the working set.
//
// GroupsInOrder applies Derive over the whole schema to produce the form.
// Nothing in this package mutates state or fails: every key renders.
package form
