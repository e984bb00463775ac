// Package engine resolves note templates into concrete text.
//
// A template is plain text with ${...} placeholders. Each placeholder names a
// value and may carry a date format after the first colon:
//
//	Meeting with ${attendee} on ${date:DD MMMM YYYY}
//
// Values come from a flat Values map built by the caller: built-in time
// variables first, then the user's field values, then computed variables
// resolved by ResolveVariables. Substitute never fails. Unknown placeholders
// render as the empty string and values that do not parse as dates are
// emitted unformatted.
//
// NextAvailablePath picks a collision-free output path for a rendered note.
//
// Nothing in this package keeps state between calls. Every function takes the
// render clock explicitly so that all date output of one note agrees.
package engine
