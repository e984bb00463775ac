// Package draft turns a template definition plus collected field values into
// a note ready to write: a collision-free vault path and a rendered body.
//
// One render captures a single clock reading and uses it for every built-in
// time variable and every date fallback, so all dates in a note agree.
//
// The pipeline is:
//  1. built-in time variables (date, time, datetime, year, month, day, hour,
//     minute, now)
//  2. field values, trimmed
//  3. computed variables, resolved to a fixed point
//  4. body, filename and destination folder substituted
//  5. the filename probed against the vault for a free path
package draft
