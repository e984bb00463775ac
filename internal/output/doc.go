// Package output renders formnote command results for people and for agents.
//
// Every command writes through a Printer, which switches between styled
// human output and JSON based on the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Created Meetings/2026/Weekly.md"})
//	printer.Error(err)
//
// In JSON mode errors are written as {"error": "...", "code": N, "hint": "..."}.
// Hints come from cockroachdb/errors hints anywhere in the error chain, so
// validation errors such as a template without a name tell the user how to
// fix them in both modes.
//
// Styling uses lipgloss and is disabled when output is not a terminal.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad arguments, invalid or unknown template
//	output.ExitSystemError // 2: I/O failures
//	output.ExitConflict    // 3: the target note already exists
package output
