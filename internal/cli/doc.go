// Package cli implements the mosdef command-line interface.
//
// A single cobra root command takes one command word and the selector flags:
//
//	mosdef list
//	mosdef portrait --only M2
//	mosdef toggle --include M1,M3 --exclude conn:HDMI
//	mosdef --save-default 'name:"DELL U2720Q"'
//
// Every flag combination and selector is validated before the displays or
// the config file are touched. A rotation then runs these phases:
//
//  1. Refuse Remote Desktop sessions unless --force-rdp is given
//  2. Load the saved default selector and enumerate the displays
//  3. Resolve the targets, printing selector suggestions on a miss
//  4. Apply the action, or preview it with --dry-run
//  5. Keep or revert the change through a rollback session
//  6. Save the last action and the selector history
//
// Errors are *errors.Error values; Execute prints them and maps them to the
// process exit code. Commands that already printed a report return an
// *errors.ExitError carrying only the status.
//
// App holds the display provider, terminal streams and confirmer, so tests
// drive NewRootCmd with fakes instead of the real xrandr provider.
package cli
