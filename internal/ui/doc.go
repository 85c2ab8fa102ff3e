// Package ui renders mosdef's terminal output with Lip Gloss.
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess (green)  - rotated displays, passing checks
//	ColorError   (red)    - platform failures
//	ColorWarning (yellow) - reverts and warnings
//	ColorMuted   (gray)   - secondary text
//
// Use DisableColors() for monochrome output (--no-color, NO_COLOR).
//
// # Summaries
//
// SummaryRenderer formats one line per display after a rotation batch,
// followed by a totals line. It also formats revert outcomes and the
// selector suggestions shown when a selection fails:
//
//	r := ui.NewSummaryRenderer(verbose)
//	fmt.Fprint(w, r.RenderReport(report, rotate.Toggle))
//
// # Tables
//
// RenderDisplayTable lays out the inventory for --list using the Bubbles
// table component, rendered once without interaction.
package ui
