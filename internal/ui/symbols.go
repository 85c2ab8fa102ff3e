package ui

// Status symbols used in rotation summaries and display listings.
const (
	SymbolSuccess  = "✓" // display rotated
	SymbolFail     = "✗" // platform rejected the change
	SymbolPending  = "○" // would rotate (dry run)
	SymbolProgress = "◐" // reverting
	SymbolComplete = "●" // already in the target orientation
	SymbolSkipped  = "⊘" // excluded or reverted
	SymbolArrow    = "→"
)
