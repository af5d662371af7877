package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	LoadingIcon string = "⟳"
	FolderIcon  string = "📁"

	// Form icons
	CursorIcon    string = "›"
	ToggleOnIcon  string = "[x]"
	ToggleOffIcon string = "[ ]"
	DirtyIcon     string = "●"
	LockIcon      string = "🔒"
)
