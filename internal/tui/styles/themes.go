package styles

// NewCreeperTheme creates the default theme: grass greens over dark dirt.
func NewCreeperTheme() *Theme {
	return &Theme{
		Name:   "creeper",
		IsDark: true,

		Primary:   ParseHex("#5DA130"), // Grass
		Secondary: ParseHex("#A7E36A"), // Lime
		Accent:    ParseHex("#E3C16F"), // Sand

		BgBase:      ParseHex("#1E1A16"),
		BgSubtle:    ParseHex("#3B2F25"), // Dirt
		BgHighlight: ParseHex("#55473A"),

		FgBase:     ParseHex("#F2F0E6"),
		FgMuted:    ParseHex("#B5B0A1"),
		FgSubtle:   ParseHex("#7D776A"),
		FgInverted: ParseHex("#14120F"),

		Border:      ParseHex("#55473A"),
		BorderFocus: ParseHex("#A7E36A"),

		Success: ParseHex("#5DA130"),
		Error:   ParseHex("#D9463B"),
		Warning: ParseHex("#E3A33B"),
		Info:    ParseHex("#5AB0D8"),
	}
}

// NewNetherTheme creates a warm red theme.
func NewNetherTheme() *Theme {
	return &Theme{
		Name:   "nether",
		IsDark: true,

		Primary:   ParseHex("#C0392B"), // Netherrack
		Secondary: ParseHex("#F39C12"), // Lava
		Accent:    ParseHex("#F4D03F"), // Glowstone

		BgBase:      ParseHex("#1B0F0F"),
		BgSubtle:    ParseHex("#3A1E1E"),
		BgHighlight: ParseHex("#5A2E2E"),

		FgBase:     ParseHex("#F8EDE3"),
		FgMuted:    ParseHex("#C9B2A6"),
		FgSubtle:   ParseHex("#8C7468"),
		FgInverted: ParseHex("#1B0F0F"),

		Border:      ParseHex("#5A2E2E"),
		BorderFocus: ParseHex("#F39C12"),

		Success: ParseHex("#27AE60"),
		Error:   ParseHex("#E74C3C"),
		Warning: ParseHex("#F39C12"),
		Info:    ParseHex("#3498DB"),
	}
}

// NewEndTheme creates a purple theme.
func NewEndTheme() *Theme {
	return &Theme{
		Name:   "end",
		IsDark: true,

		Primary:   ParseHex("#7C3AED"), // Ender pearl
		Secondary: ParseHex("#C4B5FD"),
		Accent:    ParseHex("#F0E6A8"), // End stone

		BgBase:      ParseHex("#0F0B1A"),
		BgSubtle:    ParseHex("#221A3A"),
		BgHighlight: ParseHex("#352A57"),

		FgBase:     ParseHex("#F5F3FF"),
		FgMuted:    ParseHex("#C0B8DA"),
		FgSubtle:   ParseHex("#857CA3"),
		FgInverted: ParseHex("#0F0B1A"),

		Border:      ParseHex("#352A57"),
		BorderFocus: ParseHex("#C4B5FD"),

		Success: ParseHex("#34D399"),
		Error:   ParseHex("#F87171"),
		Warning: ParseHex("#FBBF24"),
		Info:    ParseHex("#60A5FA"),
	}
}
