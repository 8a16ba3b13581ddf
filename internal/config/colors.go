package config

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent string `yaml:"accent"`
	Create string `yaml:"create"`

	ColumnBorder   string `yaml:"column_border"`
	TaskBorder     string `yaml:"task_border"`
	SelectedBorder string `yaml:"selected_border"`
	DragBorder     string `yaml:"drag_border"`

	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Priority badges
	PriorityLow    string `yaml:"priority_low"`
	PriorityMedium string `yaml:"priority_medium"`
	PriorityHigh   string `yaml:"priority_high"`
	PriorityUrgent string `yaml:"priority_urgent"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `yaml:"info_fg"`
	InfoBg    string `yaml:"info_bg"`
	WarningFg string `yaml:"warning_fg"`
	WarningBg string `yaml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg"`
	ErrorBg   string `yaml:"error_bg"`
}

// DefaultColorScheme is the purple-accented scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Preset: "default",
		Accent: "#874BFD",
		Create: "#5FD75F",

		ColumnBorder:   "#5F87D7",
		TaskBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		DragBorder:     "#FFD700",

		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		PriorityLow:    "#5FAF5F",
		PriorityMedium: "#5F87D7",
		PriorityHigh:   "#FF8700",
		PriorityUrgent: "#FF005F",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}

// MonochromeColorScheme is a black and white scheme for limited terminals
func MonochromeColorScheme() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",
		Accent: "#FFFFFF",
		Create: "#FFFFFF",

		ColumnBorder:   "#FFFFFF",
		TaskBorder:     "#585858",
		SelectedBorder: "#FFFFFF",
		DragBorder:     "#D0D0D0",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		PriorityLow:    "#808080",
		PriorityMedium: "#A8A8A8",
		PriorityHigh:   "#D0D0D0",
		PriorityUrgent: "#FFFFFF",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#1C1C1C",
		WarningFg: "#FFFFFF",
		WarningBg: "#3A3A3A",
		ErrorFg:   "#FFFFFF",
		ErrorBg:   "#585858",
	}
}

// GetPreset returns a preset color scheme by name, falling back to default
func GetPreset(name string) *ColorScheme {
	if name == "monochrome" {
		return MonochromeColorScheme()
	}
	return DefaultColorScheme()
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	p := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = p.Preset
	}

	fill(&c.Accent, p.Accent)
	fill(&c.Create, p.Create)
	fill(&c.ColumnBorder, p.ColumnBorder)
	fill(&c.TaskBorder, p.TaskBorder)
	fill(&c.SelectedBorder, p.SelectedBorder)
	fill(&c.DragBorder, p.DragBorder)
	fill(&c.Title, p.Title)
	fill(&c.Subtle, p.Subtle)
	fill(&c.Normal, p.Normal)
	fill(&c.PriorityLow, p.PriorityLow)
	fill(&c.PriorityMedium, p.PriorityMedium)
	fill(&c.PriorityHigh, p.PriorityHigh)
	fill(&c.PriorityUrgent, p.PriorityUrgent)
	fill(&c.InfoFg, p.InfoFg)
	fill(&c.InfoBg, p.InfoBg)
	fill(&c.WarningFg, p.WarningFg)
	fill(&c.WarningBg, p.WarningBg)
	fill(&c.ErrorFg, p.ErrorFg)
	fill(&c.ErrorBg, p.ErrorBg)
}

// MergeFrom overrides colors with every non-empty value in other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&c.Preset, other.Preset)
	merge(&c.Accent, other.Accent)
	merge(&c.Create, other.Create)
	merge(&c.ColumnBorder, other.ColumnBorder)
	merge(&c.TaskBorder, other.TaskBorder)
	merge(&c.SelectedBorder, other.SelectedBorder)
	merge(&c.DragBorder, other.DragBorder)
	merge(&c.Title, other.Title)
	merge(&c.Subtle, other.Subtle)
	merge(&c.Normal, other.Normal)
	merge(&c.PriorityLow, other.PriorityLow)
	merge(&c.PriorityMedium, other.PriorityMedium)
	merge(&c.PriorityHigh, other.PriorityHigh)
	merge(&c.PriorityUrgent, other.PriorityUrgent)
	merge(&c.InfoFg, other.InfoFg)
	merge(&c.InfoBg, other.InfoBg)
	merge(&c.WarningFg, other.WarningFg)
	merge(&c.WarningBg, other.WarningBg)
	merge(&c.ErrorFg, other.ErrorFg)
	merge(&c.ErrorBg, other.ErrorBg)
}
