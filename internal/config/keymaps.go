package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Board
	PickUpTask    string `yaml:"pick_up_task"`
	CancelDrag    string `yaml:"cancel_drag"`
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	StartTimer    string `yaml:"start_timer"`
	StopTimer     string `yaml:"stop_timer"`
	ProgressUp    string `yaml:"progress_up"`
	ProgressDown  string `yaml:"progress_down"`
	AddTask       string `yaml:"add_task"`
	ToggleView    string `yaml:"toggle_view"`

	// Announcements
	Acknowledge        string `yaml:"acknowledge"`
	CreateAnnouncement string `yaml:"create_announcement"`

	// Leaves
	ApplyLeave   string `yaml:"apply_leave"`
	ApproveLeave string `yaml:"approve_leave"`
	RejectLeave  string `yaml:"reject_leave"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTask   string `yaml:"prev_task"`
	NextTask   string `yaml:"next_task"`
	NextPage   string `yaml:"next_page"`
	PrevPage   string `yaml:"prev_page"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Logout   string `yaml:"logout"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PickUpTask:    "space",
		CancelDrag:    "esc",
		MoveTaskLeft:  "<",
		MoveTaskRight: ">",
		StartTimer:    "s",
		StopTimer:     "x",
		ProgressUp:    "+",
		ProgressDown:  "-",
		AddTask:       "a",
		ToggleView:    "v",

		Acknowledge:        "enter",
		CreateAnnouncement: "n",

		ApplyLeave:   "n",
		ApproveLeave: "y",
		RejectLeave:  "d",

		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",
		NextPage:   "tab",
		PrevPage:   "shift+tab",

		Refresh:  "r",
		ShowHelp: "?",
		Logout:   "ctrl+o",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	d := DefaultKeyMappings()

	fill(&k.PickUpTask, d.PickUpTask)
	fill(&k.CancelDrag, d.CancelDrag)
	fill(&k.MoveTaskLeft, d.MoveTaskLeft)
	fill(&k.MoveTaskRight, d.MoveTaskRight)
	fill(&k.StartTimer, d.StartTimer)
	fill(&k.StopTimer, d.StopTimer)
	fill(&k.ProgressUp, d.ProgressUp)
	fill(&k.ProgressDown, d.ProgressDown)
	fill(&k.AddTask, d.AddTask)
	fill(&k.ToggleView, d.ToggleView)
	fill(&k.Acknowledge, d.Acknowledge)
	fill(&k.CreateAnnouncement, d.CreateAnnouncement)
	fill(&k.ApplyLeave, d.ApplyLeave)
	fill(&k.ApproveLeave, d.ApproveLeave)
	fill(&k.RejectLeave, d.RejectLeave)
	fill(&k.PrevColumn, d.PrevColumn)
	fill(&k.NextColumn, d.NextColumn)
	fill(&k.PrevTask, d.PrevTask)
	fill(&k.NextTask, d.NextTask)
	fill(&k.NextPage, d.NextPage)
	fill(&k.PrevPage, d.PrevPage)
	fill(&k.Refresh, d.Refresh)
	fill(&k.ShowHelp, d.ShowHelp)
	fill(&k.Logout, d.Logout)
	fill(&k.Quit, d.Quit)
}

// fill sets *dst to def when it is empty
func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
