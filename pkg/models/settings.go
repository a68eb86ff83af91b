package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Typing       TypingSettings       `yaml:"typing" toml:"typing"`
	Choreography ChoreographySettings `yaml:"choreography" toml:"choreography"`
	Highlight    HighlightSettings    `yaml:"highlight" toml:"highlight"`
	Inquiries    InquirySettings      `yaml:"inquiries" toml:"inquiries"`
	Scan         ScanSettings         `yaml:"scan" toml:"scan"`
	Templates    TemplateSettings     `yaml:"templates" toml:"templates"`
	UI           UISettings           `yaml:"ui" toml:"ui"`
}

// TypingSettings controls the auto-typing animation
type TypingSettings struct {
	CharDelay  Duration `yaml:"char_delay" toml:"char_delay"`
	FieldPause Duration `yaml:"field_pause" toml:"field_pause"`
}

// ChoreographySettings controls the post-save scroll sequence
type ChoreographySettings struct {
	Enabled       bool     `yaml:"enabled" toml:"enabled"`
	ScrollOffset  int      `yaml:"scroll_offset" toml:"scroll_offset"` // lines kept above the target
	CollapseDelay Duration `yaml:"collapse_delay" toml:"collapse_delay"`
	NextDelay     Duration `yaml:"next_delay" toml:"next_delay"`
}

// HighlightSettings controls transient field warnings
type HighlightSettings struct {
	Duration Duration `yaml:"duration" toml:"duration"`
}

// InquirySettings controls the recent/older split
type InquirySettings struct {
	RecentMonths int `yaml:"recent_months" toml:"recent_months"`
}

// ScanSettings configures the compliance scan collaborator
type ScanSettings struct {
	Provider    string   `yaml:"provider" toml:"provider"` // "rules" or "http"
	Endpoint    string   `yaml:"endpoint" toml:"endpoint"`
	APIKeyEnv   string   `yaml:"api_key_env" toml:"api_key_env"`
	Timeout     Duration `yaml:"timeout" toml:"timeout"`
	MinInterval Duration `yaml:"min_interval" toml:"min_interval"`
}

// TemplateSettings configures the template persistence collaborator
type TemplateSettings struct {
	Provider string `yaml:"provider" toml:"provider"` // "file" or "http"
	Endpoint string `yaml:"endpoint" toml:"endpoint"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowDetails bool     `yaml:"show_details" toml:"show_details"`
	Bureaus     []Bureau `yaml:"bureaus" toml:"bureaus"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Typing: TypingSettings{
			CharDelay:  Duration(15 * time.Millisecond),
			FieldPause: Duration(300 * time.Millisecond),
		},
		Choreography: ChoreographySettings{
			Enabled:       true,
			ScrollOffset:  3,
			CollapseDelay: Duration(800 * time.Millisecond),
			NextDelay:     Duration(400 * time.Millisecond),
		},
		Highlight: HighlightSettings{
			Duration: Duration(2 * time.Second),
		},
		Inquiries: InquirySettings{
			RecentMonths: 24,
		},
		Scan: ScanSettings{
			Provider:    "rules",
			APIKeyEnv:   "DISPUTEDESK_SCAN_KEY",
			Timeout:     Duration(45 * time.Second),
			MinInterval: Duration(5 * time.Second),
		},
		Templates: TemplateSettings{
			Provider: "file",
		},
		UI: UISettings{
			ShowDetails: false,
			Bureaus:     append([]Bureau(nil), AllBureaus...),
		},
	}
}
