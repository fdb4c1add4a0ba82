package prompts

import "strings"

// Set holds every piece of prompt text the service sends to the model.
type Set struct {
	System          string   `yaml:"system"`
	Preamble        string   `yaml:"preamble"` // {week} is replaced by the edition key
	LinksHeading    string   `yaml:"links_heading"`
	ThoughtsHeading string   `yaml:"thoughts_heading"`
	Formatting      []string `yaml:"formatting"`

	TitleSystem string `yaml:"title_system"`
	TitleUser   string `yaml:"title_user"` // {content} is replaced by the generated body

	SummarizeSystem string `yaml:"summarize_system"`

	FailureMarker string `yaml:"failure_marker"`
	FallbackTitle string `yaml:"fallback_title"`
}

// merge returns s with every empty field taken from base.
func (s Set) merge(base Set) Set {
	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	out := Set{
		System:          pick(s.System, base.System),
		Preamble:        pick(s.Preamble, base.Preamble),
		LinksHeading:    pick(s.LinksHeading, base.LinksHeading),
		ThoughtsHeading: pick(s.ThoughtsHeading, base.ThoughtsHeading),
		Formatting:      s.Formatting,
		TitleSystem:     pick(s.TitleSystem, base.TitleSystem),
		TitleUser:       pick(s.TitleUser, base.TitleUser),
		SummarizeSystem: pick(s.SummarizeSystem, base.SummarizeSystem),
		FailureMarker:   pick(s.FailureMarker, base.FailureMarker),
		FallbackTitle:   pick(s.FallbackTitle, base.FallbackTitle),
	}
	if len(out.Formatting) == 0 {
		out.Formatting = append([]string(nil), base.Formatting...)
	}
	return out
}
