package worker

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ReportKind names one of the catalog reports the worker can run.
type ReportKind string

const (
	KindPopularVideos  ReportKind = "popular_videos"
	KindCategoryTotals ReportKind = "category_totals"
	KindRecentItems    ReportKind = "recent_items"
)

func (k ReportKind) valid() bool {
	switch k {
	case KindPopularVideos, KindCategoryTotals, KindRecentItems:
		return true
	}
	return false
}

// windowed reports take a day window.
func (k ReportKind) windowed() bool {
	return k == KindPopularVideos || k == KindRecentItems
}

// Report is one entry of the plan.
type Report struct {
	Name    string     `yaml:"name"`
	Kind    ReportKind `yaml:"kind"`
	Days    *int       `yaml:"days,omitempty"`
	Enabled *bool      `yaml:"enabled,omitempty"`
}

// IsEnabled reports whether the entry runs. Entries are enabled unless
// they say otherwise.
func (r Report) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// Window returns the day window of a windowed report.
func (r Report) Window() int {
	if r.Days == nil {
		return 0
	}
	return *r.Days
}

// Plan is the list of reports run on every tick.
type Plan struct {
	Reports []Report `yaml:"reports"`
}

// Active returns the enabled reports in file order.
func (p Plan) Active() []Report {
	out := make([]Report, 0, len(p.Reports))
	for _, r := range p.Reports {
		if r.IsEnabled() {
			out = append(out, r)
		}
	}
	return out
}

// DefaultPlan runs each report kind once over windowDays.
func DefaultPlan(windowDays int) Plan {
	days := func() *int { d := windowDays; return &d }
	return Plan{Reports: []Report{
		{Name: "popular-videos", Kind: KindPopularVideos, Days: days()},
		{Name: "category-totals", Kind: KindCategoryTotals},
		{Name: "recent-items", Kind: KindRecentItems, Days: days()},
	}}
}

// ErrEmptyPlan is returned for a plan without reports.
var ErrEmptyPlan = errors.New("report plan has no reports")

// ParsePlan decodes a YAML plan. Unknown keys are rejected. Windowed
// reports without days get windowDays.
func ParsePlan(data []byte, windowDays int) (Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Plan{}, ErrEmptyPlan
		}
		return Plan{}, fmt.Errorf("decode report plan: %w", err)
	}
	if len(p.Reports) == 0 {
		return Plan{}, ErrEmptyPlan
	}

	seen := make(map[string]bool, len(p.Reports))
	for i := range p.Reports {
		r := &p.Reports[i]
		if r.Name == "" {
			return Plan{}, fmt.Errorf("report %d: name is required", i)
		}
		if seen[r.Name] {
			return Plan{}, fmt.Errorf("report %q: duplicate name", r.Name)
		}
		seen[r.Name] = true
		if !r.Kind.valid() {
			return Plan{}, fmt.Errorf("report %q: unknown kind %q", r.Name, r.Kind)
		}
		if r.Days != nil && *r.Days < 0 {
			return Plan{}, fmt.Errorf("report %q: days must be zero or positive", r.Name)
		}
		if r.Kind.windowed() && r.Days == nil {
			d := windowDays
			r.Days = &d
		}
	}
	return p, nil
}

// LoadPlan reads the plan at path, or returns DefaultPlan when path is empty.
func LoadPlan(path string, windowDays int) (Plan, error) {
	if path == "" {
		return DefaultPlan(windowDays), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read report plan: %w", err)
	}
	return ParsePlan(data, windowDays)
}
