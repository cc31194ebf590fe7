package sim

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/santa/ecs"
	"github.com/plus3/santa/internal/game"
)

// Report summarises one simulated session.
type Report struct {
	Seed       uint64
	Width      float64
	Height     float64
	TPS        int
	Realtime   bool
	Outcome    game.Outcome
	Session    game.Session
	Remaining  map[string]int
	Frames     int64
	GameTime   time.Duration
	WallTime   time.Duration
	Scheduler  *ecs.SchedulerStats
	Storage    *ecs.StorageStats
	FrameStats Stats
}

// Stats aggregates per-frame wall times.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Santa Simulation Report

## Setup
- **Seed:** {{.Seed}}
- **Window:** {{printf "%.0f" .Width}}x{{printf "%.0f" .Height}}
- **Tick Rate:** {{.TPS}} TPS{{if .Realtime}} (realtime){{end}}

## Outcome
- **Result:** {{outcome .Outcome}}
- **Score:** {{.Session.Score}}
- **Lives:** {{.Session.Lives}}
- **Speed:** {{printf "%.0f" .Session.Speed}}
{{- range $kind, $n := .Remaining}}
- **{{title $kind}} left:** {{$n}}
{{- end}}

## Timing
- **Frames:** {{.Frames}}
- **Game Time:** {{.GameTime}}
- **Wall Time:** {{.WallTime}}
{{- if .FrameStats.Samples}}
- **Frame Time:** avg {{.FrameStats.Avg}}, min {{.FrameStats.Min}}, max {{.FrameStats.Max}}
{{- end}}

## Storage
- **Entities:** {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes
- **Singletons:** {{join .Storage.SingletonTypes ", "}}
{{if .Scheduler}}
## Systems
| Stage | System | Runs | Skips | Avg | Max |
|---|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Stage}} | {{.Name}} | {{.ExecutionCount}} | {{.SkipCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}
{{end}}`

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"outcome": func(o game.Outcome) string {
			if msg := o.Message(); msg != "" {
				return fmt.Sprintf("%s (%s)", o, msg)
			}
			return "unfinished"
		},
		"join": strings.Join,
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
