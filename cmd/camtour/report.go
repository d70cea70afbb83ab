package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/plus3/camanim/anim"
)

type Report struct {
	// Configuration
	Script        string
	Steps         int
	ScriptTime    time.Duration
	FrameInterval time.Duration

	// Results
	Frames       int64
	Span         time.Duration
	WallTime     time.Duration
	TickTime     Stats
	Ticker       anim.TickerStats
	Queue        anim.ManagerStats
	Completions  map[string]int
	MemStatsInit runtime.MemStats
	MemStatsEnd  runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Add(d time.Duration) {
	s.Samples = append(s.Samples, d)
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

// Overrun is how far the queue drain went past the summed step durations.
// Steps only finish on a tick, so this is at most one frame per step.
func (r *Report) Overrun() time.Duration {
	return r.Span - r.ScriptTime
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Camera Tour Report

## Run Configuration
- **Script:** {{.Script}}
- **Steps:** {{.Steps}}
- **Scripted Duration:** {{.ScriptTime}}
- **Frame Interval:** {{.FrameInterval}}

## Timeline
- **Frames:** {{comma .Frames}}
- **Drain Span:** {{.Span}} (overrun {{.Overrun}})
- **Wall Time:** {{.WallTime}}
- **Steps:** {{.Queue.Started}} started, {{.Queue.Completed}} completed, {{.Queue.Dropped}} dropped, {{.Queue.Faulted}} faulted
{{- range $event, $n := .Completions}}
- **{{$event}}:** {{$n}}
{{- end}}

## Tick Delivery
- **Callbacks Delivered:** {{comma .Ticker.Delivered}} ({{.Ticker.Faults}} faults)
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage
- Heap Alloc:  {{bytes .MemStatsInit.HeapAlloc}} (start) -> {{bytes .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc: {{bytes (bsub .MemStatsEnd.TotalAlloc .MemStatsInit.TotalAlloc)}} during run
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsInit.NumGC}}
`

	fm := template.FuncMap{
		"bytes": humanize.Bytes,
		"comma": humanize.Comma,
		"bsub": func(a, b uint64) uint64 {
			if a < b {
				return 0
			}
			return a - b
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
