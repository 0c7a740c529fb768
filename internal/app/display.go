package app

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/okian/skilltree/pkg/metrics"
)

// Refresh renders the display line for the current graph. It is the
// periodic tick entry point: when a previous tick is still in flight
// the call reports skipped=true and does no work, so a slow tick is
// dropped rather than queued.
func (s *Service) Refresh(ctx context.Context) (line string, skipped bool) {
	if !s.refreshing.CompareAndSwap(false, true) {
		metrics.RecordRefreshSkipped()
		return "", true
	}
	defer s.refreshing.Store(false)

	start := time.Now()
	line = s.Display(ctx)
	metrics.RecordRefreshTick()
	metrics.RecordRefreshLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	return line, false
}

// Display substitutes the configured format template. Placeholders:
//
//	%t  graph-wide total experience (sum of raw experience)
//	%p  percent within the current level band of that total
//	%f  percent within level of the weakest focus skill
//	%l  current level name
//	%n  next level name
//	%%  literal percent sign
func (s *Service) Display(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.graph.RawTotal()
	current, next := s.table.LevelFor(total)
	return render(s.format, displayValues{
		total:   total,
		percent: s.table.Percent(total),
		focus:   s.focusPercent(),
		level:   current.Name,
		next:    next.Name,
	})
}

type displayValues struct {
	total   int
	percent float64
	focus   float64
	level   string
	next    string
}

// focusPercent reports how far the weakest focus skill (the one with
// the minimum total experience) is into its level band. Zero when no
// focus skill exists in the graph.
func (s *Service) focusPercent() float64 {
	min, found := 0, false
	for _, name := range s.focus {
		if !s.graph.Contains(name) {
			continue
		}
		total := s.graph.TotalExperience(name)
		if !found || total < min {
			min, found = total, true
		}
	}
	if !found {
		return 0
	}
	return s.table.Percent(min)
}

func render(format string, v displayValues) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case 't':
			b.WriteString(strconv.Itoa(v.total))
		case 'p':
			b.WriteString(formatPercent(v.percent))
		case 'f':
			b.WriteString(formatPercent(v.focus))
		case 'l':
			b.WriteString(v.level)
		case 'n':
			b.WriteString(v.next)
		case '%':
			b.WriteByte('%')
		default:
			// Unknown verb passes through untouched.
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 0, 64)
}
