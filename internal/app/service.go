// Package app provides the core engine service tying the skill graph,
// level table, decay classifier, update engine and exporter together
// behind one session-scoped facade.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/skilltree/internal/config"
	"github.com/okian/skilltree/internal/domain/award"
	"github.com/okian/skilltree/internal/domain/decay"
	"github.com/okian/skilltree/internal/domain/graph"
	"github.com/okian/skilltree/internal/domain/level"
	"github.com/okian/skilltree/internal/domain/model"
	"github.com/okian/skilltree/internal/export"
	"github.com/okian/skilltree/internal/persist"
	"github.com/okian/skilltree/pkg/logger"
	"github.com/okian/skilltree/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultRustyAfter     = 30 * 24 * time.Hour
	defaultVeryRustyAfter = 90 * 24 * time.Hour
	defaultExp            = 10
	defaultRandomDelta    = 5
	defaultDisplayFormat  = "%l %p%% (next: %n)"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithLevelTable sets the level table.
func WithLevelTable(t *level.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.table = t
		}
	}
}

// WithDecayThresholds sets the rusty and very-rusty cutoffs.
func WithDecayThresholds(rustyAfter, veryRustyAfter time.Duration) Option {
	return func(s *Service) {
		if rustyAfter > 0 && veryRustyAfter > rustyAfter {
			s.rustyAfter = rustyAfter
			s.veryRustyAfter = veryRustyAfter
		}
	}
}

// WithDefaultAward sets the base amount and random delta used by
// AwardDefault.
func WithDefaultAward(exp, delta int) Option {
	return func(s *Service) {
		if exp > 0 {
			s.defaultExp = exp
		}
		if delta >= 0 {
			s.randomDelta = delta
		}
	}
}

// WithFocusSkills sets the subset feeding the %f display placeholder.
func WithFocusSkills(names []string) Option {
	return func(s *Service) {
		s.focus = append([]string(nil), names...)
	}
}

// WithDisplayFormat sets the refresh template.
func WithDisplayFormat(format string) Option {
	return func(s *Service) {
		if format != "" {
			s.format = format
		}
	}
}

// WithExcludedLevels hides skills at the named levels from exports.
func WithExcludedLevels(names []string) Option {
	return func(s *Service) {
		s.excludedLevels = append([]string(nil), names...)
	}
}

// WithGraphFile sets the persisted graph path used by LoadFile/SaveFile.
func WithGraphFile(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.graphFile = path
		}
	}
}

// WithClock overrides the time source. Useful for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSeed seeds the award engine's random source.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = &seed
	}
}

// Service owns one session's skill graph and serializes every
// operation against it. Single writer; the periodic refresh tick is
// additionally guarded so an in-flight tick causes the next one to be
// skipped, never queued.
type Service struct {
	mu         sync.Mutex
	refreshing atomic.Bool

	graph    *graph.Graph
	table    *level.Table
	engine   *award.Engine
	exporter *export.Exporter

	rustyAfter     time.Duration
	veryRustyAfter time.Duration
	defaultExp     int
	randomDelta    int
	focus          []string
	format         string
	excludedLevels []string
	graphFile      string
	seed           *int64

	now func() time.Time
	log logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		graph:          graph.New(),
		table:          level.Default(),
		rustyAfter:     defaultRustyAfter,
		veryRustyAfter: defaultVeryRustyAfter,
		defaultExp:     defaultExp,
		randomDelta:    defaultRandomDelta,
		format:         defaultDisplayFormat,
		graphFile:      "skills.yaml",
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	engineOpts := []award.Option{award.WithLevelTable(s.table)}
	if s.seed != nil {
		engineOpts = append(engineOpts, award.WithSeed(*s.seed))
	}
	s.engine = award.New(engineOpts...)
	s.exporter = export.New(
		export.WithLevelTable(s.table),
		export.WithDecayThresholds(s.rustyAfter, s.veryRustyAfter),
		export.WithExcludedLevels(s.excludedLevels),
	)
	return s
}

// FromConfig builds a Service from loaded configuration.
func FromConfig(cfg *config.Config, opts ...Option) (*Service, error) {
	table, err := cfg.LevelTable()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithLevelTable(table),
		WithDecayThresholds(cfg.RustyAfter(), cfg.VeryRustyAfter()),
		WithDefaultAward(cfg.DefaultExp, cfg.RandomDelta),
		WithFocusSkills(cfg.FocusSkills),
		WithDisplayFormat(cfg.DisplayFormat),
		WithExcludedLevels(cfg.ExcludedLevels),
		WithGraphFile(cfg.GraphFile),
	}
	return New(append(base, opts...)...), nil
}

// Load replaces the session graph with records read from r. Malformed
// records are skipped per record and reported.
func (s *Service) Load(ctx context.Context, r io.Reader) (persist.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := graph.New()
	rep, err := persist.Load(r, g)
	if err != nil {
		return rep, err
	}
	s.graph = g
	s.observeGraph()
	metrics.RecordRecordsLoaded(rep.Loaded)
	metrics.RecordRecordsSkipped(len(rep.Skipped))
	if s.log != nil {
		s.log.Info(ctx, "graph loaded",
			logger.Int("skills", rep.Loaded),
			logger.Int("skipped", len(rep.Skipped)))
		for _, skip := range rep.Skipped {
			s.log.Warn(ctx, "skipped malformed record",
				logger.Int("index", skip.Index),
				logger.String("name", skip.Name),
				logger.Err(skip.Reason))
		}
	}
	return rep, nil
}

// LoadFile loads the configured graph file. A missing file yields an
// empty graph.
func (s *Service) LoadFile(ctx context.Context) (persist.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, rep, err := persist.LoadFile(s.graphFile)
	if err != nil {
		return rep, err
	}
	s.graph = g
	s.observeGraph()
	metrics.RecordRecordsLoaded(rep.Loaded)
	metrics.RecordRecordsSkipped(len(rep.Skipped))
	if s.log != nil {
		s.log.Info(ctx, "graph loaded",
			logger.String("path", s.graphFile),
			logger.Int("skills", rep.Loaded),
			logger.Int("skipped", len(rep.Skipped)))
	}
	return rep, nil
}

// Save writes the graph as a flat record list in stable insertion order.
func (s *Service) Save(_ context.Context, w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := persist.Save(w, s.graph); err != nil {
		return err
	}
	metrics.RecordRecordsSaved(s.graph.Len())
	return nil
}

// SaveFile writes the graph to the configured graph file.
func (s *Service) SaveFile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := persist.SaveFile(s.graphFile, s.graph); err != nil {
		return err
	}
	metrics.RecordRecordsSaved(s.graph.Len())
	if s.log != nil {
		s.log.Info(ctx, "graph saved",
			logger.String("path", s.graphFile),
			logger.Int("skills", s.graph.Len()))
	}
	return nil
}

// Award applies base experience plus the deadline penalty/bonus to the
// named skills, creating missing skills lazily.
func (s *Service) Award(ctx context.Context, names []string, baseExp, deadlineOffsetDays int, deps map[string][]model.Dependency) []award.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := s.engine.Apply(s.graph, award.Request{
		Skills:             names,
		BaseExp:            baseExp,
		DeadlineOffsetDays: deadlineOffsetDays,
		Now:                s.now(),
		NewDependencies:    deps,
	})
	if award.Penalty(baseExp, deadlineOffsetDays) < 0 {
		metrics.RecordPenalty()
	}
	for _, r := range results {
		if r.Err != nil {
			metrics.RecordAwardError()
			if s.log != nil {
				s.log.Warn(ctx, "award failed", logger.String("skill", r.Skill), logger.Err(r.Err))
			}
			continue
		}
		metrics.RecordAward()
		if r.NewLevel != "" {
			metrics.RecordLevelUp()
			if s.log != nil {
				s.log.Info(ctx, "level up",
					logger.String("skill", r.Skill),
					logger.String("level", r.NewLevel))
			}
		}
	}
	s.observeGraph()
	return results
}

// AwardDefault awards the configured randomized amount with no
// deadline offset.
func (s *Service) AwardDefault(ctx context.Context, names []string) []award.Result {
	return s.Award(ctx, names, s.DefaultAmount(), 0, nil)
}

// DefaultAmount draws one randomized default award: the configured
// base plus a uniform amount in [0, delta].
func (s *Service) DefaultAmount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SomeExp(s.defaultExp, s.randomDelta)
}

// Export returns the abstract node/edge snapshot of the graph at now.
func (s *Service) Export(_ context.Context) export.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	snap := s.exporter.Snapshot(s.graph, s.now())
	metrics.RecordExportLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	return snap
}

// WriteDOT renders the export snapshot as a Graphviz document.
func (s *Service) WriteDOT(ctx context.Context, w io.Writer) error {
	return s.Export(ctx).WriteDOT(w, export.DefaultStyle())
}

// Info describes one skill for display.
type Info struct {
	Name       string
	Experience int
	Total      int
	Level      string
	NextLevel  string
	Percent    float64
	Rustiness  decay.Rustiness
}

// SkillInfo returns the display view of one skill.
func (s *Service) SkillInfo(_ context.Context, name string) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skillInfo(name)
}

// SkillInfos returns the display view of every skill in insertion order.
func (s *Service) SkillInfos(_ context.Context) []Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]Info, 0, s.graph.Len())
	for _, name := range s.graph.Names() {
		info, err := s.skillInfo(name)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

func (s *Service) skillInfo(name string) (Info, error) {
	sk, ok := s.graph.Get(name)
	if !ok {
		return Info{}, graph.ErrNotFound
	}
	start := time.Now()
	total := s.graph.TotalExperience(name)
	metrics.RecordAggregationLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	current, next := s.table.LevelFor(total)
	return Info{
		Name:       name,
		Experience: sk.Experience,
		Total:      total,
		Level:      current.Name,
		NextLevel:  next.Name,
		Percent:    s.table.Percent(total),
		Rustiness:  decay.Classify(sk.LastModified, s.now(), s.rustyAfter, s.veryRustyAfter),
	}, nil
}

func (s *Service) observeGraph() {
	metrics.UpdateSkillCount(s.graph.Len())
	metrics.UpdateGraphExperience(s.graph.RawTotal())
}
