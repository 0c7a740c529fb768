package app_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/skilltree/internal/app"
	"github.com/okian/skilltree/internal/domain/level"
	"github.com/okian/skilltree/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestServiceAward(t *testing.T) {
	Convey("Given a service with a fixed clock", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
		svc := app.New(app.WithClock(fixedClock(now)), app.WithSeed(1))

		Convey("When awarding a new skill with dependencies", func() {
			results := svc.Award(ctx, []string{"coding"}, 10, 0, map[string][]model.Dependency{
				"coding": {{Name: "unix", Weight: 1}},
			})
			So(results, ShouldHaveLength, 1)
			So(results[0].Err, ShouldBeNil)

			Convey("Then the skill exists with the award applied", func() {
				info, err := svc.SkillInfo(ctx, "coding")
				So(err, ShouldBeNil)
				So(info.Experience, ShouldEqual, 10)
				So(info.Total, ShouldEqual, 10) // unix does not exist yet
				So(info.Level, ShouldEqual, "Dabbling")
			})

			Convey("And awarding the dangling dependency later feeds the total", func() {
				svc.Award(ctx, []string{"unix"}, 40, 0, nil)
				info, err := svc.SkillInfo(ctx, "coding")
				So(err, ShouldBeNil)
				So(info.Total, ShouldEqual, 50)
			})
		})

		Convey("When using the randomized default award", func() {
			results := svc.AwardDefault(ctx, []string{"coding"})

			Convey("Then the amount stays inside the configured band", func() {
				So(results[0].Awarded, ShouldBeBetweenOrEqual, 10, 15)
			})
		})

		Convey("When asking about an unknown skill", func() {
			_, err := svc.SkillInfo(ctx, "nope")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestServicePersistence(t *testing.T) {
	Convey("Given a service bound to a graph file", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
		path := filepath.Join(t.TempDir(), "skills.yaml")
		svc := app.New(app.WithClock(fixedClock(now)), app.WithGraphFile(path))

		Convey("When awarding and saving", func() {
			svc.Award(ctx, []string{"coding"}, 25, 0, nil)
			So(svc.SaveFile(ctx), ShouldBeNil)

			Convey("Then a fresh service loads the same graph", func() {
				other := app.New(app.WithClock(fixedClock(now)), app.WithGraphFile(path))
				rep, err := other.LoadFile(ctx)
				So(err, ShouldBeNil)
				So(rep.Loaded, ShouldEqual, 1)
				info, err := other.SkillInfo(ctx, "coding")
				So(err, ShouldBeNil)
				So(info.Experience, ShouldEqual, 25)
			})
		})

		Convey("When loading a stream with malformed records", func() {
			doc := `
- name: coding
  experience: 10
  last_modified: 1700000000
- experience: 5
`
			rep, err := svc.Load(ctx, strings.NewReader(doc))

			Convey("Then the bad record is reported, the rest load", func() {
				So(err, ShouldBeNil)
				So(rep.Loaded, ShouldEqual, 1)
				So(rep.Skipped, ShouldHaveLength, 1)
			})
		})
	})
}

func TestServiceExport(t *testing.T) {
	Convey("Given a service with an excluded level", t, func() {
		ctx := context.Background()
		now := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
		tbl, err := level.New([]level.Entry{
			{Threshold: 0, Name: "Dabbling"},
			{Threshold: 100, Name: "Novice"},
		})
		So(err, ShouldBeNil)
		svc := app.New(
			app.WithClock(fixedClock(now)),
			app.WithLevelTable(tbl),
			app.WithExcludedLevels([]string{"Dabbling"}),
		)
		svc.Award(ctx, []string{"coding"}, 150, 0, nil)
		svc.Award(ctx, []string{"doodling"}, 5, 0, nil)

		Convey("When exporting a snapshot", func() {
			snap := svc.Export(ctx)

			Convey("Then only skills above the excluded level appear", func() {
				So(snap.Nodes, ShouldHaveLength, 1)
				So(snap.Nodes[0].Name, ShouldEqual, "coding")
				So(snap.Nodes[0].Level, ShouldEqual, "Novice")
			})
		})

		Convey("When rendering DOT", func() {
			var b strings.Builder
			So(svc.WriteDOT(ctx, &b), ShouldBeNil)
			So(b.String(), ShouldContainSubstring, `"coding"`)
			So(b.String(), ShouldNotContainSubstring, `"doodling"`)
		})
	})
}
