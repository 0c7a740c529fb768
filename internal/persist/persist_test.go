package persist_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/skilltree/internal/domain/graph"
	"github.com/okian/skilltree/internal/domain/model"
	"github.com/okian/skilltree/internal/persist"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given the flat-list graph codec", t, func() {
		Convey("When loading bare and weighted dependency forms", func() {
			doc := `
- name: unix
  experience: 50
  last_modified: 1700000000
- name: coding
  experience: 100
  last_modified: 1700000000
  dependencies:
    - unix
    - name: algorithms
      weight: 0.5
`
			g := graph.New()
			rep, err := persist.Load(strings.NewReader(doc), g)

			Convey("Then both forms decode, bare names defaulting to weight 1", func() {
				So(err, ShouldBeNil)
				So(rep.Loaded, ShouldEqual, 2)
				So(rep.Skipped, ShouldBeEmpty)
				s, ok := g.Get("coding")
				So(ok, ShouldBeTrue)
				So(s.Dependencies, ShouldResemble, []model.Dependency{
					{Name: "unix", Weight: 1},
					{Name: "algorithms", Weight: 0.5},
				})
				So(s.LastModified.Unix(), ShouldEqual, 1700000000)
			})
		})

		Convey("When the document contains malformed records", func() {
			doc := `
- name: good
  experience: 10
  last_modified: 1700000000
- name: ""
  experience: 5
- name: negative
  experience: -3
- name: badweight
  experience: 1
  dependencies:
    - name: good
      weight: -2
- name: good
  experience: 99
`
			g := graph.New()
			rep, err := persist.Load(strings.NewReader(doc), g)

			Convey("Then bad records are skipped individually, not fatally", func() {
				So(err, ShouldBeNil)
				So(rep.Loaded, ShouldEqual, 1)
				So(rep.Skipped, ShouldHaveLength, 4)
				So(errors.Is(rep.Skipped[0].Reason, persist.ErrUnnamedRecord), ShouldBeTrue)
				So(errors.Is(rep.Skipped[1].Reason, persist.ErrNegativeExperience), ShouldBeTrue)
				So(errors.Is(rep.Skipped[2].Reason, persist.ErrBadDependency), ShouldBeTrue)
				So(errors.Is(rep.Skipped[3].Reason, persist.ErrDuplicateName), ShouldBeTrue)

				Convey("And the first record under a duplicated name wins", func() {
					s, _ := g.Get("good")
					So(s.Experience, ShouldEqual, 10)
				})
			})
		})

		Convey("When the document is not a list at all", func() {
			g := graph.New()
			_, err := persist.Load(strings.NewReader("just a scalar"), g)
			So(errors.Is(err, persist.ErrUnreadable), ShouldBeTrue)
		})
	})
}

func TestSaveRoundTrip(t *testing.T) {
	Convey("Given a populated graph", t, func() {
		now := time.Unix(1700000000, 0)
		g := graph.New()
		So(g.Put(model.Skill{Name: "unix", Experience: 50, LastModified: now}), ShouldBeNil)
		So(g.Put(model.Skill{
			Name:         "coding",
			Experience:   100,
			LastModified: now,
			Dependencies: []model.Dependency{
				{Name: "unix", Weight: 1},
				{Name: "algorithms", Weight: 0.5},
			},
		}), ShouldBeNil)

		Convey("When saving and reloading", func() {
			var b strings.Builder
			So(persist.Save(&b, g), ShouldBeNil)

			Convey("Then unit weights serialize as bare names", func() {
				So(b.String(), ShouldContainSubstring, "- unix\n")
			})

			Convey("Then the reloaded graph matches in insertion order", func() {
				reloaded := graph.New()
				rep, err := persist.Load(strings.NewReader(b.String()), reloaded)
				So(err, ShouldBeNil)
				So(rep.Loaded, ShouldEqual, 2)
				So(reloaded.Names(), ShouldResemble, []string{"unix", "coding"})
				So(reloaded.Snapshot(), ShouldResemble, g.Snapshot())
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given graph files on disk", t, func() {
		dir := t.TempDir()

		Convey("When the file does not exist", func() {
			g, rep, err := persist.LoadFile(filepath.Join(dir, "missing.yaml"))

			Convey("Then an empty graph is returned; skills are created lazily", func() {
				So(err, ShouldBeNil)
				So(rep.Loaded, ShouldEqual, 0)
				So(g.Len(), ShouldEqual, 0)
			})
		})

		Convey("When saving to a path and loading it back", func() {
			path := filepath.Join(dir, "skills.yaml")
			g := graph.New()
			So(g.Put(model.Skill{Name: "coding", Experience: 5, LastModified: time.Unix(1700000000, 0)}), ShouldBeNil)
			So(persist.SaveFile(path, g), ShouldBeNil)

			loaded, rep, err := persist.LoadFile(path)
			So(err, ShouldBeNil)
			So(rep.Loaded, ShouldEqual, 1)
			So(loaded.Snapshot(), ShouldResemble, g.Snapshot())
		})
	})
}
