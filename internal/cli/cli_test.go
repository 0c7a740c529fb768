package cli

import (
	"testing"
	"time"

	"github.com/okian/skilltree/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDeps(t *testing.T) {
	Convey("Given dependency flag parsing", t, func() {
		Convey("When a bare name is given", func() {
			deps, err := parseDeps([]string{"unix"})
			So(err, ShouldBeNil)
			So(deps, ShouldResemble, []model.Dependency{{Name: "unix", Weight: 1}})
		})

		Convey("When a weight is attached", func() {
			deps, err := parseDeps([]string{"unix:0.5", "algorithms:2"})
			So(err, ShouldBeNil)
			So(deps, ShouldResemble, []model.Dependency{
				{Name: "unix", Weight: 0.5},
				{Name: "algorithms", Weight: 2},
			})
		})

		Convey("When the weight does not parse", func() {
			_, err := parseDeps([]string{"unix:heavy"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestStarterGraph(t *testing.T) {
	Convey("Given the starter graph", t, func() {
		g := starterGraph(time.Unix(1700000000, 0))

		Convey("Then it holds the example tree in insertion order", func() {
			So(g.Names(), ShouldResemble, []string{"unix", "algorithms", "coding"})
			coding, ok := g.Get("coding")
			So(ok, ShouldBeTrue)
			So(coding.Dependencies, ShouldHaveLength, 2)
		})
	})
}
