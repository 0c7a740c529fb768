package graph_test

import (
	"testing"

	"github.com/okian/skilltree/internal/domain/graph"
	"github.com/okian/skilltree/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func put(g *graph.Graph, name string, exp int, deps ...model.Dependency) {
	if err := g.Put(model.Skill{Name: name, Experience: exp, Dependencies: deps}); err != nil {
		panic(err)
	}
}

func dep(name string, weight float64) model.Dependency {
	return model.Dependency{Name: name, Weight: weight}
}

func TestTotalExperience(t *testing.T) {
	Convey("Given the experience aggregator", t, func() {
		g := graph.New()

		Convey("When a skill has no dependencies", func() {
			put(g, "unix", 42)

			Convey("Then total equals raw experience", func() {
				So(g.TotalExperience("unix"), ShouldEqual, 42)
			})
		})

		Convey("When a skill is missing", func() {
			So(g.TotalExperience("nope"), ShouldEqual, 0)
		})

		Convey("When a dependency name is dangling", func() {
			put(g, "coding", 10, dep("ghost", 2))

			Convey("Then it contributes zero", func() {
				So(g.TotalExperience("coding"), ShouldEqual, 10)
			})
		})

		Convey("When dependencies are weighted", func() {
			put(g, "unix", 9)
			put(g, "coding", 10, dep("unix", 0.5))

			Convey("Then each edge contribution is rounded", func() {
				// 10 + round(0.5 * 9) = 10 + 5
				So(g.TotalExperience("coding"), ShouldEqual, 15)
			})
		})

		Convey("When the graph has a two-node cycle", func() {
			put(g, "a", 10, dep("b", 1))
			put(g, "b", 20, dep("a", 1))

			Convey("Then aggregation terminates without double-counting the path", func() {
				So(g.TotalExperience("a"), ShouldEqual, 30)
				So(g.TotalExperience("b"), ShouldEqual, 30)
			})
		})

		Convey("When a skill depends on itself", func() {
			put(g, "ouroboros", 7, dep("ouroboros", 3))

			Convey("Then the self edge is ignored", func() {
				So(g.TotalExperience("ouroboros"), ShouldEqual, 7)
			})
		})

		Convey("When the graph is a diamond", func() {
			// a -> {b, c}, b -> d, c -> d, all weight 1.
			put(g, "d", 8)
			put(g, "b", 1, dep("d", 1))
			put(g, "c", 2, dep("d", 1))
			put(g, "a", 4, dep("b", 1), dep("c", 1))

			Convey("Then the shared ancestor is counted once per branch, not once globally", func() {
				// Sibling-exclusive propagation: both b's and c's branches
				// reach d. 4 + (1+8) + (2+8) = 23, not 15.
				So(g.TotalExperience("a"), ShouldEqual, 23)
			})
		})

		Convey("When siblings depend on each other", func() {
			// a -> {b, c} and b -> c: b's edge to its sibling is excluded.
			put(g, "c", 5)
			put(g, "b", 1, dep("c", 1))
			put(g, "a", 0, dep("b", 1), dep("c", 1))

			Convey("Then the sibling subtree is not traversed twice from the same level", func() {
				// 0 + b(1, c excluded as sibling) + c(5) = 6.
				So(g.TotalExperience("a"), ShouldEqual, 6)
			})
		})
	})
}

func TestMaxTotal(t *testing.T) {
	Convey("Given a graph", t, func() {
		g := graph.New()

		Convey("When it is empty", func() {
			So(g.MaxTotal(), ShouldEqual, 0)
		})

		Convey("When it has skills", func() {
			put(g, "unix", 9)
			put(g, "coding", 10, dep("unix", 1))

			Convey("Then the maximum total wins", func() {
				So(g.MaxTotal(), ShouldEqual, 19)
			})
		})
	})
}
