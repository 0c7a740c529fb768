package decay_test

import (
	"testing"
	"time"

	"github.com/okian/skilltree/internal/domain/decay"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given decay thresholds of 10 and 30 days", t, func() {
		rustyAfter := 10 * 24 * time.Hour
		veryRustyAfter := 30 * 24 * time.Hour
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		Convey("When the skill was touched recently", func() {
			last := now.Add(-24 * time.Hour)
			So(decay.Classify(last, now, rustyAfter, veryRustyAfter), ShouldEqual, decay.Fresh)
		})

		Convey("When elapsed equals the rusty threshold exactly", func() {
			last := now.Add(-rustyAfter)
			So(decay.Classify(last, now, rustyAfter, veryRustyAfter), ShouldEqual, decay.Fresh)
		})

		Convey("When elapsed is between the thresholds", func() {
			last := now.Add(-15 * 24 * time.Hour)
			So(decay.Classify(last, now, rustyAfter, veryRustyAfter), ShouldEqual, decay.Rusty)
		})

		Convey("When elapsed equals the very-rusty threshold exactly", func() {
			last := now.Add(-veryRustyAfter)
			So(decay.Classify(last, now, rustyAfter, veryRustyAfter), ShouldEqual, decay.Rusty)
		})

		Convey("When elapsed exceeds the very-rusty threshold", func() {
			last := now.Add(-31 * 24 * time.Hour)
			So(decay.Classify(last, now, rustyAfter, veryRustyAfter), ShouldEqual, decay.VeryRusty)
		})
	})
}

func TestRustinessString(t *testing.T) {
	Convey("Given the rustiness states", t, func() {
		So(decay.Fresh.String(), ShouldEqual, "fresh")
		So(decay.Rusty.String(), ShouldEqual, "rusty")
		So(decay.VeryRusty.String(), ShouldEqual, "very-rusty")
	})
}
