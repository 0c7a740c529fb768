package config_test

import (
	"testing"
	"time"

	"github.com/okian/skilltree/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.GraphFile, convey.ShouldEqual, "skills.yaml")
			convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9180")
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Minute)
			convey.So(cfg.RustyAfter(), convey.ShouldEqual, 30*24*time.Hour)
			convey.So(cfg.VeryRustyAfter(), convey.ShouldEqual, 90*24*time.Hour)
			convey.So(cfg.DefaultExp, convey.ShouldEqual, 10)
			convey.So(cfg.RandomDelta, convey.ShouldEqual, 5)
			convey.So(cfg.DisplayFormat, convey.ShouldEqual, "%l %p%% (next: %n)")
		})

		convey.Convey("Then the built-in level table applies", func() {
			tbl, err := cfg.LevelTable()
			convey.So(err, convey.ShouldBeNil)
			convey.So(tbl.Names()[0], convey.ShouldEqual, "Dabbling")
		})
	})

	convey.Convey("Given a config with custom levels", t, func() {
		cfg := config.New()
		cfg.Levels = []config.LevelEntry{
			{Threshold: 0, Name: "Newbie"},
			{Threshold: 100, Name: "Adept"},
		}

		convey.Convey("Then LevelTable builds them", func() {
			tbl, err := cfg.LevelTable()
			convey.So(err, convey.ShouldBeNil)
			convey.So(tbl.Names(), convey.ShouldResemble, []string{"Newbie", "Adept"})
		})

		convey.Convey("And an invalid table is rejected", func() {
			cfg.Levels = []config.LevelEntry{{Threshold: 100, Name: "Adept"}}
			_, err := cfg.LevelTable()
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
