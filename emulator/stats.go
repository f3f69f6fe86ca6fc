package emulator

import (
	"log/slog"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const StatsAddress = "localhost:12600"

// LaunchStats starts a HTTP server with runtime statistics in a new
// goroutine. Graphs are served under /debug/statsview and pprof data under
// /debug/pprof/.
func LaunchStats(log *slog.Logger) {
	viewer.SetConfiguration(viewer.WithAddr(StatsAddress))
	mgr := statsview.New()
	go mgr.Start()

	log.Info("stats server available", "url", "http://"+StatsAddress+"/debug/statsview")
}
