package render

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/icariumtech/mothership-console/constants"
)

var (
	footerBg   = RGB{R: 18, G: 26, B: 22}
	footerFg   = RGB{R: 150, G: 200, B: 170}
	footerWarn = RGB{R: 255, G: 190, B: 60}
)

// StatusFooter renders the bottom status line: active tier, sim clock,
// pause flag, frame time, and process CPU/RSS. Perf counters are sampled
// on an interval, not per frame; the gopsutil calls are not free.
type StatusFooter struct {
	proc *process.Process

	lastSample time.Time
	cpuPct     float64
	rssMB      float64
	perfOK     bool
}

func NewStatusFooter() *StatusFooter {
	f := &StatusFooter{}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		f.proc = p
		f.perfOK = true
	}
	return f
}

func (f *StatusFooter) sample() {
	if !f.perfOK || time.Since(f.lastSample) < constants.PerfSampleInterval {
		return
	}
	f.lastSample = time.Now()

	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		f.cpuPct = pcts[0]
	}
	if mi, err := f.proc.MemoryInfo(); err == nil {
		f.rssMB = float64(mi.RSS) / (1024 * 1024)
	}
}

func (f *StatusFooter) Render(ctx *Context, buf *Buffer) {
	f.sample()

	y := ctx.Height - 1
	for x := 0; x < ctx.Width; x++ {
		buf.Set(x, y, ' ', footerFg, footerBg, AttrNone)
	}

	var b strings.Builder
	fmt.Fprintf(&b, " %s", strings.ToUpper(ctx.Scene.Tier().String()))
	fmt.Fprintf(&b, " │ T+%s", formatClock(ctx.Sim.Clock.Seconds()))
	if ctx.FrameTime > 0 {
		fmt.Fprintf(&b, " │ %4.1fms", float64(ctx.FrameTime.Microseconds())/1000)
	}
	if f.perfOK {
		fmt.Fprintf(&b, " │ CPU %4.1f%% │ RSS %.0fMB", f.cpuPct, f.rssMB)
	}
	left := b.String()
	for i, r := range left {
		if i >= ctx.Width {
			break
		}
		buf.Set(i, y, r, footerFg, footerBg, AttrNone)
	}

	if ctx.Paused {
		label := " PAUSED "
		x := ctx.Width - len(label) - 1
		for i, r := range label {
			buf.Set(x+i, y, r, footerWarn, footerBg, AttrBold|AttrReverse)
		}
	}
}

func formatClock(elapsed float64) string {
	secs := int(elapsed)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}
