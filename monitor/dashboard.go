// Package monitor draws live run statistics on a terminal screen
package monitor

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/routega/genetic/tracking"
)

// Layout
const (
	headerRows   = 1
	statRows     = 6
	sparkTop     = headerRows + statRows + 1
	maxSparkData = 512
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

var (
	styleHeader = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorTeal).Bold(true)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleValue  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSpark  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFooter = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Dashboard shows the latest sample and a sparkline of best cost.
// Push may be called from any goroutine; Run owns the event loop.
type Dashboard struct {
	screen tcell.Screen
	title  string
	cancel context.CancelFunc

	mu      sync.Mutex
	latest  tracking.Sample
	history []int64
	has     bool
}

// Open initializes the terminal and returns a dashboard bound to it
func Open(title string, cancel context.CancelFunc) (*Dashboard, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen, title, cancel), nil
}

// New wraps an initialized screen; cancel is called when the user quits
func New(screen tcell.Screen, title string, cancel context.CancelFunc) *Dashboard {
	screen.HideCursor()
	return &Dashboard{screen: screen, title: title, cancel: cancel}
}

// Push records a sample and redraws
func (d *Dashboard) Push(s tracking.Sample) {
	d.mu.Lock()
	d.latest = s
	d.has = true
	d.history = append(d.history, s.Best)
	if len(d.history) > maxSparkData {
		d.history = slices.Delete(d.history, 0, len(d.history)-maxSparkData)
	}
	d.mu.Unlock()

	d.draw()
}

// Run processes terminal events until ctx ends or the user quits with q, Esc or Ctrl-C
func (d *Dashboard) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	d.draw()
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return
			}
		case *tcell.EventResize:
			d.screen.Sync()
			d.draw()
		case *tcell.EventKey:
			if quitKey(ev) {
				d.cancel()
				return
			}
		}
	}
}

// Close restores the terminal
func (d *Dashboard) Close() {
	d.screen.Fini()
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (d *Dashboard) draw() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.screen.Clear()
	w, h := d.screen.Size()

	for x := range w {
		d.screen.SetContent(x, 0, ' ', nil, styleHeader)
	}
	drawText(d.screen, 1, 0, styleHeader, d.title)

	if !d.has {
		drawText(d.screen, 1, headerRows+1, styleLabel, "waiting for first sample...")
	} else {
		s := d.latest
		rows := [statRows][2]string{
			{"step", fmt.Sprintf("%d", s.Step)},
			{"best", fmt.Sprintf("%d", s.Best)},
			{"mean", fmt.Sprintf("%.1f", s.Mean)},
			{"stddev", fmt.Sprintf("%.1f", s.StdDev)},
			{"pool", fmt.Sprintf("%d", s.PoolSize)},
			{"elapsed", s.Elapsed.Round(1e6).String()},
		}
		for i, r := range rows {
			drawText(d.screen, 1, headerRows+i, styleLabel, r[0])
			drawText(d.screen, 10, headerRows+i, styleValue, r[1])
		}
		drawSpark(d.screen, 1, sparkTop, w-2, d.history)
	}

	drawText(d.screen, 1, h-1, styleFooter, "q/Esc: stop run")
	d.screen.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawSpark plots the last width values, lowest cost as the tallest bar
func drawSpark(s tcell.Screen, x, y, width int, values []int64) {
	if width <= 0 || len(values) == 0 {
		return
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	lo, hi := slices.Min(values), slices.Max(values)
	for i, v := range values {
		level := len(sparkRunes) - 1
		if hi > lo {
			level = int((hi - v) * int64(len(sparkRunes)-1) / (hi - lo))
		}
		s.SetContent(x+i, y, sparkRunes[level], nil, styleSpark)
	}
}
