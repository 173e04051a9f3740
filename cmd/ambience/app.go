package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/mixer"
	"github.com/lixenwraith/ambience/relay"
	"github.com/lixenwraith/ambience/ui"
)

// app is the single loop owning the mixer store
// Key events, relayed commands and redraw ticks are serialized here
type app struct {
	screen tcell.Screen
	store  *mixer.Store
	host   *relay.Host // nil without relay
	panel  *ui.Panel
	buf    *ui.Buffer
}

func newApp(title string, screen tcell.Screen, store *mixer.Store, host *relay.Host) *app {
	panel := ui.NewPanel(title, store)
	panel.SetEditor(store)

	w, h := screen.Size()
	return &app{
		screen: screen,
		store:  store,
		host:   host,
		panel:  panel,
		buf:    ui.NewBuffer(w, h),
	}
}

func (a *app) run() {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(constant.LoopTickInterval)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case ev := <-events:
			if resize, ok := ev.(*tcell.EventResize); ok {
				a.buf.Resize(resize.Size())
				a.screen.Sync()
			}
			if !a.panel.HandleEvent(ev) {
				return
			}
			a.draw()

		case <-ticker.C:
			if a.host != nil {
				a.host.Drain(a.store)
			}
			// Load state changes arrive from engine goroutines, so redraw every tick
			a.draw()
		}
	}
}

func (a *app) draw() {
	a.panel.Update(ui.StoreView(a.store))
	a.buf.Clear()
	a.panel.Draw(a.buf)
	a.buf.Flush(a.screen)
	a.screen.Show()
}
