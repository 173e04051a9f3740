package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ambience/catalog"
	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/logging"
	"github.com/lixenwraith/ambience/mixer"
	"github.com/lixenwraith/ambience/network"
	"github.com/lixenwraith/ambience/relay"
	"github.com/lixenwraith/ambience/service"
	"github.com/lixenwraith/ambience/ui"
)

var (
	debugFlag = flag.Bool("debug", false, "Write logs to logs/ambience-panel.log")
	relayFlag = flag.String("relay", "", "Relay address of the main window: unix:/path or host:port")
)

// errMainClosed ends the panel when the main window goes away
var errMainClosed = errors.New("main window closed")

func main() {
	flag.Parse()

	logFile := logging.Setup(logging.Dir, "ambience-panel.log", *debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ambience-panel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	netCfg := network.LoadConfig(network.RoleClient)
	if *relayFlag != "" {
		netCfg = network.LocalConfig(network.RoleClient, *relayFlag)
	}

	hub := service.NewHub()
	netSvc := network.NewService()
	if err := hub.Register(netSvc, netCfg); err != nil {
		return err
	}
	if err := hub.InitAll(); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	ch := relay.NewNetChannel(netSvc.Transport())
	defer ch.Close()
	remote := relay.NewRemote(ch)
	defer remote.Close()

	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("is the main window running? %w", err)
	}
	defer hub.StopAll()
	log.Printf("ambience-panel: connected to %s as %s", netCfg.Address, remote.ID())

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mAMBIENCE PANEL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	// Snapshots arrive on relay goroutines; hand them to the loop as interrupts
	remote.OnState(func(snap mixer.Snapshot) {
		screen.PostEvent(tcell.NewEventInterrupt(snap))
	})
	go syncState(remote)

	err = loop(screen, remote, netSvc.Transport())
	screen.Fini()

	if errors.Is(err, errMainClosed) {
		fmt.Fprintln(os.Stderr, "ambience-panel: main window closed")
		return nil
	}
	return err
}

// syncState pulls the current state once, falling back to a broadcast request
func syncState(remote *relay.Remote) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := remote.FetchState(ctx); err != nil {
		log.Printf("ambience-panel: fetch state: %v (requesting broadcast)", err)
		remote.RequestState()
	}
}

func loop(screen tcell.Screen, remote *relay.Remote, transport *network.Transport) error {
	panel := ui.NewPanel("Ambient Sounds", remote)
	sounds := catalog.All()

	w, h := screen.Size()
	buf := ui.NewBuffer(w, h)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	draw := func() {
		buf.Clear()
		panel.Draw(buf)
		buf.Flush(screen)
		screen.Show()
	}

	ticker := time.NewTicker(constant.LoopTickInterval)
	defer ticker.Stop()

	draw()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventInterrupt:
				if snap, ok := ev.Data().(mixer.Snapshot); ok {
					panel.Update(ui.SnapshotView(snap, sounds))
				}
			case *tcell.EventResize:
				buf.Resize(ev.Size())
				screen.Sync()
			default:
				if !panel.HandleEvent(ev) {
					return nil
				}
			}
			draw()

		case <-ticker.C:
			if transport.PeerCount() == 0 {
				return errMainClosed
			}
		}
	}
}
