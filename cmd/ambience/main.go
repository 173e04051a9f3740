package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/ambience/audio"
	"github.com/lixenwraith/ambience/constant"
	"github.com/lixenwraith/ambience/logging"
	"github.com/lixenwraith/ambience/mixer"
	"github.com/lixenwraith/ambience/network"
	"github.com/lixenwraith/ambience/persist"
	"github.com/lixenwraith/ambience/relay"
	"github.com/lixenwraith/ambience/service"
)

var (
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/ambience.log")
	dataFlag   = flag.String("data", "data", "Directory holding the saved mixer state")
	soundsFlag = flag.String("sounds", "", "Directory containing sound files (overrides AMBIENCE_SOUNDS_DIR)")
	relayFlag  = flag.String("relay", "", "Relay address for the secondary panel: unix:/path, host:port, or off")
	muteFlag   = flag.Bool("mute", false, "Run without audio output")
)

func main() {
	flag.Parse()

	logFile := logging.Setup(logging.Dir, "ambience.log", *debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ambience: %v\n", err)
		os.Exit(1)
	}
}

// run wires services, the mixer and the panel, and blocks until the user quits
func run() error {
	audioCfg := audio.LoadAudioConfig()
	if *soundsFlag != "" {
		audioCfg.SoundsDir = *soundsFlag
	}
	if *muteFlag {
		audioCfg.Enabled = false
	}

	netCfg := network.LoadConfig(network.RoleServer)
	switch *relayFlag {
	case "":
	case "off":
		netCfg.Role = network.RoleNone
	default:
		netCfg = network.LocalConfig(network.RoleServer, *relayFlag)
	}

	hub := service.NewHub()
	audioSvc := audio.NewService()
	netSvc := network.NewService()
	if err := hub.Register(audioSvc, audioCfg); err != nil {
		return err
	}
	if err := hub.Register(netSvc, netCfg); err != nil {
		return err
	}
	if err := hub.InitAll(); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	// Handlers attach before the transport starts accepting panels
	var host *relay.Host
	if t := netSvc.Transport(); t != nil {
		ch := relay.NewNetChannel(t)
		defer ch.Close()
		host = relay.NewHost(ch)
		defer host.Close()
	}

	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	defer hub.StopAll()

	store := mixer.New(audioSvc.Engine(),
		mixer.WithMasterVolume(audioCfg.MasterVolume),
		mixer.WithLoadErrorHandler(func(id string, err error) {
			log.Printf("ambience: sound %s unavailable: %v", id, err)
		}),
	)

	bridge := persist.NewBridge(persist.NewFileStore(filepath.Join(*dataFlag, constant.StoreFileName)))
	if snap, ok := bridge.Load(); ok {
		store.Restore(snap)
	}
	store.Subscribe(bridge.Save)

	if host != nil && !netSvc.IsDisabled() {
		store.Subscribe(host.Broadcast)
		host.Broadcast(store.Snapshot())
		log.Printf("ambience: relay listening on %s", netSvc.Transport().Addr())
	} else {
		host = nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}

	// Terminal must be restored even if the loop panics
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mAMBIENCE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	title := "Ambience"
	if off := hub.Degraded(); len(off) > 0 {
		title += " [" + strings.Join(off, ", ") + " off]"
		log.Printf("ambience: degraded services: %v", off)
	}

	app := newApp(title, screen, store, host)
	app.run()
	screen.Fini()

	// Final state reaches disk before players are released
	bridge.Save(store.Snapshot())
	store.Destroy()
	bridge.Close()
	return nil
}
