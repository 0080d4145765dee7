package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/analogclock/internal/app"
	"github.com/rook-computer/analogclock/internal/clocktime"
	"github.com/rook-computer/analogclock/internal/options"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/state"
	"github.com/rook-computer/analogclock/internal/system"
	"github.com/rook-computer/analogclock/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve static UI from this directory (optional); when empty, the embedded viewer is served")
	optionsPath := flag.String("options", os.Getenv("CLOCK_OPTIONS"), "YAML file with option overrides")
	width := flag.Int("width", render.CanvasWidth, "canvas width")
	height := flag.Int("height", render.CanvasHeight, "canvas height")
	at := flag.String("time", "", "start frozen at HH:MM:SS[.mmm] instead of the live clock")
	stopped := flag.Bool("stopped", false, "draw once and wait for POST /api/v1/start")
	verbose := flag.Bool("v", false, "log to stdout")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *verbose {
		logger = app.NewFileLogger(os.Stdout)
	}

	var startup *clocktime.Sample
	if *at != "" {
		s, err := clocktime.Parse(*at)
		if err != nil {
			fmt.Println("time error:", err)
			os.Exit(2)
		}
		startup = &s
	}

	var extra map[string]any
	if *stopped {
		extra = map[string]any{"isWork": false}
	}
	opts, ignored, err := options.Load(*optionsPath, extra)
	if err != nil {
		fmt.Println("options error:", err)
		os.Exit(2)
	}
	if len(ignored) > 0 {
		fmt.Println("ignored option keys:", ignored)
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := clocktime.NewOverrideSource(clocktime.RealSource{})
	control := NewSimControl(source, startup)
	control.Reset()

	store := state.NewStore()
	host := render.NewMemoryHost(*width, *height)

	server := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode})
	a := app.New(store, host, server, opts)
	a.Logger = logger
	a.Source = source
	a.NetInfo = system.InterfaceNetInfo{}
	a.ListenAddr = *listenAddr

	server.Deps = web.APIV1Deps{State: store, Control: a.Control(), Frames: host, Logger: logger}
	server.Handler = web.NewDefaultMux(*staticDir, web.APIV1Config{Deps: server.Deps})
	registerSimEndpoints(server.Handler, control)

	fmt.Println("Analog clock simulator listening on", *listenAddr)
	fmt.Println("Viewer: " + system.ViewerURL("", *listenAddr))
	fmt.Println("API: " + system.ViewerURL("", *listenAddr) + "api/v1/")

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}
