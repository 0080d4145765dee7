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
	"github.com/rook-computer/analogclock/internal/clock"
	"github.com/rook-computer/analogclock/internal/options"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/state"
	"github.com/rook-computer/analogclock/internal/system"
	"github.com/rook-computer/analogclock/internal/web"
)

const (
	envStdioLog = "CLOCK_STDIO_LOG"
	envOptions  = "CLOCK_OPTIONS"
)

func main() {
	fmt.Println("Analog clock starting")

	serverDefaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	device := flag.String("device", "/dev/fb0", "framebuffer device")
	optionsPath := flag.String("options", os.Getenv(envOptions), "YAML file with option overrides; also configurable via "+envOptions)
	width := flag.Int("width", render.CanvasWidth, "logical canvas width, 0 follows the device")
	height := flag.Int("height", render.CanvasHeight, "logical canvas height, 0 follows the device")
	stopped := flag.Bool("stopped", false, "draw once and do not start the update loop")
	pngPath := flag.String("png", "", "render one frame to this PNG file and exit")
	debug := flag.Bool("debug", false, "enable debug logging to ./analogclock-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	listenAddr := flag.String("listen", serverDefaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	noWeb := flag.Bool("no-web", false, "do not start the web viewer")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./analogclock-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	var extra map[string]any
	if *stopped || *pngPath != "" {
		extra = map[string]any{"isWork": false}
	}
	opts, ignored, err := options.Load(*optionsPath, extra)
	if err != nil {
		fmt.Println("options error:", err)
		os.Exit(2)
	}
	if len(ignored) > 0 {
		logger.Infof("main", "ignored option keys: %v", ignored)
	}

	if *pngPath != "" {
		if err := exportPNG(*pngPath, *width, *height, opts, logger); err != nil {
			fmt.Println("png export error:", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *pngPath)
		return
	}

	// Context for lifecycle
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	host := render.NewFBHost(*device)
	host.Width, host.Height = *width, *height
	host.Logger = logger
	if err := host.Open(); err != nil {
		fmt.Println("framebuffer error:", err)
		os.Exit(1)
	}
	defer host.Close()

	// Shared state store
	store := state.NewStore()

	var server web.Server = &web.NoopServer{}
	a := app.New(store, host, server, opts)
	a.Logger = logger
	a.Console = system.Console{Logger: logger}
	if !*noWeb {
		httpServer := web.NewHTTPServer(web.ServerConfig{ListenAddr: *listenAddr, DevMode: serverDefaults.DevMode})
		httpServer.Deps = web.APIV1Deps{State: store, Control: a.Control(), Frames: a.Frames(), Logger: logger}
		a.Web = httpServer
		a.NetInfo = system.InterfaceNetInfo{}
		a.ListenAddr = *listenAddr
	}

	system.StartExitOnF4(ctx, logger, func() { a.Exit(nil) })

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
	fmt.Println("Analog clock stopped")
}

// exportPNG draws a single frame of the clock into path.
func exportPNG(path string, width, height int, opts options.Options, logger app.Logger) error {
	if width <= 0 || height <= 0 {
		width, height = render.CanvasWidth, render.CanvasHeight
	}
	host := render.NewPNGHost(path, width, height)
	opts.IsWork = false
	if _, err := clock.New(host, opts, clock.Config{Logger: logger}); err != nil {
		return err
	}
	// Present failures are only logged by the clock.
	if err := host.Err(); err != nil {
		return fmt.Errorf("no frame written: %w", err)
	}
	return nil
}
