/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/profile"

	"github.com/spaghettifunk/oxide/engine"
	"github.com/spaghettifunk/oxide/engine/assets"
	"github.com/spaghettifunk/oxide/engine/core"
	"github.com/spaghettifunk/oxide/engine/platform/headless"
	"github.com/spaghettifunk/oxide/testbed"

	_ "github.com/spaghettifunk/oxide/engine/platform/desktop"
	_ "github.com/spaghettifunk/oxide/engine/platform/sdl2"
)

// BackendEnv overrides the backend named in the config file.
const BackendEnv = "OXIDE_BACKEND"

func main() {
	var (
		configPath = flag.String("config", "oxide.toml", "Path to the TOML application config, ignored when missing")
		backend    = flag.String("backend", "", "Platform backend: glfw|sdl|headless")
		fullscreen = flag.Bool("fullscreen", false, "Start in fullscreen")
		maxFPS     = flag.Int("max-fps", -1, "Frame rate cap when vsync is off, 0 for unbounded")
		envFile    = flag.String("env", ".env", "Path to a .env file, ignored when missing")
		profMode   = flag.String("profile", "", "Profile the run: cpu|mem|trace")
		frames     = flag.Int("frames", 600, "Frames to run with the headless backend")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		core.LogFatal("load env (%s): %s", *envFile, err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		core.LogFatal("%s", err)
	}
	if b := os.Getenv(BackendEnv); b != "" {
		cfg.Backend = b
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *maxFPS >= 0 {
		cfg.MaxFPS = *maxFPS
	}
	cfg.Fullscreen = *fullscreen

	if err := core.InitLogger(core.LoggerOptions{Directory: cfg.LogDirectory, Level: cfg.LogLevel}); err != nil {
		core.LogFatal("failed to initialize the logger: %s", err)
	}
	defer core.CloseLogger()

	if p := startProfile(*profMode); p != nil {
		defer p.Stop()
	}

	if err := run(cfg, *frames); err != nil {
		core.LogError("%s", err)
		_ = core.CloseLogger()
		os.Exit(1)
	}
}

func run(cfg engine.ApplicationConfig, frames int) error {
	registry := assets.NewRegistry()
	tg := testbed.NewTestGame(registry)
	defer tg.Close()

	var opts []engine.Option
	if cfg.Backend == headless.Name {
		opts = append(opts, engine.WithBackend(headless.New(headless.WithFrameLimit(frames))))
	}

	e, err := engine.New(cfg, tg, opts...)
	if err != nil {
		return err
	}
	testbed.WithQuit(e.Stop)(tg)

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer signal.Stop(sigCh)

	// start shutdown goroutine
	go func() {
		if sig, ok := <-sigCh; ok {
			core.LogInfo("Received %s, shutting down.", sig)
			e.Stop()
		}
	}()

	return e.Run()
}

func loadConfig(path string) (engine.ApplicationConfig, error) {
	cfg, err := engine.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return engine.DefaultConfig(), nil
	}
	return cfg, err
}

func startProfile(mode string) interface{ Stop() } {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "trace":
		opt = profile.TraceProfile
	default:
		core.LogWarn("unknown profile mode %q, profiling disabled", mode)
		return nil
	}
	return profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
}
