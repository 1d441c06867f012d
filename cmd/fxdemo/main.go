package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"quickfx/internal/logger"
	"quickfx/internal/util"
	"quickfx/pkg/config"
	"quickfx/pkg/effects"
	"quickfx/pkg/engine"
)

func init() {
	// GLFW requires the program to be running on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	headless := flag.Bool("headless", false, "Run without a window")
	frames := flag.Int("frames", 0, "Stop after this many frames (0 runs until closed)")
	watch := flag.Bool("watch", true, "Reload the configuration file when it changes")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		// defaults are usable, a broken file is not
		if util.FileExists(*configPath) {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		log.Printf("%v", err)
		*watch = false
	}
	if *headless {
		cfg.Graphics.Headless = true
	}

	appLog := logger.NewLogger(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		appLog, err = logger.NewMultiLogger(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
	}
	defer appLog.Close()
	appLog.Info("Starting quickfx demo...")

	lib := effects.NewTemplateLibrary()
	if cfg.Materials.Path != "" {
		if err := lib.LoadInto(cfg.Materials.Path); err != nil {
			appLog.Fatalf("Failed to load material library: %v", err)
		}
		appLog.Infof("Loaded material library %s", cfg.Materials.Path)
	}

	root, err := engine.BuildDemoScene(lib)
	if err != nil {
		appLog.Fatalf("%v", err)
	}

	var fx *engine.Engine
	if cfg.Graphics.Headless {
		fx, err = engine.NewHeadlessEngine(cfg, appLog, root, lib)
	} else {
		fx, err = engine.NewEngine(cfg, appLog, root, lib)
	}
	if err != nil {
		appLog.Fatalf("Failed to initialize engine: %v", err)
	}
	defer fx.Shutdown()

	if *watch {
		if err := fx.WatchConfig(*configPath); err != nil {
			appLog.Warnf("Hot reload disabled: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		fx.Stop()
	}()

	appLog.Info("Engine initialized, starting frame loop...")
	if *frames > 0 {
		fx.RunFrames(*frames)
	} else {
		fx.Run()
	}
	appLog.Infof("Rendered %d frames", fx.Frames())
}
