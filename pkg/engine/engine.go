package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"quickfx/internal/logger"
	"quickfx/pkg/config"
	"quickfx/pkg/effects"
	"quickfx/pkg/scene"
)

// Keys handled by the engine
var engineKeys = []glfw.Key{
	glfw.KeyO,
	glfw.KeyB,
	glfw.KeyM,
	glfw.KeyR,
	glfw.KeyEscape,
}

// Engine drives the frame loop: it applies reloaded configuration, handles
// input, runs the effects' frame updates and renders the scene. Everything
// except Stop runs on the thread that owns the window.
type Engine struct {
	window   *glfw.Window
	config   *config.Config
	logger   *logger.Logger
	root     *scene.Node
	lib      *scene.Library
	renderer Renderer
	input    *InputHandler

	watcher     *config.Watcher
	stopWatcher context.CancelFunc

	outline *effects.Outline
	blinker *effects.Blinker
	effects []effects.Effect

	isRunning  atomic.Bool
	lastUpdate time.Time
	frameRate  int
	elapsed    float64
	frames     int
}

// NewEngine creates a windowed engine rendering root with OpenGL. It must
// be called from the main thread.
func NewEngine(cfg *config.Config, log *logger.Logger, root *scene.Node, lib *scene.Library) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// Set window hints
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.StencilBits, 8)
	glfw.WindowHint(glfw.DepthBits, 24)

	window, err := glfw.CreateWindow(cfg.Graphics.Width, cfg.Graphics.Height, cfg.Graphics.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	fbWidth, fbHeight := window.GetFramebufferSize()
	renderer, err := NewOpenGLRenderer(fbWidth, fbHeight, log.Named("gl"))
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL renderer: %w", err)
	}

	e := newEngine(cfg, log, root, lib, renderer)
	e.window = window
	e.input = NewInputHandler(window, engineKeys...)
	window.SetFramebufferSizeCallback(e.resizeCallback)

	if err := e.setupEffects(); err != nil {
		e.Shutdown()
		return nil, err
	}
	return e, nil
}

// NewHeadlessEngine creates an engine without a window. Frames are still
// updated and pass through a HeadlessRenderer.
func NewHeadlessEngine(cfg *config.Config, log *logger.Logger, root *scene.Node, lib *scene.Library) (*Engine, error) {
	e := newEngine(cfg, log, root, lib, NewHeadlessRenderer(cfg.Graphics.Width, cfg.Graphics.Height))
	if err := e.setupEffects(); err != nil {
		e.Shutdown()
		return nil, err
	}
	return e, nil
}

func newEngine(cfg *config.Config, log *logger.Logger, root *scene.Node, lib *scene.Library, r Renderer) *Engine {
	return &Engine{
		config:    cfg,
		logger:    log,
		root:      root,
		lib:       lib,
		renderer:  r,
		frameRate: cfg.Graphics.FrameRate,
	}
}

// setupEffects creates the outline and blinker described by the config
// and activates the enabled ones.
func (e *Engine) setupEffects() error {
	target, err := e.resolveTarget(e.config.Outline.Target)
	if err != nil {
		return err
	}
	e.outline, err = effects.NewOutline(target, e.lib, e.config.Outline, e.logger)
	if err != nil {
		return fmt.Errorf("failed to create outline: %w", err)
	}
	if err := e.AddEffect(e.outline, e.config.Outline.Enabled); err != nil {
		return err
	}

	target, err = e.resolveTarget(e.config.Blinker.Target)
	if err != nil {
		return err
	}
	e.blinker, err = effects.NewBlinker(target, e.lib, e.config.Blinker, e.logger)
	if err != nil {
		return fmt.Errorf("failed to create blinker: %w", err)
	}
	return e.AddEffect(e.blinker, e.config.Blinker.Enabled)
}

func (e *Engine) resolveTarget(path string) (*scene.Node, error) {
	n := e.root.FindPath(path)
	if n == nil {
		return nil, fmt.Errorf("effect target %q not found below %s", path, e.root.Name)
	}
	return n, nil
}

// AddEffect registers an effect with the frame loop, activating it when
// active is set.
func (e *Engine) AddEffect(fx effects.Effect, active bool) error {
	e.effects = append(e.effects, fx)
	if !active {
		return nil
	}
	if err := fx.Activate(); err != nil {
		return err
	}
	e.logger.Infof("%s activated", fx.Kind())
	return nil
}

// Outline returns the engine's outline effect.
func (e *Engine) Outline() *effects.Outline {
	return e.outline
}

// Blinker returns the engine's blinker effect.
func (e *Engine) Blinker() *effects.Blinker {
	return e.blinker
}

// Renderer returns the active renderer.
func (e *Engine) Renderer() Renderer {
	return e.renderer
}

// Frames returns the number of frames stepped so far.
func (e *Engine) Frames() int {
	return e.frames
}

// WatchConfig reloads the config file at path whenever it changes. The
// new values are applied at the start of the next frame.
func (e *Engine) WatchConfig(path string) error {
	w, err := config.NewWatcher(path, e.logger.Named("config"))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	e.watcher = w
	e.stopWatcher = cancel
	e.logger.Infof("watching %s for changes", path)
	return nil
}

// Step advances the engine by one frame of dt seconds.
func (e *Engine) Step(dt float64) {
	e.drainConfigUpdates()

	if e.input != nil {
		e.input.Update()
		e.processInput()
	}

	for _, fx := range e.effects {
		fx.FrameUpdate(dt)
	}

	e.elapsed += dt
	e.frames++
	if e.renderer != nil {
		e.renderer.Render(e.root, e.elapsed)
	}
}

// Run starts the main loop. It returns when the window is closed, Escape
// is pressed or Stop is called.
func (e *Engine) Run() {
	e.isRunning.Store(true)
	e.lastUpdate = time.Now()

	for e.isRunning.Load() && (e.window == nil || !e.window.ShouldClose()) {
		currentTime := time.Now()
		deltaTime := currentTime.Sub(e.lastUpdate).Seconds()
		e.lastUpdate = currentTime

		e.Step(deltaTime)

		if e.window != nil {
			e.window.SwapBuffers()
			glfw.PollEvents()
		}

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}
}

// RunFrames steps n frames at the configured frame rate without sleeping.
func (e *Engine) RunFrames(n int) {
	dt := 1.0 / 60
	if e.frameRate > 0 {
		dt = 1 / float64(e.frameRate)
	}
	e.isRunning.Store(true)
	for i := 0; i < n && e.isRunning.Load(); i++ {
		e.Step(dt)
		if e.window != nil {
			e.window.SwapBuffers()
			glfw.PollEvents()
		}
	}
}

// Stop makes Run return after the current frame. Safe to call from any
// goroutine.
func (e *Engine) Stop() {
	e.isRunning.Store(false)
}

// drainConfigUpdates applies the most recent reloaded config, if any.
func (e *Engine) drainConfigUpdates() {
	if e.watcher == nil {
		return
	}
	select {
	case cfg := <-e.watcher.Updates():
		e.applyConfig(cfg)
	default:
	}
}

// applyConfig pushes reloaded values into the running effects. Targets and
// graphics settings only take effect on restart.
func (e *Engine) applyConfig(cfg *config.Config) {
	if cfg.Logging.Level != e.config.Logging.Level {
		e.logger.SetLevel(cfg.Logging.Level)
	}
	if cfg.Outline.Target != e.config.Outline.Target || cfg.Blinker.Target != e.config.Blinker.Target {
		e.logger.Warn("effect target changes need a restart")
	}

	if err := e.outline.ApplyConfig(cfg.Outline); err != nil {
		e.logger.Errorf("outline config rejected: %v", err)
	} else {
		e.setActive(e.outline, cfg.Outline.Enabled)
		e.config.Outline = cfg.Outline
	}

	if err := e.blinker.ApplyConfig(cfg.Blinker); err != nil {
		e.logger.Errorf("blinker config rejected: %v", err)
	} else {
		e.setActive(e.blinker, cfg.Blinker.Enabled)
		e.config.Blinker = cfg.Blinker
	}

	e.config.Logging = cfg.Logging
	e.logger.Info("configuration reloaded")
}

// setActive activates or deactivates fx to match active.
func (e *Engine) setActive(fx effects.Effect, active bool) {
	isActive := fx.State() != effects.Inactive
	switch {
	case active && !isActive:
		if err := fx.Activate(); err != nil {
			e.logger.Errorf("failed to activate %s: %v", fx.Kind(), err)
			return
		}
		e.logger.Infof("%s activated", fx.Kind())
	case !active && isActive:
		fx.Deactivate()
		e.logger.Infof("%s deactivated", fx.Kind())
	}
}

func (e *Engine) toggle(fx effects.Effect) {
	e.setActive(fx, fx.State() == effects.Inactive)
}

// processInput handles user input
func (e *Engine) processInput() {
	if e.input.IsKeyPressed(glfw.KeyEscape) {
		e.Stop()
	}
	if e.input.IsKeyPressed(glfw.KeyO) {
		e.toggle(e.outline)
	}
	if e.input.IsKeyPressed(glfw.KeyB) {
		e.toggle(e.blinker)
	}
	if e.input.IsKeyPressed(glfw.KeyM) {
		e.outline.SetMode(e.outline.Mode().Next())
		e.logger.Infof("outline mode: %s", e.outline.Mode())
	}
	if e.input.IsKeyPressed(glfw.KeyR) {
		for _, fx := range e.effects {
			fx.Refresh()
		}
		e.logger.Info("effects refreshed")
	}
}

func (e *Engine) resizeCallback(_ *glfw.Window, width int, height int) {
	e.logger.Debugf("Window resized to %dx%d", width, height)
	e.renderer.UpdateResolution(width, height)
}

// Shutdown destroys every effect and releases the renderer, the watcher
// and the window.
func (e *Engine) Shutdown() {
	e.logger.Info("Shutting down engine...")
	for _, fx := range e.effects {
		fx.Destroy()
	}
	e.effects = nil

	if e.watcher != nil {
		e.stopWatcher()
		if err := e.watcher.Close(); err != nil {
			e.logger.Warnf("failed to close config watcher: %v", err)
		}
		e.watcher = nil
	}

	if e.renderer != nil {
		e.renderer.Close()
		e.renderer = nil
	}

	if e.window != nil {
		e.window.Destroy()
		e.window = nil
		glfw.Terminate()
	}
}
