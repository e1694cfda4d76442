// Package app wires the lockdown guards onto the host window and runs the
// session. Guard failures are contained here: none of them unwinds into
// the UI loop.
package app

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/agaspari/Understandly-Lockdown/internal/config"
	"github.com/agaspari/Understandly-Lockdown/internal/content"
	"github.com/agaspari/Understandly-Lockdown/internal/deeplink"
	"github.com/agaspari/Understandly-Lockdown/internal/display"
	"github.com/agaspari/Understandly-Lockdown/internal/guard"
	"github.com/agaspari/Understandly-Lockdown/internal/host"
)

// Options carries the collaborators an App is assembled from.
type Options struct {
	Config    *config.Config
	Profile   config.Profile
	Window    host.Window
	Hook      guard.Hook
	Valve     guard.Valve
	Census    display.Census
	Recorders *display.RecorderScan
	DeepLinks <-chan string // runtime deep-link deliveries; may be nil
	Logger    *zap.Logger

	// Exit performs an immediate hard process exit. Defaults to os.Exit;
	// injectable for tests.
	Exit func(int)
}

// App is the assembled lockdown session.
type App struct {
	cfg       *config.Config
	profile   config.Profile
	baseURL   string
	window    host.Window
	hook      guard.Hook
	valve     guard.Valve
	census    display.Census
	recorders *display.RecorderScan
	deepLinks <-chan string
	logger    *zap.Logger
	exit      func(int)
}

// New validates the options and assembles the session.
func New(opts Options) (*App, error) {
	switch {
	case opts.Config == nil:
		return nil, errors.New("app: config is required")
	case opts.Window == nil:
		return nil, errors.New("app: host window is required")
	case opts.Hook == nil:
		return nil, errors.New("app: input hook is required")
	case opts.Valve == nil:
		return nil, errors.New("app: escape valve is required")
	case opts.Census == nil:
		return nil, errors.New("app: display census is required")
	case opts.Logger == nil:
		return nil, errors.New("app: logger is required")
	}

	exit := opts.Exit
	if exit == nil {
		exit = os.Exit
	}

	return &App{
		cfg:       opts.Config,
		profile:   opts.Profile,
		baseURL:   opts.Config.EffectiveBaseURL(opts.Profile),
		window:    opts.Window,
		hook:      opts.Hook,
		valve:     opts.Valve,
		census:    opts.Census,
		recorders: opts.Recorders,
		deepLinks: opts.DeepLinks,
		logger:    opts.Logger,
		exit:      exit,
	}, nil
}

// Run applies the lockdown surface and blocks in the UI loop until the
// window terminates. initialURI is the cold-start deep link, if any.
func (a *App) Run(initialURI string) error {
	target := a.baseURL
	if initialURI != "" {
		localized, err := deeplink.LocalizeRaw(initialURI, a.baseURL)
		if err != nil {
			a.logger.Warn("ignoring malformed cold-start deep link",
				zap.String("uri", initialURI), zap.Error(err))
		} else {
			target = localized
		}
	}

	// The content policy must be in place before the first navigation.
	a.window.InitScript(content.Script())

	if err := a.bindCommands(); err != nil {
		return fmt.Errorf("bind content commands: %w", err)
	}

	// Best-effort hardening layer: a failed install degrades to the
	// content-script policy alone and is permanent for this process.
	if err := a.hook.Install(); err != nil {
		if errors.Is(err, guard.ErrNotSupported) {
			a.logger.Warn("global input guard unavailable on this platform")
		} else {
			a.logger.Warn("global input guard install failed", zap.Error(err))
		}
	}

	if a.cfg.EscapeValveEnabled(a.profile) {
		a.logger.Info("escape valve armed", zap.String("chord", "ctrl+alt+shift+q"))
		if err := a.valve.Register(); err != nil && !errors.Is(err, guard.ErrNotSupported) {
			a.logger.Warn("escape valve registration failed", zap.Error(err))
		}
	}

	if a.deepLinks != nil {
		go a.routeDeepLinks()
	}

	a.logger.Info("lockdown window starting",
		zap.String("url", target),
		zap.Bool("input_guard", a.hook.Active()),
		zap.Int("displays", a.census.Count()))

	a.window.Navigate(target)
	a.window.Run()
	return nil
}

// bindCommands exposes the content-layer command surface.
func (a *App) bindCommands() error {
	bindings := map[string]interface{}{
		// Graceful exit: leave the UI loop from the UI thread.
		"closeApp": func() {
			a.logger.Info("graceful exit requested by content layer")
			a.window.Dispatch(a.window.Terminate)
		},
		// Hard exit, no unwinding.
		"closeLockdown": func() {
			a.logger.Info("hard exit requested by content layer")
			a.exit(0)
		},
		"displayCount": func() int {
			return a.census.Count()
		},
		"hasMultipleDisplays": func() bool {
			return a.census.Multiple()
		},
		"captureTools": func() []string {
			if a.recorders == nil {
				return nil
			}
			return a.recorders.Running()
		},
	}

	for name, fn := range bindings {
		if err := a.window.Bind(name, fn); err != nil {
			return fmt.Errorf("bind %q: %w", name, err)
		}
	}
	return nil
}

// routeDeepLinks turns runtime deliveries into in-place navigations of the
// existing window.
func (a *App) routeDeepLinks() {
	for uri := range a.deepLinks {
		localized, err := deeplink.LocalizeRaw(uri, a.baseURL)
		if err != nil {
			a.logger.Warn("ignoring malformed deep link",
				zap.String("uri", uri), zap.Error(err))
			continue
		}
		a.logger.Info("deep link navigation", zap.String("target", localized))

		js := fmt.Sprintf("window.location.replace(%q)", localized)
		a.window.Dispatch(func() { a.window.Eval(js) })
	}
}
