// Package main is the CLI entry point for the lockdown shell.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agaspari/Understandly-Lockdown/internal/app"
	"github.com/agaspari/Understandly-Lockdown/internal/config"
	"github.com/agaspari/Understandly-Lockdown/internal/deeplink"
	"github.com/agaspari/Understandly-Lockdown/internal/display"
	"github.com/agaspari/Understandly-Lockdown/internal/guard"
	"github.com/agaspari/Understandly-Lockdown/internal/host"
	"github.com/agaspari/Understandly-Lockdown/internal/lifecycle"
)

var (
	// Version info (set via ldflags)
	Version   = "1.0.0"
	Commit    = "dev"
	BuildTime = "unknown"

	// buildProfile selects the origin and escape-valve default.
	// Release builds set it to "production" via ldflags.
	buildProfile = "dev"
)

var (
	configPath string
	jsonOutput bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lockdown [deep-link-uri]",
	Short: "Kiosk-mode lockdown shell for the Understandly web app",
	Long: `lockdown hosts the Understandly web application in a kiosk-mode window
while suppressing the input and window affordances that would let a user
escape, inspect, or exfiltrate it: task switching, window close, devtools,
clipboard and screen-capture shortcuts, focus loss.

Launching with a deep-link URI navigates the window to the equivalent path
on the configured origin. If an instance is already running, the URI is
handed to it instead of opening a second window.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runLockdown,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Preflight diagnostics",
	Long: `Validates the lockdown configuration and reports what the current
platform can enforce: input interception, display count, and any
screen-capture tools currently running.`,
	RunE: runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to lockdown.config.json (default: next to the executable)")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	exe, err := os.Executable()
	if err != nil {
		return "lockdown.config.json"
	}
	return filepath.Join(filepath.Dir(exe), "lockdown.config.json")
}

func runLockdown(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}

	var initialURI string
	if len(args) == 1 {
		initialURI = args[0]
	}

	// Single window per machine: hand the deep link to the running
	// instance instead of opening a second window.
	if deeplink.InstanceRunning() {
		if initialURI != "" {
			if err := deeplink.Forward(initialURI); err != nil {
				return fmt.Errorf("forward deep link: %w", err)
			}
			fmt.Println("Deep link forwarded to running instance.")
			return nil
		}
		fmt.Println("lockdown is already running.")
		return nil
	}

	logger := createLogger()
	defer func() { _ = logger.Sync() }()

	profile := config.Profile(buildProfile)
	logger.Info("starting lockdown shell",
		zap.String("version", Version),
		zap.String("profile", string(profile)))

	var deepLinks <-chan string
	listener, err := deeplink.NewListener(logger.Named("deeplink"))
	if err != nil {
		logger.Warn("runtime deep-link delivery unavailable", zap.Error(err))
	} else {
		defer listener.Close()
		deepLinks = listener.URIs()
	}

	lifecycleGuard := lifecycle.NewGuard(logger.Named("lifecycle"))
	win, err := host.NewWebviewWindow(cfg.Window, lifecycleGuard, logger.Named("host"))
	if err != nil {
		return fmt.Errorf("construct host window: %w", err)
	}
	defer win.Destroy()

	application, err := app.New(app.Options{
		Config:    cfg,
		Profile:   profile,
		Window:    win,
		Hook:      guard.NewHook(guard.NewKeyPolicy(), logger.Named("guard")),
		Valve:     guard.NewValve(logger.Named("valve"), os.Exit),
		Census:    display.NewCensus(),
		Recorders: display.NewRecorderScan(logger.Named("display")),
		DeepLinks: deepLinks,
		Logger:    logger.Named("app"),
	})
	if err != nil {
		return err
	}

	return application.Run(initialURI)
}

func runCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("\n=== Lockdown Preflight ===")

	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		fmt.Printf("Config: INVALID (%v)\n", err)
		fmt.Println("==========================")
		return err
	}

	profile := config.Profile(buildProfile)
	fmt.Println("Config: OK")
	fmt.Printf("  Origin:        %s\n", cfg.EffectiveBaseURL(profile))
	fmt.Printf("  Window:        %q fullscreen=%v always_on_top=%v skip_taskbar=%v\n",
		cfg.Window.Title, cfg.Window.Fullscreen, cfg.Window.AlwaysOnTop, cfg.Window.SkipTaskbar)

	if cfg.EscapeValveEnabled(profile) {
		fmt.Println("  Escape valve:  armed (Ctrl+Alt+Shift+Q)")
	} else {
		fmt.Println("  Escape valve:  disabled")
	}

	if guard.Supported() {
		fmt.Println("Input guard: supported on this platform")
	} else {
		fmt.Printf("Input guard: NOT supported on %s (content-script layer only)\n", runtime.GOOS)
	}

	census := display.NewCensus()
	fmt.Printf("Displays: %d", census.Count())
	if census.Multiple() {
		fmt.Print("  (multiple displays attached)")
	}
	fmt.Println()

	recorders := display.NewRecorderScan(zap.NewNop())
	if tools := recorders.Running(); len(tools) > 0 {
		fmt.Printf("Capture tools running: %s\n", strings.Join(tools, ", "))
	} else {
		fmt.Println("Capture tools running: none detected")
	}

	fmt.Println("==========================")
	return nil
}

func createLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{filepath.Join(os.TempDir(), "lockdown.log"), "stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		// Fall back to stderr-only if file logging fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s","profile":"%s"}`+"\n",
			Version, Commit, BuildTime, buildProfile)
	} else {
		fmt.Printf("lockdown %s (commit: %s, built: %s, profile: %s)\n",
			Version, Commit, BuildTime, buildProfile)
	}
}
