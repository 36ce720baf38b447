package startup

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"mime-registry/internal/logging"
)

const rule = "------------------------------------------------------------"

// section logs a blank line followed by a ruled heading.
func section(title string) {
	logging.Info("")
	logging.Info(rule)
	logging.Info("%s", title)
	logging.Info(rule)
}

func onOff(enabled bool) string {
	if enabled {
		return "ENABLED"
	}
	return "DISABLED"
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	section("SERVER STARTED")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    API:           http://0.0.0.0:%s/api/types", config.Port)
	logging.Info("    Health:        http://0.0.0.0:%s/health", config.Port)

	metricsURL := onOff(false)
	if config.MetricsEnabled {
		metricsURL = fmt.Sprintf("http://0.0.0.0:%s/metrics", config.MetricsPort)
	}
	logging.Info("    Metrics:       %s", metricsURL)
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info(rule)
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	section(fmt.Sprintf("SHUTDOWN INITIATED (received %s)", signal))
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	LogShutdownStepComplete("Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	fmt.Println(`
` + rule + `
           _                                _      __
   __ _   (_)__ _  ___   ____ ___ ___ _   (_)__ / /_______ __
  /  ' \ / /  ' \/ -_) / __// -_) _ '/  / /(_-</ __/ __/ // /
 /_/_/_//_/_/_/_/\__/ /_/   \__/\_, /  /_//___/\__/_/  \_, /
                               /___/                  /___/
` + rule)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
}

func logSystemInfo() {
	section("SYSTEM INFORMATION")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if !logging.IsDebugEnabled() {
		return
	}
	if wd, err := os.Getwd(); err == nil {
		logging.Debug("  Working dir:     %s", wd)
	}
	if exe, err := os.Executable(); err == nil {
		logging.Debug("  Executable:      %s", exe)
	}
}
