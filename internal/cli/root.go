// Package cli provides the command line entry point of the taskbar launcher.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goproxy/taskbar/internal/logging"
	"github.com/goproxy/taskbar/internal/version"
)

var (
	// Global flags
	resourcesFile string
	verbose       bool

	// Global logger
	logger *logging.Logger
)

// NewRootCmd creates the root command. embedded is the resource document
// linked into the binary; --resources replaces it for testing a layout
// without rebuilding.
func NewRootCmd(embedded []byte) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskbar",
		Short: "Run a console program behind a notification area icon",
		Long: `taskbar ` + version.Version + ` - Built: ` + version.BuildTime + `
Launches the configured command line inside a hidden console and keeps an
icon in the notification area to show or hide the console, restart the
program and switch the system proxy.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultLogger()
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := loadResources(embedded, resourcesFile)
			if err != nil {
				return err
			}
			return run(res, GetLogger())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.Flags().StringVar(&resourcesFile, "resources", "", "Resource file to use instead of the embedded one")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// Execute runs the launcher until the tray exits.
func Execute(embedded []byte) error {
	return NewRootCmd(embedded).Execute()
}

// GetLogger returns the global logger.
func GetLogger() *logging.Logger {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return logger
}
