// Package cmd implements the cfged command-line surface: non-interactive
// get/set/keys/info/validate operations over configuration documents, plus
// the launcher for the interactive editor.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/cfged/internal/backend"
	"github.com/oakwood-commons/cfged/internal/ui"
	"github.com/oakwood-commons/cfged/pkg/logger"
	"github.com/oakwood-commons/cfged/pkg/settings"
)

var (
	interactive bool
	backendName string
	format      string
	showPaths   bool
	verbose     bool
	modeFlag    string
	themeName   string
	configFile  string
	noColor     bool
	debug       bool
	termWidth   int
	termHeight  int
)

var rootCtx = context.Background()

// newBackend is swapped out in tests.
var newBackend = func() backend.Backend {
	return createBackend(backendName)
}

// createBackend maps the --backend selection to an implementation. Unknown
// names are rejected up front by validateBackend, so the default arm only
// ever sees "native".
func createBackend(name string) backend.Backend {
	switch name {
	case "rust":
		return backend.NewExternalRust()
	case "js":
		return backend.NewExternalJS()
	case "go":
		return backend.NewExternalGo()
	case "py":
		return backend.NewExternalPy()
	default:
		return backend.NewNative()
	}
}

func validateBackend(name string) error {
	switch name {
	case "native", "rust", "js", "go", "py":
		return nil
	}
	return fmt.Errorf("invalid --backend value %q (expected 'native', 'rust', 'js', 'go', or 'py')", name)
}

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [CONFIG] [KEY[=VALUE]]",
	Short: "Query, set, and interactively edit configuration files",
	Long: settings.CliBinaryName + ` works with tree-shaped configuration documents
(JSON, YAML, TOML). The CONFIG argument can be a bare name (e.g. 'myapp'),
which is resolved against the standard config search paths, or an explicit
file path.

With no KEY the whole document is printed. 'KEY' prints one value,
'KEY=VALUE' sets it. Pass -i to open the interactive editor instead.

The -b flag selects a backend for parsing: the built-in native one, or a
shell-out to another ` + settings.CliBinaryName + ` implementation, which makes the tool useful
for integration testing across implementations.`,
	Example: "\n  " + settings.CliBinaryName + " ./config.json\n" +
		"  " + settings.CliBinaryName + " myapp database.host\n" +
		"  " + settings.CliBinaryName + " myapp database.port=5433\n" +
		"  " + settings.CliBinaryName + " ./config.yaml -i\n",
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := validateBackend(backendName); err != nil {
			return err
		}
		var level int8 = 0
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(format); err != nil {
			return err
		}
		b := newBackend()
		out := cmd.OutOrStdout()

		if showPaths {
			printStringList(out, b.SearchPaths(), format)
			return nil
		}
		if len(args) == 0 {
			return errors.New("CONFIG argument required. Use --help for usage.")
		}
		locator := args[0]

		if interactive {
			return runInteractive(locator, b)
		}

		if len(args) == 2 {
			key, value, hasValue := parseKeyValue(args[1])
			if hasValue {
				if err := b.Set(locator, key, value); err != nil {
					return err
				}
				if verbose {
					fmt.Fprintf(os.Stderr, "Set %s = %s\n", key, value)
				}
				return nil
			}
			v, found, err := b.Get(locator, key)
			if err != nil {
				return err
			}
			printValue(out, v, found, format)
			return nil
		}

		doc, err := b.Load(locator)
		if err != nil {
			return err
		}
		printValue(out, doc, true, format)
		return nil
	},
}

// runInteractive resolves the input mode (flag beats settings file beats
// default), applies the theme, and hands off to the editor.
func runInteractive(locator string, b backend.Backend) error {
	lgr := logger.FromContext(rootCtx)

	cfg, err := settings.Load(settings.SettingsPath(configFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	mode := cfg.Mode
	if modeFlag != "" {
		mode = settings.ParseInputMode(modeFlag)
	}

	theme := cfg.Theme
	if themeName != "" {
		theme = themeName
	}
	if theme != "" {
		if err := ui.SetThemeByName(theme); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	lgr.V(1).Info("starting interactive editor", "locator", locator, "mode", string(mode))
	return ui.Run(locator, b, mode, termWidth, termHeight, noColor)
}

// parseKeyValue splits the positional KEY[=VALUE] shorthand at the first '='.
func parseKeyValue(arg string) (key, value string, hasValue bool) {
	if idx := strings.IndexByte(arg, '='); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func validateFormat(f string) error {
	switch f {
	case "text", "json", "raw":
		return nil
	}
	return fmt.Errorf("invalid --format value %q (expected 'text', 'json', or 'raw')", f)
}

var getCmd = &cobra.Command{
	Use:   "get CONFIG KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(format); err != nil {
			return err
		}
		b := newBackend()
		v, found, err := b.Get(args[0], args[1])
		if err != nil {
			return err
		}
		printValue(cmd.OutOrStdout(), v, found, format)
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set CONFIG KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		b := newBackend()
		if err := b.Set(args[0], args[1], args[2]); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Set %s = %s\n", args[1], args[2])
		}
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys CONFIG [PATH]",
	Short: "List keys at a given path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(format); err != nil {
			return err
		}
		prefix := ""
		if len(args) == 2 {
			prefix = args[1]
		}
		b := newBackend()
		keys, err := b.Keys(args[0], prefix)
		if err != nil {
			return err
		}
		printStringList(cmd.OutOrStdout(), keys, format)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info CONFIG",
	Short: "Show configuration file metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(format); err != nil {
			return err
		}
		b := newBackend()
		info, err := b.Info(args[0])
		if err != nil {
			return err
		}
		printInfo(cmd.OutOrStdout(), info, format)
		return nil
	},
}

// errInvalid distinguishes a well-formed run that found problems from an
// operational failure, so main can exit 1 without printing a second error.
var errInvalid = errors.New("configuration is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate CONFIG",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(format); err != nil {
			return err
		}
		b := newBackend()
		problems, err := b.Validate(args[0])
		if err != nil {
			return err
		}
		printValidation(cmd.OutOrStdout(), problems, format)
		if len(problems) > 0 {
			return errInvalid
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		v := settings.VersionInformation
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n",
			settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "launch the interactive editor")
	rootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "native", "backend for parsing: native|rust|js|go|py")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "output format: text|json|raw")
	rootCmd.Flags().BoolVar(&showPaths, "show-paths", false, "list the config search paths and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "keybinding mode for -i: vim (default) or basic")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "theme name for -i (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to the cfged settings file")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().IntVar(&termWidth, "width", 0, "editor width in columns (0 = auto-detect)")
	rootCmd.Flags().IntVar(&termHeight, "height", 0, "editor height in rows (0 = auto-detect)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// IsInvalid reports whether err is the validate command's problems-found
// result, which should exit nonzero without an extra error line.
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalid)
}
