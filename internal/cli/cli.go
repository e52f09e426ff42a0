package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vk/jsonuigo/internal/app"
	"github.com/vk/jsonuigo/internal/executor"
	"github.com/vk/jsonuigo/internal/renderop"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes. Usage errors are bad flags, arguments or settings; failures
// are commands that ran and did not succeed.
const (
	CodeFailure = 1
	CodeUsage   = 2
)

// EnvPrefix prefixes the environment variables that stand in for flags,
// e.g. JSONUI_LOG_LEVEL for --log-level.
const EnvPrefix = "JSONUI"

// AppFactory builds the application for a parsed configuration. It may panic
// on startup errors the way app.NewApp does.
type AppFactory func(outW io.Writer, cfg *app.Config) *app.App

type command struct {
	outW   io.Writer
	v      *viper.Viper
	newApp AppFactory
}

// NewRootCommand returns the jsonui command tree. Every call gets its own
// flag set and viper instance.
func NewRootCommand(outW io.Writer, newApp AppFactory) *cobra.Command {
	c := &command{outW: outW, v: viper.New(), newApp: newApp}
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "jsonui",
		Short: "Translate JSON layout files into UI code or a live preview",
		Long: `jsonui reads declarative JSON layouts and either generates view code for
them or renders them live against a data fixture.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(outW)
	root.SetErr(outW)

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "Path to the project file (default: search upward for jsonui.hcl).")
	flags.String("log-format", "auto", "Log output format. Options: 'auto', 'text' or 'json'.")
	flags.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.Int("workers", 0, "Number of concurrent generation workers (default: project setting).")
	c.bind(flags.Lookup("config"), flags.Lookup("log-format"), flags.Lookup("log-level"), flags.Lookup("workers"))

	root.AddCommand(
		c.generateCommand(),
		c.previewCommand(),
		c.serveCommand(),
		c.validateCommand(),
		c.versionCommand(),
	)
	return root
}

// Execute runs the command tree with args. Every returned error is an
// *ExitError.
func Execute(ctx context.Context, outW io.Writer, args []string, newApp AppFactory) error {
	slog.Debug("CLI parser started.")
	root := NewRootCommand(outW, newApp)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: CodeUsage, Message: err.Error()}
}

func (c *command) bind(flags ...*pflag.Flag) {
	for _, f := range flags {
		_ = c.v.BindPFlag(f.Name, f)
	}
}

// config assembles the application configuration from flags and environment.
func (c *command) config() (*app.Config, error) {
	cfg, err := app.NewConfig(app.Config{
		ConfigPath:   c.v.GetString("config"),
		LogFormat:    c.v.GetString("log-format"),
		LogLevel:     c.v.GetString("log-level"),
		WorkerCount:  c.v.GetInt("workers"),
		Force:        c.v.GetBool("force"),
		NoCache:      c.v.GetBool("no-cache"),
		DataFile:     c.v.GetString("data"),
		Width:        c.v.GetInt("width"),
		Interactive:  c.v.GetBool("interactive"),
		HotReloadURL: c.v.GetString("hotreload-url"),
	})
	if err != nil {
		return nil, &ExitError{Code: CodeUsage, Message: err.Error()}
	}
	slog.Debug("CLI parameter validation complete.", "config", cfg)
	return cfg, nil
}

func (c *command) start() (*app.App, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	return c.newApp(c.outW, cfg), nil
}

func failure(err error) error {
	return &ExitError{Code: CodeFailure, Message: err.Error()}
}

func (c *command) generateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [layout...]",
		Short: "Generate view code for the named layouts, or for all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.start()
			if err != nil {
				return err
			}
			report, err := a.Generate(cmd.Context(), args...)
			fmt.Fprintf(c.outW, "generated %d, cached %d, partial %d, failed %d\n",
				report.Count(executor.Generated),
				report.Count(executor.Cached),
				report.Count(executor.Partial),
				report.Count(executor.Failed),
			)
			if err != nil {
				return failure(err)
			}
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Regenerate layouts the build cache reports as up to date.")
	cmd.Flags().Bool("no-cache", false, "Do not read or write the build cache.")
	c.bind(cmd.Flags().Lookup("force"), cmd.Flags().Lookup("no-cache"))
	return cmd
}

func (c *command) previewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <layout>",
		Short: "Render a layout against a data fixture in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.start()
			if err != nil {
				return err
			}
			if err := a.Preview(cmd.Context(), args[0]); err != nil {
				return failure(err)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.String("data", "", "Data fixture (.json, .yaml or .hcl); overrides the project setting.")
	f.Int("width", 0, "Preview width in terminal cells (default: project setting).")
	f.BoolP("interactive", "i", false, "Keep the preview open and reload it on file changes.")
	f.String("hotreload-url", "", "Also reload when this hot reload server reports a change.")
	c.bind(f.Lookup("data"), f.Lookup("width"), f.Lookup("interactive"), f.Lookup("hotreload-url"))
	return cmd
}

func (c *command) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts to clients and regenerate code when they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.start()
			if err != nil {
				return err
			}
			if err := a.Serve(cmd.Context()); err != nil {
				return failure(err)
			}
			return nil
		},
	}
}

func (c *command) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every layout without writing any code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.start()
			if err != nil {
				return err
			}
			report, err := a.Validate(cmd.Context())
			if err != nil {
				return failure(err)
			}
			for _, issue := range report.Issues {
				fmt.Fprintln(c.outW, issue.String())
			}
			errs := report.Count(renderop.Error)
			fmt.Fprintf(c.outW, "%d layouts, %d errors, %d warnings\n", report.Layouts, errs, report.Count(renderop.Warning))
			if errs > 0 {
				return &ExitError{Code: CodeFailure, Message: fmt.Sprintf("validation failed with %d errors", errs)}
			}
			return nil
		},
	}
}

func (c *command) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the generator version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.outW, "jsonui %s\n", app.Version)
		},
	}
}
