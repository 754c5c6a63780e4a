// Package command assembles cobra command trees out of command objects.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// GroupGenerate is the help group of code generation commands.
const GroupGenerate = "generate"

// Command is implemented by every subcommand object.
type Command interface {
	Command() *cobra.Command
}

// Env is shared by the root and its subcommands. Logger is built before the
// first subcommand runs unless the caller provides one.
type Env struct {
	Logger  *zap.Logger
	Out     io.Writer
	Err     io.Writer
	Verbose bool

	owned bool
}

// Success prints a green status line to Out.
func (e *Env) Success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(e.Out, format+"\n", args...)
}

// Warn prints a yellow status line to Out.
func (e *Env) Warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(e.Out, format+"\n", args...)
}

// Fail prints a red status line to Err.
func (e *Env) Fail(format string, args ...any) {
	color.New(color.FgRed).Fprintf(e.Err, format+"\n", args...)
}

func (e *Env) logger() error {
	if e.Logger != nil {
		return nil
	}
	config := zap.NewProductionConfig()
	if e.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	e.Logger, e.owned = logger, true
	return nil
}

// Root returns a root command holding cmds.
func Root(env *Env, use, short string, cmds ...Command) *cobra.Command {
	if env.Out == nil {
		env.Out = os.Stdout
	}
	if env.Err == nil {
		env.Err = os.Stderr
	}
	root := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return env.logger()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if env.owned {
				_ = env.Logger.Sync()
			}
		},
	}
	root.SetOut(env.Out)
	root.SetErr(env.Err)
	root.PersistentFlags().BoolVarP(&env.Verbose, "verbose", "v", false, "Enable debug logging")
	root.AddGroup(&cobra.Group{ID: GroupGenerate, Title: "Code generation:"})
	for _, c := range cmds {
		root.AddCommand(c.Command())
	}
	return root
}

// Execute runs root with args and returns the process exit code.
func Execute(ctx context.Context, env *Env, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		env.Fail("Error: %v", err)
		return 1
	}
	return 0
}

// ColorFromEnv forces colored output on or off from the value of the named
// environment variable: "always" or "never". Other values keep the terminal
// detection of package color.
func ColorFromEnv(name string) {
	switch strings.ToLower(os.Getenv(name)) {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}
