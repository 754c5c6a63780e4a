// Command xrowgen writes Columns and ExtractWith methods for structs read by
// package xrow.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-mizu/xrow/internal/command"
)

func newRoot(env *command.Env) *cobra.Command {
	return command.Root(env, "xrowgen", "Generate row mapping code for xrow",
		&generate{env: env},
		&plan{env: env},
	)
}

func main() {
	command.ColorFromEnv("XROWGEN_COLOR")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	env := &command.Env{Out: os.Stdout, Err: os.Stderr}
	code := command.Execute(ctx, env, newRoot(env), os.Args[1:])
	stop()
	os.Exit(code)
}
