package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-mizu/xrow/internal/command"
	"github.com/go-mizu/xrow/internal/gen"
)

// defaultConfig is read when generate runs without arguments or --config.
const defaultConfig = "xrowgen.yaml"

type generate struct {
	env *command.Env
}

func (g *generate) Command() *cobra.Command {
	c := &cobra.Command{
		Use:     "generate [dir...]",
		GroupID: command.GroupGenerate,
		Short:   "Write xrow_gen.go for each package directory",
		Long: `Generate parses the Go files of each directory and writes Columns and
ExtractWith methods for every struct marked with //xrow:generate or named
with --types.

Without arguments the packages listed in xrowgen.yaml are processed when that
file exists, otherwise the current directory.`,
		Example: `  xrowgen generate .
  xrowgen generate --types User,Order ./model
  xrowgen generate --config xrowgen.yaml --check`,
		RunE: g.run,
	}
	g.flags(c)
	return c
}

func (g *generate) flags(c *cobra.Command) {
	c.Flags().StringP("config", "c", "", "YAML file listing packages (default xrowgen.yaml when present)")
	c.Flags().StringP("output", "o", "", "Name of the generated file (default "+gen.DefaultOutput+")")
	c.Flags().StringSliceP("types", "t", nil, "Struct types to generate in addition to marked ones")
	c.Flags().Bool("check", false, "Fail when the generated file is out of date instead of writing it")
}

func (g *generate) run(cmd *cobra.Command, args []string) error {
	configs, err := g.configs(cmd.Flags(), args)
	if err != nil {
		return err
	}
	results, err := gen.Run(cmd.Context(), g.env.Logger, configs...)
	if err != nil && !errors.Is(err, gen.ErrStale) {
		return err
	}
	for i, res := range results {
		g.report(res, configs[i].Check, err == nil)
	}
	if err != nil {
		return fmt.Errorf("%w; run xrowgen generate", err)
	}
	return nil
}

// report prints one line per package. Unchanged packages are only reported
// when every package completed.
func (g *generate) report(res gen.Result, check, complete bool) {
	switch {
	case res.Changed && check:
		g.env.Fail("%s: out of date", res.Output)
	case res.Changed:
		g.env.Success("%s: wrote %d types", res.Output, len(res.Types))
	case !complete:
	case len(res.Types) == 0:
		g.env.Warn("%s: no types selected", res.Dir)
	default:
		g.env.Success("%s: up to date (%d types)", res.Output, len(res.Types))
	}
}

func (g *generate) configs(flags *pflag.FlagSet, args []string) ([]gen.Config, error) {
	path, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	check, err := flags.GetBool("check")
	if err != nil {
		return nil, err
	}
	if path == "" && len(args) == 0 {
		if _, err := os.Stat(defaultConfig); err == nil {
			path = defaultConfig
		}
	}

	if path != "" {
		if len(args) > 0 {
			return nil, errors.New("directories cannot be combined with --config")
		}
		configs, err := gen.LoadFile(path)
		if err != nil {
			return nil, err
		}
		for i := range configs {
			configs[i].Check = check
		}
		return configs, nil
	}

	output, err := flags.GetString("output")
	if err != nil {
		return nil, err
	}
	types, err := flags.GetStringSlice("types")
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		args = []string{"."}
	}
	configs := make([]gen.Config, len(args))
	for i, dir := range args {
		configs[i] = gen.Config{Dir: dir, Output: output, Types: types, Check: check}
	}
	return configs, nil
}
