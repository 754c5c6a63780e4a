package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-mizu/xrow/internal/command"
	"github.com/go-mizu/xrow/internal/gen"
)

type plan struct {
	env *command.Env
}

func (p *plan) Command() *cobra.Command {
	c := &cobra.Command{
		Use:     "plan [dir]",
		GroupID: command.GroupGenerate,
		Short:   "Print the column lookup plan of each selected type",
		Example: `  xrowgen plan ./model
  xrowgen plan --types User .`,
		Args: cobra.MaximumNArgs(1),
		RunE: p.run,
	}
	c.Flags().StringSliceP("types", "t", nil, "Struct types to show in addition to marked ones")
	return c
}

func (p *plan) run(cmd *cobra.Command, args []string) error {
	types, err := cmd.Flags().GetStringSlice("types")
	if err != nil {
		return err
	}
	cfg := gen.Config{Types: types}
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	pkg, err := gen.Load(cfg)
	if err != nil {
		return err
	}
	if len(pkg.Types) == 0 {
		p.env.Warn("%s: no types selected", pkg.Dir)
		return nil
	}
	for i, t := range pkg.Types {
		if i > 0 {
			fmt.Fprintln(p.env.Out)
		}
		writePlan(p.env.Out, t)
	}
	return nil
}

func writePlan(w io.Writer, t *gen.Type) {
	fmt.Fprintf(w, "%s (%d fields)\n", t.Receiver(), len(t.Fields))
	for i, f := range t.Fields {
		if f.Column.Index >= 0 {
			fmt.Fprintf(w, "  %2d %-24s idx=%d\n", i, f.Path, f.Column.Index)
			continue
		}
		fmt.Fprintf(w, "  %2d %-24s %s\n", i, f.Path, f.Column.Name)
	}

	switch {
	case t.Plan.Unique() == 0:
		return
	case t.Plan.Single() != "":
		fmt.Fprintf(w, "  lookup: single name %q\n", t.Plan.Single())
	default:
		for _, g := range t.Plan.Groups() {
			if g.Width == 0 {
				fmt.Fprintf(w, "  len %d: full compare\n", g.Len)
			} else {
				fmt.Fprintf(w, "  len %d: %d byte key at offset %d\n", g.Len, g.Width, g.Offset)
			}
			for _, e := range g.Entries {
				if g.Width == 0 {
					fmt.Fprintf(w, "    %-24s field %d\n", e.Name, e.Field)
				} else {
					fmt.Fprintf(w, "    %-24s field %d key %#x\n", e.Name, e.Field, e.Key)
				}
			}
		}
	}
	for _, r := range t.Plan.Repeats() {
		fmt.Fprintf(w, "  field %d copies field %d\n", r.Field, r.Of)
	}
}
