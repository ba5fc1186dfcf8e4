package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/delaneyj/bindparty/binding"
	"github.com/delaneyj/bindparty/cmd/inspect/templates"
	"github.com/delaneyj/bindparty/internal/demo"
	"github.com/delaneyj/bindparty/internal/logging"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	verboseKey = "verbose"
	typeKey    = "type"
	outKey     = "out"
	setKey     = "set"
)

func newApp(w io.Writer) *cli.Command {
	typeFlag := &cli.StringFlag{
		Name:  typeKey,
		Usage: "Model type to inspect, empty for all",
	}
	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect the dependency graphs of the demo view models",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log registrations and cascade steps",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "graph",
				Usage: "Print properties, commands and the edges between them",
				Flags: []cli.Flag{typeFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return graphTable(ctx, cmd, w)
				},
			},
			{
				Name:  "dot",
				Usage: "Render a type's dependency graph as graphviz",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     typeKey,
						Usage:    "Model type to render",
						Required: true,
					},
					&cli.StringFlag{
						Name:  outKey,
						Usage: "Output file, stdout when empty",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return dot(ctx, cmd, w)
				},
			},
			{
				Name:  "trace",
				Usage: "Write properties on a demo instance and print every notification",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     typeKey,
						Usage:    "Model type to instantiate",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  setKey,
						Usage: "name=value assignment, repeatable",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return trace(ctx, cmd, w)
				},
			},
		},
	}
}

func setup(cmd *cli.Command) (*binding.Registry, *slog.Logger, error) {
	logger := logging.New(logging.Level(cmd.Bool(verboseKey)))
	r := binding.NewRegistry(binding.WithLogger(logger))
	if err := demo.Register(r); err != nil {
		return nil, nil, err
	}
	return r, logger, nil
}

func selectTypes(r *binding.Registry, name string) ([]*binding.Type, error) {
	if name == "" {
		var types []*binding.Type
		for _, n := range r.Types() {
			t, _ := r.Lookup(n)
			types = append(types, t)
		}
		return types, nil
	}
	t, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown type %q, have %s", name, strings.Join(r.Types(), ", "))
	}
	return []*binding.Type{t}, nil
}

func graphTable(_ context.Context, cmd *cli.Command, w io.Writer) error {
	r, _, err := setup(cmd)
	if err != nil {
		return err
	}
	types, err := selectTypes(r, cmd.String(typeKey))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"type", "name", "kind", "value", "depends on", "notifies", "rechecks"})
	table.SetAutoWrapText(false)
	for _, t := range types {
		g := t.Graph()
		for _, n := range g.Nodes() {
			kind := n.Kind.String()
			switch {
			case n.Kind == binding.CommandNode && n.TakesArgument:
				kind += " (arg)"
			case n.ReadOnly:
				kind += " (ro)"
			}
			props, cmds := g.Cascade(n.Name)
			if n.Kind == binding.CommandNode {
				props, cmds = nil, nil
			}
			table.Append([]string{
				t.Name(),
				n.Name,
				kind,
				n.ValueType,
				strings.Join(n.DependsOn, ", "),
				strings.Join(props, ", "),
				strings.Join(cmds, ", "),
			})
		}
	}
	table.Render()
	return nil
}

func dot(_ context.Context, cmd *cli.Command, w io.Writer) error {
	r, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	types, err := selectTypes(r, cmd.String(typeKey))
	if err != nil {
		return err
	}
	t := types[0]
	dg := templates.NewDotGraph(t.Name(), t.Graph())

	out := cmd.String(outKey)
	if out == "" {
		templates.WriteDot(w, dg)
		return nil
	}
	if err := os.WriteFile(out, []byte(templates.Dot(dg)), 0644); err != nil {
		return err
	}
	logger.Info("graph written", "type", t.Name(), "file", out, "edges", len(dg.Edges))
	return nil
}

func trace(_ context.Context, cmd *cli.Command, w io.Writer) error {
	r, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	m, err := newInstance(r, cmd.String(typeKey))
	if err != nil {
		return err
	}

	step := 0
	printf := func(format string, args ...any) {
		step++
		fmt.Fprintf(w, "%3d  "+format+"\n", append([]any{step}, args...)...)
	}
	if _, err := m.PropertyChanged().SubscribeFunc(func(pc binding.PropertyChange) {
		v, _ := pc.Model.Get(pc.Name)
		printf("property %-16s = %v", pc.Name, v)
	}); err != nil {
		return err
	}
	for _, name := range m.Type().Graph().Commands() {
		c, err := m.Command(name)
		if err != nil {
			return err
		}
		if _, err := c.CanExecuteChanged().SubscribeFunc(func(struct{}) {
			printf("command  %-16s can execute: %t", c.Name(), c.CanExecute(nil))
		}); err != nil {
			return err
		}
	}

	for _, assignment := range cmd.StringSlice(setKey) {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return fmt.Errorf("assignment %q: want name=value", assignment)
		}
		logger.Debug("write", "type", m.Type().Name(), "property", name, "value", value)
		fmt.Fprintf(w, "set %s = %q\n", name, value)
		if err := m.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

func newInstance(r *binding.Registry, typ string) (*binding.Model, error) {
	switch typ {
	case "Person":
		return demo.NewPerson(r, "John", "Doe")
	case "Window":
		w, err := demo.NewWindow(r, "A", "B", "C")
		if err != nil {
			return nil, err
		}
		return w.Model, nil
	case "Item":
		it, err := demo.NewItem(r, "item")
		if err != nil {
			return nil, err
		}
		return it.Model, nil
	default:
		return nil, fmt.Errorf("no demo instance for type %q", typ)
	}
}
