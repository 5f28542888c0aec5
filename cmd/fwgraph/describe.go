package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/comalice/fwgraph/internal/production"
	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

var (
	describeFormat string
	describeOut    string
)

var describeCmd = &cobra.Command{
	Use:   "describe [model...]",
	Short: "Print model configurations as YAML or DOT",
	Long: `Describe builds the selected models (all of them by default) and prints
each instance's configuration. With --out every instance is written to its
own file in that directory instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, err := selectModels(args)
		if err != nil {
			return err
		}
		l, err := newLogger(logLevel)
		if err != nil {
			return err
		}
		built, err := buildAll(selected, l, false)
		if err != nil {
			return err
		}
		return describe(cmd.Context(), built, describeFormat, describeOut, cmd.OutOrStdout())
	},
}

func init() {
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "yaml", "Output format (yaml, dot)")
	describeCmd.Flags().StringVarP(&describeOut, "out", "o", "", "Write one file per instance into this directory")
}

// render returns the description of inst in format and the file extension
// that goes with it.
func render(inst any, format string) ([]byte, string, error) {
	switch format {
	case "yaml":
		switch v := inst.(type) {
		case *sm.Machine:
			data, err := production.MarshalMachine(v)
			return data, ".yaml", err
		case *pr.Procedure:
			data, err := production.MarshalProcedure(v)
			return data, ".yaml", err
		}
	case "dot":
		switch v := inst.(type) {
		case *sm.Machine:
			return []byte(production.ExportDOT(v)), ".dot", nil
		case *pr.Procedure:
			return []byte(production.ExportProcedureDOT(v)), ".dot", nil
		}
	default:
		return nil, "", fmt.Errorf("unknown format %q (want yaml or dot)", format)
	}
	return nil, "", fmt.Errorf("cannot describe %T", inst)
}

// describe renders every instance concurrently. Without a directory the
// results go to w in instance order.
func describe(ctx context.Context, built []instance, format, dir string, w io.Writer) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	out := make([][]byte, len(built))
	var mu sync.Mutex
	var written []string
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range built {
		i, b := i, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, ext, err := render(b.inst, format)
			if err != nil {
				return fmt.Errorf("describe %s: %w", b.name, err)
			}
			if dir == "" {
				out[i] = data
				return nil
			}
			fn := filepath.Join(dir, filepath.Base(b.name)+ext)
			if err := os.WriteFile(fn, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", fn, err)
			}
			mu.Lock()
			written = append(written, fn)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if dir != "" {
		fmt.Fprintln(w, heading(fmt.Sprintf("wrote %d files", len(written))))
		return nil
	}
	for i, data := range out {
		if format == "yaml" && i > 0 {
			fmt.Fprintln(w, "---")
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}
