package production

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/comalice/fwgraph/pr"
	"github.com/comalice/fwgraph/sm"
)

// ReportWriter writes YAML reports into a directory, one file per instance.
// Files are named after the instance, or after its topology id when the
// instance has no name.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a ReportWriter, ensuring the directory exists.
func NewReportWriter(dir string) (*ReportWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &ReportWriter{dir: dir}, nil
}

// WriteMachine writes the report of m and returns the file path.
func (w *ReportWriter) WriteMachine(ctx context.Context, m *sm.Machine) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := MarshalMachine(m)
	if err != nil {
		return "", err
	}
	return w.write(fileName(m.Name(), m.Topology().ID().String()), data)
}

// WriteProcedure writes the report of p and returns the file path.
func (w *ReportWriter) WriteProcedure(ctx context.Context, p *pr.Procedure) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := MarshalProcedure(p)
	if err != nil {
		return "", err
	}
	return w.write(fileName(p.Name(), p.Topology().ID().String()), data)
}

func (w *ReportWriter) write(name string, data []byte) (string, error) {
	fn := filepath.Join(w.dir, name+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", fn, err)
	}
	return fn, nil
}

func fileName(name, id string) string {
	if name == "" {
		return id
	}
	return filepath.Base(name)
}
