package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	ace "github.com/grindlemire/go-ace"
	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/scene"
)

// settings are the flags shared by layout and watch.
type settings struct {
	configPath string
	width      float64
	height     float64
}

func (s *settings) register(fs *flag.FlagSet) {
	fs.StringVar(&s.configPath, "config", "", "TOML settings file")
	fs.Float64Var(&s.width, "width", 0, "Root width, overriding the settings")
	fs.Float64Var(&s.height, "height", 0, "Root height, overriding the settings")
}

// load reads the settings file, if any, and applies the size overrides.
func (s *settings) load() (ace.Config, error) {
	cfg := ace.DefaultConfig()
	if s.configPath != "" {
		var err error
		if cfg, err = ace.LoadConfig(s.configPath); err != nil {
			return ace.Config{}, err
		}
	}
	if s.width > 0 {
		cfg.RootWidth = float32(s.width)
	}
	if s.height > 0 {
		cfg.RootHeight = float32(s.height)
	}
	return cfg, nil
}

// newPipeline creates a pipeline with its root and stage set up.
func newPipeline(exec ace.TaskExecutor, win ace.Window, cfg ace.Config) (*ace.PipelineContext, error) {
	p, err := ace.NewPipelineContext(exec, win, cfg.Options()...)
	if err != nil {
		return nil, err
	}
	exec.PostSyncTask(func() { p.SetupRootElement() }, ace.TaskJS)
	return p, nil
}

func runLayout(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	var s settings
	s.register(fs)
	format := fs.String("format", "text", "Output format: text, yaml or json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("layout takes exactly one scene file")
	}

	cfg, err := s.load()
	if err != nil {
		return err
	}
	if err := cfg.InitLogging(); err != nil {
		return err
	}
	defer debug.Close()

	sc, err := scene.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	exec := ace.NewManualExecutor()
	p, err := newPipeline(exec, nil, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if _, err := p.LoadPage(sc); err != nil {
		return err
	}
	p.RequestVsync(0)
	exec.RunPending()

	if err := layoutErrors(p); err != nil {
		return err
	}
	dump, ok := p.Tree().DumpTree(p.RootID())
	if !ok {
		return errors.New("pipeline has no root")
	}
	return writeDump(stdout, dump, *format)
}

// layoutErrors collects the failures relative containers reported in the
// last pass.
func layoutErrors(p *ace.PipelineContext) error {
	var errs []error
	p.Tree().Walk(p.RootID(), func(n ace.Node) bool {
		f, ok := n.(*ace.FrameNode)
		if !ok {
			return true
		}
		if rel, ok := f.Pattern().(*ace.RelativeContainerPattern); ok && rel.Err() != nil {
			key := f.LayoutProperty().ID
			if key == "" {
				key = fmt.Sprintf("[%d]", f.ID())
			}
			errs = append(errs, fmt.Errorf("%s %s: %w", f.Tag(), key, rel.Err()))
		}
		return true
	})
	return errors.Join(errs...)
}

func writeDump(w io.Writer, dump ace.NodeDump, format string) error {
	switch format {
	case "text":
		writeTree(termenv.NewOutput(w), dump, 0)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeTree prints the same lines as NodeDump.WriteText, colored when the
// output supports it.
func writeTree(out *termenv.Output, d ace.NodeDump, depth int) {
	indent := strings.Repeat("  ", depth)
	label := out.String(d.Tag).Foreground(out.Color("4")).Bold().String()
	if d.Key != "" {
		label += out.String("#" + d.Key).Foreground(out.Color("3")).String()
	}
	id := out.String(fmt.Sprintf("[%d]", d.ID)).Faint().String()
	if d.Custom {
		fmt.Fprintf(out, "%s%s %s\n", indent, label, id)
	} else {
		fmt.Fprintf(out, "%s%s %s (%g,%g %gx%g)\n", indent, label, id, d.X, d.Y, d.Width, d.Height)
	}
	for _, c := range d.Children {
		writeTree(out, c, depth+1)
	}
}

func runConfig(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	var s settings
	s.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := s.load()
	if err != nil {
		return err
	}
	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}
