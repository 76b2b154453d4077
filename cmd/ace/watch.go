package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/muesli/termenv"

	ace "github.com/grindlemire/go-ace"
	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/scene"
)

// settleDelay lets an editor finish a save before the scene is re-read.
const settleDelay = 50 * time.Millisecond

// sceneWatcher posts onChange to the logic thread whenever the scene file
// is written or replaced.
type sceneWatcher struct {
	fsw      *fsnotify.Watcher
	path     string
	onChange func()
}

var _ ace.Watcher = (*sceneWatcher)(nil)

func watchScene(path string, onChange func()) (*sceneWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Editors often save by renaming over the file, so watch its directory.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &sceneWatcher{fsw: fsw, path: abs, onChange: onChange}, nil
}

func (w *sceneWatcher) Close() error { return w.fsw.Close() }

// Start the watcher.
func (w *sceneWatcher) Start(post func(func()), stopCh <-chan struct{}) {
	go func() {
		settle := time.NewTimer(settleDelay)
		settle.Stop()
		defer settle.Stop()

		for {
			select {
			case <-stopCh:
				return
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					settle.Reset(settleDelay)
				}
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				debug.Warn("scene watcher", "err", err)
			case <-settle.C:
				post(w.onChange)
			}
		}
	}()
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	var s settings
	s.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("watch takes exactly one scene file")
	}
	path := fs.Arg(0)

	cfg, err := s.load()
	if err != nil {
		return err
	}
	if err := cfg.InitLogging(); err != nil {
		return err
	}
	defer debug.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exec := ace.NewThreadExecutor(cfg.TaskQueueSize)
	if err := exec.Start(ctx); err != nil {
		return err
	}
	defer exec.Close()

	win := ace.NewHeadlessWindow()
	p, err := newPipeline(exec, win, cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	out := termenv.NewOutput(os.Stdout)
	reload := func() {
		sc, err := scene.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		for p.PopPage() {
		}
		if _, err := p.LoadPage(sc); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		// Messages flush after the frame's layout, so the dump sees it.
		win.PostMessage(func() {
			out.ClearScreen()
			if err := layoutErrors(p); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
			if dump, ok := p.Tree().DumpTree(p.RootID()); ok {
				writeTree(out, dump, 0)
			}
		})
	}

	w, err := watchScene(path, reload)
	if err != nil {
		return err
	}
	defer w.Close()

	p.QueueUpdate(reload)
	p.AddWatcher(w)

	if err := p.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
