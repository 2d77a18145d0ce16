// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"cogentcore.org/bridge/assets"
	"cogentcore.org/bridge/base/errors"
	"cogentcore.org/bridge/base/iox/imagex"
	"cogentcore.org/bridge/base/logx"
	"cogentcore.org/bridge/config"
	"cogentcore.org/bridge/host"
	"cogentcore.org/bridge/native"
	"cogentcore.org/bridge/native/software"
	"cogentcore.org/bridge/script"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// options are the settings shared by all commands.
type options struct {
	configFile string
	backend    string
	assets     string
	logLevel   string

	// snapshot is the image file that run saves the last frame to
	snapshot string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "bridge",
		Short:         "Replay host lifecycle scripts against native rendering sessions",
		SilenceUsage: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.configFile, "config", config.DefaultFile, "config file")
	pf.StringVar(&o.backend, "backend", "", "native library to create sessions on (overrides config)")
	pf.StringVar(&o.assets, "assets", "", "asset directory (overrides config)")
	pf.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, or error (overrides config)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return o.setup()
	}
	root.AddCommand(newRunCmd(o), newReplCmd(o), newBackendsCmd(o))
	return root
}

// setup reads the config, applies the flags to it, and sets up
// logging and the software library from it.
func (o *options) setup() error {
	cfg, err := config.Open(o.configFile)
	if err != nil {
		return err
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.assets != "" {
		cfg.Assets = o.assets
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logx.UserLevel = errors.Must1(logx.ParseLevel(cfg.LogLevel))
	logx.SetDefaultLogger()

	opts := cfg.Software()
	native.Register("software", func() (native.Backend, error) {
		return software.New(opts), nil
	})
	o.cfg = cfg
	return nil
}

// newBackend returns the configured native backend, loading
// the native libraries if that has not been done yet.
func (o *options) newBackend() (native.Backend, error) {
	if err := native.Load(); err != nil {
		slog.Warn("bridge: some native libraries failed to load", "err", err)
	}
	return native.Get(o.cfg.Backend)
}

// assetsFS returns the configured asset source.
func (o *options) assetsFS() fs.FS {
	return assets.Dir(o.cfg.Assets)
}

// start returns a new adapter on the configured backend
// with its event loop running until the context is done.
func (o *options) start(ctx context.Context) (*host.Adapter, error) {
	backend, err := o.newBackend()
	if err != nil {
		return nil, err
	}
	a := host.NewAdapter(backend)
	a.Start(ctx)
	return a, nil
}

// finish destroys the session of the adapter if it is still alive.
func finish(a *host.Adapter) {
	if a.Valid() {
		errors.Log(a.OnDestroy())
	}
}

func newRunCmd(o *options) *cobra.Command {
	watch := false
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Replay a lifecycle script and print its trace",
		Long: `Replay a lifecycle script and print its trace.
Scripts with a .yaml or .yml extension are read as YAML,
and others as one step per line, such as "available S1 800 600".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return o.watchScript(cmd.Context(), cmd.OutOrStdout(), args[0])
			}
			return o.runScript(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "replay the script whenever it or the assets change")
	cmd.Flags().StringVar(&o.snapshot, "snapshot", "", "save the last frame drawn into the last surface to this image file")
	return cmd
}

// runScript replays the given script file on a new session
// and prints its trace.
func (o *options) runScript(ctx context.Context, out io.Writer, file string) error {
	sc, err := script.Open(file)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a, err := o.start(ctx)
	if err != nil {
		return err
	}
	defer finish(a)
	r := script.NewRunner(a, o.assetsFS())
	tr := r.Run(sc)
	fmt.Fprintf(out, "# %s\n%s", sc.Name, tr)
	if o.snapshot != "" {
		if err := o.saveSnapshot(r); err != nil {
			return err
		}
	}
	if n := tr.Errors(); n > 0 {
		return fmt.Errorf("%s: %d of %d steps failed", sc.Name, n, len(tr))
	}
	return nil
}

// saveSnapshot saves the last frame presented to the last
// surface of the runner.
func (o *options) saveSnapshot(r *script.Runner) error {
	c := r.Last()
	if c == nil {
		return errors.New("bridge: snapshot: no surface was attached")
	}
	frame := c.Frame()
	if frame == nil {
		return fmt.Errorf("bridge: snapshot: no frame was presented to %s", c)
	}
	return imagex.Save(frame, o.snapshot)
}

// watchScript replays the given script file, and again whenever
// it or the assets change, until the context is done.
func (o *options) watchScript(ctx context.Context, out io.Writer, file string) error {
	changed := make(chan string, 1)
	notify := func(path string) {
		select {
		case changed <- path:
		default:
		}
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return assets.Watch(ctx, filepath.Dir(file), notify)
	})
	if _, err := os.Stat(o.cfg.Assets); err == nil {
		g.Go(func() error {
			return assets.Watch(ctx, o.cfg.Assets, notify)
		})
	} else {
		slog.Info("bridge: not watching assets", "err", err)
	}
	g.Go(func() error {
		for {
			if err := o.runScript(ctx, out, file); err != nil {
				slog.Error("bridge: run", "err", err)
			}
			select {
			case <-ctx.Done():
				return nil
			case path := <-changed:
				slog.Info("bridge: replaying after change", "path", path)
			}
		}
	})
	return g.Wait()
}

func newReplCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read lifecycle steps from standard input and apply each as it is read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			a, err := o.start(ctx)
			if err != nil {
				return err
			}
			defer finish(a)
			return repl(script.NewRunner(a, o.assetsFS()), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// repl applies each step read from in to the runner,
// printing the outcome of each, until in ends or quit is read.
func repl(r *script.Runner, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case line == "quit" || line == "exit":
			return nil
		case line == "help":
			fmt.Fprintln(out, "steps:", strings.Join(script.Ops, ", "))
			fmt.Fprintln(out, "example: available S1 800 600")
		case line == "trace":
			fmt.Fprint(out, r.Trace)
		default:
			st, err := script.ParseLine(line)
			if err != nil {
				fmt.Fprintln(out, err)
				break
			}
			fmt.Fprintln(out, r.Step(st))
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return sc.Err()
}

func newBackendsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List the native libraries and whether they loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := native.Load(); err != nil {
				slog.Debug("bridge: some native libraries failed to load", "err", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range native.Available() {
				status := "ok"
				if _, err := native.Get(name); err != nil {
					status = err.Error()
				}
				mark := ""
				if name == o.cfg.Backend {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s%s\t%s\n", name, mark, status)
			}
			return tw.Flush()
		},
	}
}
