package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/logdecode/internal/aggregator"
	"github.com/atikulmunna/logdecode/internal/labels"
	"github.com/atikulmunna/logdecode/internal/logger"
	"github.com/atikulmunna/logdecode/internal/output"
	"github.com/atikulmunna/logdecode/internal/parser"
	"github.com/atikulmunna/logdecode/internal/pipeline"
	"github.com/atikulmunna/logdecode/internal/tailer"
	"github.com/atikulmunna/logdecode/internal/watcher"
)

// options is everything a decode run needs, resolved from flags, env and config.
type options struct {
	File      string
	Project   string
	Tokenizer string
	LogLevel  string
	StatePath string
	Follow    bool
	Resume    bool
	Quiet     bool
	Projects  []labels.Definition
}

func runDecode(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return configErr
	}

	opts := options{
		File:      viper.GetString("file"),
		Project:   viper.GetString("project"),
		Tokenizer: viper.GetString("tokenizer"),
		LogLevel:  viper.GetString("log-level"),
		StatePath: viper.GetString("state"),
		Follow:    viper.GetBool("follow"),
		Resume:    viper.GetBool("resume"),
		Quiet:     viper.GetBool("quiet"),
	}
	if err := viper.UnmarshalKey("projects", &opts.Projects); err != nil {
		return errors.Wrap(err, "config: projects")
	}
	if err := opts.validate(); err != nil {
		return err
	}

	return run(context.Background(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// validate rejects invocations that must print usage without touching any file.
func (o options) validate() error {
	switch {
	case o.File == "" && o.Project == "":
		return usageError{"-f <LOGFILE> and -p <PROJECT> are required"}
	case o.File == "":
		return usageError{"-f <LOGFILE> is required"}
	case o.Project == "":
		return usageError{"-p <PROJECT> is required"}
	}
	return nil
}

// run decodes opts.File into its destination. Records written before an error
// stay in the destination.
func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	log := logger.NewWithWriter(opts.LogLevel, stderr)
	defer log.Sync()

	registry := labels.NewRegistry()
	if err := registry.RegisterAll(opts.Projects); err != nil {
		return errors.Wrap(err, "config")
	}
	tok, err := parser.NewTokenizer(opts.Tokenizer)
	if err != nil {
		return err
	}
	tables, ok := registry.Lookup(opts.Project)
	if !ok {
		log.Warnw("no label tables for project, lines will not decode",
			"project", opts.Project, "known", registry.Names())
	}

	console := output.NewConsole(stdout, stderr)
	console.Banner(opts.File, opts.Project)

	dest, err := output.DestPath(opts.File)
	if err != nil {
		return err
	}

	var (
		ckpt    *tailer.Checkpoint
		key     string
		state   tailer.SourceState
		resumed bool
	)
	if opts.Resume {
		if ckpt, err = tailer.NewCheckpoint(opts.StatePath); err != nil {
			return err
		}
		if key, err = filepath.Abs(opts.File); err != nil {
			return errors.Wrap(err, "resolve source path")
		}
		state, resumed = ckpt.Get(key)
		log.Infow("resuming", "source", key, "offset", state.Offset, "found", resumed)
	}

	tail, err := tailer.Open(opts.File, state, log)
	if err != nil {
		return err
	}
	defer tail.Close()

	f, err := output.OpenAppend(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	p := pipeline.New(parser.NewDecoder(tables, opts.Project, tok), output.NewTextRenderer(f), aggregator.New())
	if resumed {
		p.Restore(state.Last)
	}

	save := func() {
		if ckpt == nil {
			return
		}
		ckpt.Set(key, tail.State())
		if err := ckpt.Save(); err != nil {
			log.Errorw("checkpoint save failed", "path", opts.StatePath, "error", err)
		}
	}

	if opts.Follow {
		err = follow(ctx, opts.File, tail, p, save, log, stderr)
	} else {
		err = tail.Drain(p.Process)
		save()
	}

	stats := p.Stats()
	if err != nil {
		return errors.Wrapf(err, "%s: line %d", opts.File, stats.Lines)
	}
	if !opts.Quiet {
		console.Summary(dest, stats)
	}
	return nil
}

// follow decodes appended lines until SIGINT/SIGTERM or the source goes away.
func follow(ctx context.Context, path string, tail *tailer.Tailer, p *pipeline.Pipeline,
	save func(), log *logger.Logger, stderr io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(stderr, "\nlogdecode: stopping...")
			cancel()
		case <-ctx.Done():
		}
	}()

	w, err := watcher.New(path, log)
	if err != nil {
		return err
	}
	go w.Start(ctx)

	log.Infow("following", "path", w.Path())
	return tail.Follow(ctx, w.Events, p.Process, save)
}
