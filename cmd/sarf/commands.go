package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	lexiconrepo "sarf/internal/gateway/repository/lexicon"
	"sarf/internal/lexicon"
	"sarf/internal/logging"
)

// cli carries the flag values and the opened lexicon between commands.
type cli struct {
	out         io.Writer
	rootsPath   string
	schemesPath string
	verbose     bool

	log   *zap.Logger
	repo  *lexiconrepo.FileStore
	store *lexicon.Store
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:           "sarf",
		Short:         "Arabic root and scheme morphology over a text-file lexicon",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.rootsPath, "roots", "data/roots.txt", "roots file, one root per line")
	root.PersistentFlags().StringVar(&c.schemesPath, "schemes", "data/schemes.txt", "schemes file, name,category per line")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log load and save details")

	root.AddCommand(
		c.rootsCmd(),
		c.schemesCmd(),
		c.generateCmd(),
		c.verifyCmd(),
		c.identifyCmd(),
	)
	return root
}

func (c *cli) open(ctx context.Context) error {
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logging.New("local", level)
	if err != nil {
		return err
	}
	c.log = log

	if ctx == nil {
		ctx = context.Background()
	}
	c.repo = lexiconrepo.NewFileStore(c.rootsPath, c.schemesPath)
	snap, err := c.repo.Load(ctx)
	if err != nil {
		return err
	}
	store, rep := lexicon.NewStoreFrom(snap)
	c.store = store
	if len(rep.Skipped) > 0 {
		c.log.Warn("skipped invalid root tokens", zap.Strings("tokens", rep.Skipped))
	}
	c.log.Debug("lexicon loaded",
		zap.String("roots_path", c.rootsPath),
		zap.Int("roots", rep.Roots),
		zap.Int("schemes", rep.Schemes))
	return nil
}

// save writes the lexicon back after a mutating command.
func (c *cli) save(ctx context.Context) error {
	snap := c.store.Export()
	if err := c.repo.Save(ctx, snap); err != nil {
		return err
	}
	c.log.Debug("lexicon saved", zap.Int("roots", len(snap.Roots)), zap.Int("schemes", len(snap.Schemes)))
	return nil
}
