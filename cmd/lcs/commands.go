package main

import (
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lcsgo"
	"github.com/hupe1980/lcsgo/codec"
	"github.com/hupe1980/lcsgo/persistence"
	"github.com/hupe1980/lcsgo/population"
	"github.com/hupe1980/lcsgo/representation/ternary"
)

type app struct {
	configPath string
	cfg        *Config
	rep        *ternary.Representation
	sys        *lcsgo.System
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "lcs",
		Short:         "Inspect and maintain rule population checkpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "lcs.yaml", "path to the YAML configuration")

	root.AddCommand(
		a.inspectCmd(),
		a.compactCmd(),
		a.exportCmd(),
		a.listCmd(),
		a.latestCmd(),
		a.commitCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	store, err := cfg.OpenStore(cmd.Context())
	if err != nil {
		return err
	}
	compression, _ := persistence.ParseCompression(cfg.Compression)
	level, _ := cfg.level()

	a.cfg = cfg
	a.rep = ternary.New(cfg.Representation.Attributes, cfg.Representation.Classes)
	a.sys, err = lcsgo.New(a.rep,
		lcsgo.WithBlobStore(store),
		lcsgo.WithCompression(compression),
		lcsgo.WithLogger(lcsgo.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))),
	)
	return err
}

func (a *app) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect NAME",
		Short: "Print the rules of a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.sys.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printSet(cmd, args[0], set)
			return nil
		},
	}
}

func (a *app) printSet(cmd *cobra.Command, name string, set *population.ClassifierSet) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d macroclassifiers, numerosity %d\n", name, set.Len(), set.TotalNumerosity())

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tNUM\tFITNESS\tEXP\tSUBSUMER")
	for _, m := range set.All() {
		c := m.Classifier
		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%d\t%t\n", a.rep.Format(c.Chromosome()), m.Numerosity, c.Fitness, c.Experience, c.CanSubsume)
	}
	_ = tw.Flush()
}

func (a *app) compactCmd() *cobra.Command {
	var (
		out    string
		commit bool
	)
	cmd := &cobra.Command{
		Use:   "compact NAME",
		Short: "Self-subsume a checkpoint and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := a.sys.Open(ctx, args[0])
			if err != nil {
				return err
			}
			before := set.Len()
			a.sys.Compact(ctx, set)

			target := out
			if target == "" {
				target = args[0]
			}
			if commit {
				err = a.sys.Checkpoint(ctx, target, set)
			} else {
				err = a.sys.Save(ctx, target, set)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d -> %d macroclassifiers\n", target, before, set.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "checkpoint to write (default: overwrite NAME)")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the written checkpoint as CURRENT")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var codecName, indent string
	cmd := &cobra.Command{
		Use:   "export NAME",
		Short: "Write a checkpoint as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := codec.ByName(codecName)
			if !ok {
				return fmt.Errorf("unknown codec %q (want one of %v)", codecName, codec.Names())
			}
			set, err := a.sys.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return persistence.ExportJSON(cmd.OutOrStdout(), set, persistence.WithCodec(c), persistence.WithIndent(indent))
		},
	}
	cmd.Flags().StringVar(&codecName, "codec", "json", "JSON codec: json or go-json")
	cmd.Flags().StringVar(&indent, "indent", "", "pretty-print with this indent")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored checkpoints, marking the committed one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			names, err := a.sys.Checkpoints(ctx)
			if err != nil {
				return err
			}
			current, err := a.sys.Latest(ctx)
			if err != nil && !errors.Is(err, lcsgo.ErrNoCheckpoint) {
				return err
			}
			for _, n := range names {
				mark := " "
				if n == current {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, n)
			}
			return nil
		},
	}
}

func (a *app) latestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Print the committed checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := a.sys.Latest(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func (a *app) commitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit NAME",
		Short: "Point CURRENT at an existing checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sys.Commit(cmd.Context(), args[0])
		},
	}
}
