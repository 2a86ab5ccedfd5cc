// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/xafmodel/xafmodel/internal/modeltree"
	"github.com/xafmodel/xafmodel/internal/watch"
	"github.com/xafmodel/xafmodel/pkg/fspath"
	"github.com/xafmodel/xafmodel/pkg/types"
)

type treeFlagValues struct {
	watch  bool
	flat   bool
	format outputFormat
}

func newTreeCommand(app *App, root *rootFlagValues) *cobra.Command {
	flags := &treeFlagValues{format: formatText}

	cmd := &cobra.Command{
		Use:   "tree [root]",
		Short: "List model files grouped with their variants",
		Long: `List the model files (*.xafml) under root (default: the working directory).

Localized and other variant files such as Model_de.xafml or
Model.DesignedDiffs.Localization.de.xafml are listed under their canonical
file. A canonical file that does not exist is shown as missing. Paths
matching tree.ignore are skipped.

With --flat the existing files are listed one per line instead, each
canonical file followed by its variants.`,
		Args: cobra.MaximumNArgs(1),
		RunE: app.withSession(root, func(cmd *cobra.Command, args []string, s *session) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runTree(cmd.Context(), app, s, flags, types.FilesystemPath(dir))
		}),
	}

	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "refresh the listing when model files change")
	cmd.Flags().BoolVar(&flags.flat, "flat", false, "list existing files one per line instead of a tree")
	cmd.Flags().Var(&flags.format, "format", "output format: text, json or yaml")
	return cmd
}

func runTree(ctx context.Context, app *App, s *session, flags *treeFlagValues, dir types.FilesystemPath) error {
	root, err := fspath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve tree root: %w", err)
	}

	show := func() error {
		groups, scanErr := modeltree.Scan(root, s.cfg.Tree.Ignore)
		if scanErr != nil {
			return scanErr
		}
		if flags.flat {
			return showFlat(app.stdout, flags.format, root, modeltree.Files(groups))
		}
		if flags.format != formatText {
			if groups == nil {
				groups = []modeltree.Group{}
			}
			return writeStructured(app.stdout, flags.format, groups)
		}
		printTree(app.stdout, root, groups)
		return nil
	}

	if err := show(); err != nil {
		return err
	}
	if !flags.watch {
		return nil
	}

	w, err := watch.New(watch.Config{
		Root:        root.String(),
		Patterns:    []string{modeltree.Pattern},
		Ignore:      s.cfg.Tree.Ignore,
		ClearScreen: flags.format == formatText,
		Screen:      app.stdout,
		OnChange: func(context.Context, []string) error {
			return show()
		},
		Log: s.log,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	fmt.Fprintf(app.stderr, "%s Watching %s for changes (Ctrl+C to stop)...\n", VerboseStyle.Render("→"), w.Root())
	return w.Run(ctx)
}

func printTree(w io.Writer, root types.FilesystemPath, groups []modeltree.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No model files found under "+root.String()))
		return
	}

	t := tree.Root(TitleStyle.Render(root.String())).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(SubtitleStyle)
	for _, g := range groups {
		label := g.Label
		if !g.Exists {
			label = missingStyle.Render(label + " (missing)")
		}
		if len(g.Variants) == 0 {
			t.Child(label)
			continue
		}
		node := tree.Root(label).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(SubtitleStyle)
		for _, v := range g.Variants {
			node.Child(CmdStyle.Render(v.Label))
		}
		t.Child(node)
	}
	fmt.Fprintln(w, t.String())
}

func showFlat(w io.Writer, format outputFormat, root types.FilesystemPath, files []modeltree.File) error {
	if format != formatText {
		if files == nil {
			files = []modeltree.File{}
		}
		return writeStructured(w, format, files)
	}
	if len(files) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No model files found under "+root.String()))
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(w, f.Label)
	}
	return nil
}
