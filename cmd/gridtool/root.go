package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gridtable/internal/core"
	"github.com/JonMunkholm/gridtable/internal/csvio"
	"github.com/JonMunkholm/gridtable/internal/grid"
	"github.com/JonMunkholm/gridtable/internal/logging"
)

const defaultMaxSize = 10 << 20

type rootOptions struct {
	logLevel string
	maxSize  int64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gridtool",
		Short: "Render CSV files as text tables",
		Long: `Load a CSV file into a rectangular grid and print it.

Commands:
  render  Draw the grid with borders, aligned left, right or center.
  csv     Re-emit the grid as CSV.
  info    Print the grid's dimensions and column widths.

Use "-" as the file name to read from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetupWriter(cmd.ErrOrStderr(), opts.logLevel, "text")
		},
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().Int64Var(&opts.maxSize, "max-size", defaultMaxSize, "Reject input files larger than this many bytes")

	root.AddCommand(newRenderCmd(opts), newCSVCmd(opts), newInfoCmd(opts))
	return root
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var align, style, output string

	cmd := &cobra.Command{
		Use:   "render <file.csv>",
		Short: "Draw the grid with borders",
		Example: `  gridtool render people.csv
  gridtool render people.csv -a R --style ascii -o output.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := grid.ParseAlignment(align)
			if err != nil {
				return err
			}
			s, err := grid.ParseStyle(style)
			if err != nil {
				return err
			}
			g, err := load(cmd, args[0], opts.maxSize)
			if err != nil {
				return err
			}
			out, err := g.RenderBordered(a, grid.WithStyle(s))
			if err != nil {
				return err
			}
			return emit(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&align, "align", "a", "L", "Cell alignment: L, R or C")
	cmd.Flags().StringVar(&style, "style", "box", "Border style: box or ascii")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newCSVCmd(opts *rootOptions) *cobra.Command {
	var (
		output string
		quoted bool
	)

	cmd := &cobra.Command{
		Use:   "csv <file.csv>",
		Short: "Re-emit the grid as CSV",
		Long: `Re-emit the grid as CSV.

By default cells are joined with commas and never quoted, so a cell that
contains a comma or newline will not read back the same. Pass --quoted for
RFC 4180 output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := load(cmd, args[0], opts.maxSize)
			if err != nil {
				return err
			}
			var out string
			if quoted {
				out, err = csvio.Encode(g.Rows())
				out = strings.TrimSuffix(out, "\n")
			} else {
				out, err = g.RenderCSV()
			}
			if err != nil {
				return err
			}
			return emit(cmd, output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&quoted, "quoted", false, "Quote cells that need it")
	return cmd
}

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.csv>",
		Short: "Print dimensions and column widths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := load(cmd, args[0], opts.maxSize)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "rows:    %d\n", g.RowCount())
			fmt.Fprintf(w, "columns: %d\n", g.ColumnCount())
			fmt.Fprintf(w, "widths:  %v\n", g.ColumnWidths())
			return nil
		},
	}
}

// load reads path, or stdin for "-", into a grid.
func load(cmd *cobra.Command, path string, maxSize int64) (*grid.Grid, error) {
	var (
		rows [][]string
		err  error
	)
	if path == "-" {
		var r io.Reader = cmd.InOrStdin()
		if maxSize > 0 {
			r = csvio.LimitReader(r, maxSize)
		}
		rows, err = csvio.Read(r)
	} else {
		rows, err = csvio.ReadFile(path, maxSize)
	}
	if err != nil {
		return nil, err
	}

	g, err := grid.Parse(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("grid loaded", "path", path, "rows", g.RowCount(), "columns", g.ColumnCount())
	return g, nil
}

// emit prints text, or writes it to output when set.
func emit(cmd *cobra.Command, output, text string) error {
	if output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	}
	if err := csvio.WriteFile(output, text); err != nil {
		return err
	}
	slog.Info("wrote output", "path", output)
	return nil
}

// errorText is the line printed for a failed command. Errors with a known
// code print their user message; the technical error goes to the debug log.
// Anything else, such as a missing file or a bad flag, prints as is.
func errorText(err error) string {
	if !core.IsUserFacing(err) {
		return err.Error()
	}
	ue := core.NewUserError(err)
	slog.Debug("command failed", "code", ue.User.Code, "error", ue.Unwrap())
	return core.FormatUserError(err)
}
