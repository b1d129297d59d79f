package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cleitonmarx/envschema/config"
	"github.com/cleitonmarx/envschema/introspection"
	"github.com/cleitonmarx/envschema/schemadoc"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// schemaReport pairs a schema document with its resolution report.
type schemaReport struct {
	Schema string               `json:"schema"`
	Report introspection.Report `json:"report"`
}

func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check SCHEMA...",
		Short: "Resolve schema documents against the current environment",
		Long: `Resolve schema documents against the current environment.

Every document is resolved independently. The command prints how each key was
resolved and fails on the first required variable that is unset or empty.

Example:
  envschema check api.yaml
  envschema check --output json api.yaml worker.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if output != outputText && output != outputJSON {
				return fmt.Errorf("unsupported output format '%s'", output)
			}

			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			err = runCheck(cmd.Context(), cmd.OutOrStdout(), logger, newProvider(), output, args)
			if err != nil {
				logger.Error("schema check failed", zap.Error(err))
			}
			return err
		},
	}
	checkCmd.Flags().StringP("output", "o", outputText, "Output format (text or json)")
	return checkCmd
}

// runCheck resolves every schema document concurrently and writes the reports in argument order.
func runCheck(ctx context.Context, out io.Writer, logger *zap.Logger, provider config.Provider, output string, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reports := make([]schemaReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			schema, err := schemadoc.LoadFile(path)
			if err != nil {
				return err
			}
			result, err := config.Resolve(gctx, provider, schema)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			logger.Debug("schema resolved", zap.String("schema", path), zap.Int("fields", len(schema)))
			reports[i] = schemaReport{Schema: path, Report: result.Report()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("schemas satisfied", zap.Int("count", len(paths)))
	return writeReports(out, output, reports)
}

func writeReports(out io.Writer, output string, reports []schemaReport) error {
	if output == outputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for i, r := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "# %s\n", r.Schema); err != nil {
			return err
		}
		if err := r.Report.FormatText(out); err != nil {
			return err
		}
	}
	return nil
}
