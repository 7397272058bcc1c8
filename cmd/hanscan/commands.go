package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/hanscan"
	"github.com/ZaguanLabs/hanscan/cache"
	"github.com/ZaguanLabs/hanscan/output"
)

func allCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Write one table per module folder under the code path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			a.openCache()
			defer a.close()

			results, err := a.extractor(opts).ExtractAll(cmd.Context(), a.cfg.CodePath)
			if !opts.dryRun {
				defer a.saveCache()
			}
			if len(results) == 0 && err == nil {
				fmt.Fprintf(stdout, "No module folders under %s\n", a.cfg.CodePath)
				return nil
			}

			total := 0
			for _, res := range results {
				if werr := a.emit(stdout, res, opts.dryRun); werr != nil {
					return werr
				}
				total += len(res.Rows)
			}
			if err != nil {
				return err
			}
			printTotal(stdout, len(results), total)
			return nil
		},
	}
}

func singleCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "single <folder>",
		Short: "Write the table of one module folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			dir, err := a.scopeDir(args[0])
			if err != nil {
				return err
			}
			a.openCache()
			defer a.close()

			res, err := a.extractor(opts).ExtractScope(cmd.Context(), dir, args[0])
			if err != nil {
				return err
			}
			if !opts.dryRun {
				a.saveCache()
			}
			return a.emit(stdout, res, opts.dryRun)
		},
	}
}

func diffCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <folder> <previous-table>",
		Short: "Compare a module folder with a previously written table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			dir, err := a.scopeDir(args[0])
			if err != nil {
				return err
			}
			previous, err := output.ReadFile(args[1])
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return &hanscan.ConfigError{Message: fmt.Sprintf("previous table %s does not exist", args[1])}
				}
				return err
			}
			a.openCache()
			defer a.close()

			res, err := a.extractor(opts).ExtractScope(cmd.Context(), dir, args[0])
			if err != nil {
				return err
			}
			if !opts.dryRun {
				a.saveCache()
			}
			printDiff(stdout, res.Scope, hanscan.DiffRows(previous, res.Rows))
			return nil
		},
	}
}

func cacheCmd(opts *options, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Move keys between caches",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the key cache to a versioned JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cacheApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			metadata := map[string]string{"tool": hanscan.Name, "version": hanscan.Version}
			if err := cache.NewExporter(a.cache).ExportToFile(cmd.Context(), args[0], metadata); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Cache exported to %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Load keys from a file written by cache export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return &hanscan.ConfigError{Message: fmt.Sprintf("cannot read %s", args[0]), Cause: err}
			}
			a, err := cacheApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := cache.NewImporter(a.cache).ImportFromFile(args[0])
			if err != nil {
				return err
			}
			a.saveCache()
			log.Info().Int("imported", result.Imported).Int("skipped", result.Skipped).
				Int("failed", result.Failed).Msg("Cache import finished")
			fmt.Fprintf(stdout, "Imported %d keys (%d skipped, %d failed)\n",
				result.Imported, result.Skipped, result.Failed)
			return nil
		},
	})
	return cmd
}

// cacheApp opens the configured cache without requiring a code path.
func cacheApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg}
	a.openCache()
	return a, nil
}

// emit writes or prints the table of one scope. Empty scopes produce no file.
func (a *app) emit(stdout io.Writer, res *hanscan.ScopeResult, dryRun bool) error {
	if res.Stats.FailedFiles > 0 {
		errColor.Fprintf(stdout, "! %s: %d unreadable files skipped\n", res.Scope, res.Stats.FailedFiles)
	}
	if len(res.Rows) == 0 {
		warnColor.Fprintf(stdout, "- %s: no literals found\n", res.Scope)
		return nil
	}
	if dryRun {
		printRows(stdout, res)
		return nil
	}

	path, err := output.WriteFile(a.writer, a.cfg.OutputDir, res.Scope, res.Rows)
	if err != nil {
		return err
	}
	printWritten(stdout, res, path)
	return nil
}
