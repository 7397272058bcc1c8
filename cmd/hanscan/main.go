// Command hanscan extracts Han string literals from C# sources into
// per-module translation tables.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/hanscan"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	codePath   string
	apiKey     string
	outputDir  string
	cacheFile  string
	redisURL   string
	format     string
	workers    int
	dryRun     bool
	noAPI      bool
	uniqueKeys bool
	verbose    bool
	quiet      bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           hanscan.Name,
		Short:         "Extract Han string literals from C# code into translation tables",
		Long:          hanscan.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(stderr, opts.verbose, opts.quiet)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "TOML config file (default: ./hanscan.toml if present)")
	f.StringVar(&opts.codePath, "code-path", "", "root folder whose subfolders are the modules")
	f.StringVar(&opts.apiKey, "api-key", "", "key-suggestion API key (default: DEEPSEEK_API_KEY or ds_api.txt)")
	f.StringVar(&opts.outputDir, "output-dir", "", "folder for the generated tables")
	f.StringVar(&opts.cacheFile, "cache-file", "", "JSON key cache file")
	f.StringVar(&opts.redisURL, "redis-url", "", "use a shared Redis key cache instead of the cache file")
	f.StringVar(&opts.format, "format", "", "output format: csv, json or html")
	f.IntVar(&opts.workers, "workers", 0, "files scanned concurrently")
	f.BoolVar(&opts.dryRun, "dry-run", false, "print the rows instead of writing files")
	f.BoolVar(&opts.noAPI, "no-api", false, "never call the key-suggestion API")
	f.BoolVar(&opts.uniqueKeys, "unique-keys", false, "suffix colliding keys within a module with _2, _3, ...")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "only log warnings and errors")

	root.AddCommand(
		allCmd(opts, stdout),
		singleCmd(opts, stdout),
		diffCmd(opts, stdout),
		cacheCmd(opts, stdout),
		versionCmd(stdout),
	)
	return root
}

func setupLogging(w io.Writer, verbose, quiet bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})

	level := zerolog.InfoLevel
	switch {
	case verbose:
		level = zerolog.DebugLevel
	case quiet:
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)
}

func versionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := hanscan.ReadBuildInfo()
			fmt.Fprintf(stdout, "%s %s\n", hanscan.Name, info)
			if info.BuildDate != "" {
				fmt.Fprintf(stdout, "  built:   %s\n", info.BuildDate)
			}
		},
	}
}
