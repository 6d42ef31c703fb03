// hlgen extracts classes, methods and functions from wxc-style C headers.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phobologic/hlgen/internal/cache"
	"github.com/phobologic/hlgen/internal/classify"
	"github.com/phobologic/hlgen/internal/config"
	"github.com/phobologic/hlgen/internal/discover"
	"github.com/phobologic/hlgen/internal/filter"
	"github.com/phobologic/hlgen/internal/model"
	"github.com/phobologic/hlgen/internal/resolve"
	"github.com/phobologic/hlgen/internal/toon"
	"github.com/phobologic/hlgen/internal/traverse"
	"github.com/phobologic/hlgen/internal/verify"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	dir         string
	format      string
	configPath  string
	cachePath   string
	logLevel    string
	classes     []string
	functions   []string
	subclasses  bool
	verify      bool
	lenient     bool
	showVersion bool
}

func run(args []string, stdout, stderr io.Writer) error {
	if args == nil {
		args = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "hlgen [flags] <root-header>",
		Short: "Extract a binding model from wxc-style C headers",
		Long: `hlgen reads a root header and every local header it includes, and lists
the declared classes, the methods attached to each class, and the free
functions. Methods whose class cannot be found are reported.

Example usage:
  hlgen wxc/include/wxc.h                 # text listing
  hlgen --format toon wxc/include/wxc.h   # TOON tables
  hlgen --class 'wxFrame*' --subclasses wxc.h`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				_, _ = fmt.Fprintf(stdout, "hlgen %s\n", version)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("missing root header argument")
			}
			return generate(cmd, args[0], opts, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.dir, "dir", "d", "", "base directory for includes (default: root header's directory)")
	f.StringVarP(&opts.format, "format", "f", "text", "output format: text or toon")
	f.StringVar(&opts.configPath, "config", "", "config file (default: <dir>/hlgen.yaml)")
	f.StringVar(&opts.cachePath, "cache", "", "cache database path")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringArrayVar(&opts.classes, "class", nil, "only classes matching this glob (repeatable)")
	f.StringArrayVar(&opts.functions, "function", nil, "only functions matching this glob (repeatable)")
	f.BoolVar(&opts.subclasses, "subclasses", false, "with --class, also keep subclasses of matched classes")
	f.BoolVar(&opts.verify, "verify", false, "cross-check declarations with the C grammar")
	f.BoolVar(&opts.lenient, "lenient", false, "warn about malformed declarations instead of failing")
	f.BoolVarP(&opts.showVersion, "version", "V", false, "show version and exit")

	cmd.AddCommand(newInitCmd(stdout, stderr))
	return cmd
}

func generate(cmd *cobra.Command, root string, opts options, stdout, stderr io.Writer) error {
	base := opts.dir
	if base == "" {
		base = filepath.Dir(root)
	}

	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.LoadFromDir(base)
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = opts.format
	}
	if format != "text" && format != "toon" {
		return fmt.Errorf("unsupported format %q", format)
	}

	levelName := cfg.Logging.Level
	if opts.logLevel != "" {
		levelName = opts.logLevel
	}
	level, err := config.LogLevel(levelName)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	lenient := opts.lenient || !cfg.Strict
	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = filepath.Join(base, config.FileName)
	}

	// --verify reports through the log, so a cached result would hide it.
	var store *cache.Store
	var cacheKey string
	if opts.cachePath != "" && !opts.verify {
		store, err = cache.Open(opts.cachePath)
		if err != nil {
			return err
		}
		defer store.Close()

		digest, err := configDigest(cfg)
		if err != nil {
			return err
		}
		absRoot, _ := filepath.Abs(root)
		absBase, _ := filepath.Abs(base)
		cacheKey = cache.Key(absRoot, absBase, format,
			strings.Join(opts.classes, "\n"), strings.Join(opts.functions, "\n"),
			strconv.FormatBool(opts.subclasses), strconv.FormatBool(lenient), digest)

		if out, ok, err := store.Get(cacheKey); err == nil && ok {
			_, _ = fmt.Fprintln(stdout, out)
			return nil
		}
	}

	w := traverse.New(classify.New(cfg.Markers), discover.NewResolver(base, cfg.Ignore), logger)
	w.Lenient = lenient

	m, err := w.Walk(root)
	if err != nil {
		return err
	}

	for _, u := range resolve.Resolve(m) {
		logger.Warn("unresolved method",
			slog.String("symbol", u.CSymbol),
			slog.String("class", u.ClassName),
			slog.String("file", u.File),
			slog.Int("line", u.Line))
	}

	if opts.verify {
		if err := runVerify(base, m, logger); err != nil {
			return err
		}
	}

	selected, err := filter.Select(m, filter.Options{
		Classes:    opts.classes,
		Functions:  opts.functions,
		Subclasses: opts.subclasses,
	})
	if err != nil {
		return err
	}

	var output string
	if format == "toon" {
		output = toon.Encode(selected, filepath.Base(root))
	} else {
		output = toon.EncodeText(selected)
	}

	if store != nil {
		files, missing := cacheInputs(base, cfgPath, m)
		if err := store.Put(cacheKey, output, files, missing); err != nil {
			logger.Warn("cache write failed", slog.Any("err", err))
		}
	}

	_, _ = fmt.Fprintln(stdout, output)
	return nil
}

func runVerify(base string, m *model.Model, logger *slog.Logger) error {
	report, err := verify.New().Run(base, m)
	if err != nil {
		return fmt.Errorf("verifying declarations: %w", err)
	}
	for _, mm := range report.Mismatches {
		logger.Warn("declaration symbol mismatch",
			slog.String("file", mm.File),
			slog.Int("line", mm.Line),
			slog.String("symbol", mm.Symbol),
			slog.String("grammar", mm.Grammar))
	}
	logger.Info("verified declarations",
		slog.Int("checked", report.Checked),
		slog.Int("unchecked", report.Unchecked),
		slog.Int("mismatches", len(report.Mismatches)))
	return nil
}

// configDigest fingerprints the effective configuration so that edits to
// markers or ignore patterns select a different cache entry.
func configDigest(cfg *config.Config) (string, error) {
	data, err := cfg.Marshal()
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// cacheInputs lists the files an output depends on: headers that were read,
// plus the config and ignore files, and the includes and settings files that
// did not exist.
func cacheInputs(base, cfgPath string, m *model.Model) (files, missing []string) {
	for _, f := range m.Files {
		files = append(files, headerPath(base, f))
	}
	for _, f := range m.Missing {
		missing = append(missing, headerPath(base, f))
	}
	for _, p := range []string{cfgPath, filepath.Join(base, discover.IgnoreFile)} {
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		} else {
			missing = append(missing, p)
		}
	}
	return files, missing
}

// headerPath turns a model file entry back into a filesystem path.
func headerPath(base, f string) string {
	p := filepath.FromSlash(f)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
