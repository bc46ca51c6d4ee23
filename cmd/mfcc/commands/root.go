package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	mfcc "github.com/ieee0824/mfcc-go"
	"github.com/ieee0824/mfcc-go/config"
	"github.com/ieee0824/mfcc-go/feature"
)

// options holds the flag values of one command tree.
type options struct {
	cfgFile        string
	output         string
	format         string
	trace          bool
	allowNonFinite bool
	verbose        bool
	transform      string
	workers        int
}

// NewRootCommand builds the mfcc command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "mfcc [input]",
		Short: "Extract MFCCs from the first frame of an audio file",
		Long: `mfcc reads a mono 16-bit PCM WAV (or a mono FLAC) file, takes its
first frame and prints the mel-frequency cepstral coefficients, one per line.

The input defaults to a.wav. Pipeline parameters come from the built-in
defaults, an optional YAML file (--config) and the flags, in that order.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "YAML config file")
	pf.StringVar(&opts.transform, "transform", "", "spectral transform: direct or fft")
	pf.IntVar(&opts.workers, "workers", 0, "goroutines for the direct transform (0 = GOMAXPROCS)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline stages to stderr")
	pf.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	pf.StringVar(&opts.format, "format", "", "output format: text, json, yaml or msgpack")

	f := rootCmd.Flags()
	f.BoolVar(&opts.trace, "trace", false, "emit every intermediate vector")
	f.BoolVar(&opts.allowNonFinite, "allow-nonfinite", false, "print NaN/Inf coefficients instead of failing")

	rootCmd.AddCommand(newToneCommand())
	rootCmd.AddCommand(newConfigCommand(opts))
	return rootCmd
}

// Execute runs the mfcc command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// PrintError writes err as a single highlighted diagnostic line.
func PrintError(w io.Writer, err error) {
	style := lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("11"))
	fmt.Fprintln(w, style.Render("error: "+err.Error()))
}

// loadConfig layers the config file and any changed flags over the defaults.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		var err error
		if cfg, err = config.Load(opts.cfgFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("transform") {
		cfg.Feature.Transform = feature.Transform(opts.transform)
	}
	if flags.Changed("workers") {
		cfg.Feature.Workers = opts.workers
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("output") {
		cfg.Output.File = opts.output
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func runExtract(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Input = args[0]
	}
	if opts.trace && cfg.Output.Format == config.FormatText {
		return fmt.Errorf("%w: --trace needs json, yaml or msgpack output", feature.ErrConfig)
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}
	ext, err := mfcc.New(
		mfcc.WithConfig(cfg.Feature),
		mfcc.WithLogger(logger),
		mfcc.WithStrictFinite(!opts.allowNonFinite),
	)
	if err != nil {
		return err
	}

	tr, err := ext.TraceFile(cfg.Input)
	if err != nil {
		return err
	}

	var result any = tr.MFCC
	if opts.trace {
		result = tr
	}
	return writeOutput(cmd.OutOrStdout(), cfg.Output, result)
}
