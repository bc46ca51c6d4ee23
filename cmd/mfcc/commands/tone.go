package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ieee0824/mfcc-go/audio"
)

func newToneCommand() *cobra.Command {
	var (
		freq      float64
		rate      int
		samples   int
		amplitude float64
	)
	cmd := &cobra.Command{
		Use:   "tone <out.wav|out.flac>",
		Short: "Write a sine test tone as 16-bit mono WAV or FLAC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples <= 0 {
				return fmt.Errorf("--samples must be positive, got %d", samples)
			}
			tone := audio.Sine(samples, freq, rate, amplitude)
			write := audio.WriteWAVFile
			if strings.EqualFold(filepath.Ext(args[0]), ".flac") {
				write = audio.WriteFLACFile
			}
			if err := write(args[0], tone, rate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d samples at %d Hz to %s\n", samples, rate, args[0])
			return nil
		},
	}
	cmd.Flags().Float64Var(&freq, "freq", 440, "tone frequency in Hz")
	cmd.Flags().IntVar(&rate, "rate", 44100, "sample rate in Hz")
	cmd.Flags().IntVar(&samples, "samples", 1024, "number of samples")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 0.5, "peak amplitude in [0, 1]")
	return cmd
}
