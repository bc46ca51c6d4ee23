// Command mfcc prints the mel-frequency cepstral coefficients of the first
// frame of a WAV or FLAC file.
//
// Usage:
//
//	mfcc [flags] [input]
//	mfcc tone [flags] <out.wav>
//	mfcc config [flags]
//
// The input defaults to a.wav. Coefficients are printed one per line.
package main

import (
	"os"

	"github.com/ieee0824/mfcc-go/cmd/mfcc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
