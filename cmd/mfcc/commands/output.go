package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"

	mfcc "github.com/ieee0824/mfcc-go"
	"github.com/ieee0824/mfcc-go/config"
	"github.com/ieee0824/mfcc-go/feature"
	"github.com/ieee0824/mfcc-go/internal/mathutil"
)

// writeOutput encodes result in out.Format to out.File, or to stdout when
// no file is set. Nothing is created until the result is ready.
func writeOutput(stdout io.Writer, out config.OutputConfig, result any) error {
	if out.File == "" {
		return encode(stdout, out.Format, result)
	}
	f, err := os.Create(out.File)
	if err != nil {
		return fmt.Errorf("%w: create output file: %w", mfcc.ErrIO, err)
	}
	if err := encode(f, out.Format, result); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", mfcc.ErrIO, err)
	}
	return nil
}

func encode(w io.Writer, format string, result any) error {
	switch format {
	case config.FormatText, "":
		return outputText(w, result)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonSafe(result))
	case config.FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	case config.FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(result)
	default:
		return fmt.Errorf("%w: unsupported output format: %s", feature.ErrConfig, format)
	}
}

// outputText prints one number per line.
func outputText(w io.Writer, result any) error {
	v, ok := result.([]float64)
	if !ok {
		return fmt.Errorf("%w: text output supports only the coefficient vector", feature.ErrConfig)
	}
	bw := bufio.NewWriter(w)
	for _, x := range v {
		bw.WriteString(formatFloat(x))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// jsonSafe rewrites vectors holding NaN or Inf as string slices, since
// JSON has no encoding for them.
func jsonSafe(result any) any {
	switch r := result.(type) {
	case []float64:
		return jsonVector(r)
	case *feature.Trace:
		return map[string]any{
			"emphasized":   jsonVector(r.Emphasized),
			"windowed":     jsonVector(r.Windowed),
			"real":         jsonVector(r.Real),
			"imag":         jsonVector(r.Imag),
			"magnitude":    jsonVector(r.Magnitude),
			"mel_energies": jsonVector(r.MelEnergies),
			"log_mel":      jsonVector(r.LogMel),
			"cepstrum":     jsonVector(r.Cepstrum),
			"mfcc":         jsonVector(r.MFCC),
		}
	}
	return result
}

func jsonVector(v []float64) any {
	if mathutil.FirstNonFinite(v) < 0 {
		return v
	}
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = formatFloat(x)
	}
	return out
}
