package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

// ReadFLACFile decodes a mono FLAC file. Samples are normalized by the
// stream bit depth, as for WAV input.
func ReadFLACFile(path string) ([]float64, Header, error) {
	var header Header

	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, header, fmt.Errorf("%w: open FLAC %s: %w", ErrIO, path, err)
	}
	defer stream.Close()

	info := stream.Info
	if info.NChannels != 1 {
		return nil, header, fmt.Errorf("%w: unsupported channel count %d (only mono supported)", ErrFormat, info.NChannels)
	}
	if info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		return nil, header, fmt.Errorf("%w: unsupported bits per sample %d", ErrFormat, info.BitsPerSample)
	}
	header.SampleRate = info.SampleRate
	header.BitsPerSample = uint16(info.BitsPerSample)
	header.NumChannels = uint16(info.NChannels)

	scale := math.Ldexp(1, int(info.BitsPerSample)-1)
	var samples []float64
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, header, fmt.Errorf("%w: decode FLAC frame: %w", ErrFormat, err)
		}
		for _, s := range frame.Subframes[0].Samples {
			samples = append(samples, float64(s)/scale)
		}
	}
	header.NumSamples = len(samples)
	return samples, header, nil
}

// ReadFile decodes path as FLAC when it has a .flac extension, otherwise as WAV.
func ReadFile(path string) ([]float64, Header, error) {
	if strings.EqualFold(filepath.Ext(path), ".flac") {
		return ReadFLACFile(path)
	}
	return ReadWAVFile(path)
}

const (
	flacMaxBlock = 4096
	flacMinBlock = 16
)

// WriteFLACFile encodes normalized samples as 16-bit mono FLAC with
// verbatim subframes. At least 16 samples are required.
func WriteFLACFile(path string, samples []float64, sampleRate int) error {
	pcm := make([]int32, len(samples))
	for i, s := range samples {
		pcm[i] = toPCM16(s)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := writeFLAC(seekOnly{f}, sampleRate, 16, pcm); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// seekOnly hides Close so the encoder leaves closing to the caller.
type seekOnly struct{ io.WriteSeeker }

// writeFLAC encodes one or more equally long channels of raw samples.
func writeFLAC(w io.WriteSeeker, sampleRate int, bps uint8, channels ...[]int32) error {
	if len(channels) == 0 || len(channels) > 8 {
		return fmt.Errorf("%w: %d channels", ErrFormat, len(channels))
	}
	n := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: channels differ in length", ErrFormat)
		}
	}
	if n < flacMinBlock {
		return fmt.Errorf("%w: FLAC needs at least %d samples, got %d", ErrFormat, flacMinBlock, n)
	}
	if sampleRate <= 0 || sampleRate > 655350 {
		return fmt.Errorf("%w: sample rate %d", ErrFormat, sampleRate)
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  flacMinBlock,
		BlockSizeMax:  flacMaxBlock,
		SampleRate:    uint32(sampleRate),
		NChannels:     uint8(len(channels)),
		BitsPerSample: bps,
	}
	enc, err := flac.NewEncoder(w, info)
	if err != nil {
		return fmt.Errorf("%w: FLAC stream header: %w", ErrIO, err)
	}

	for _, b := range flacBlocks(n) {
		fr := &frame.Frame{
			Header: frame.Header{
				BlockSize:     uint16(b.size),
				Channels:      frame.Channels(len(channels) - 1),
				BitsPerSample: bps,
			},
		}
		for _, ch := range channels {
			fr.Subframes = append(fr.Subframes, &frame.Subframe{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   ch[b.start : b.start+b.size],
				NSamples:  b.size,
			})
		}
		if err := enc.WriteFrame(fr); err != nil {
			return fmt.Errorf("%w: FLAC frame: %w", ErrIO, err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w: finalize FLAC: %w", ErrIO, err)
	}
	return nil
}

type flacBlock struct{ start, size int }

// flacBlocks splits n samples into blocks of at most flacMaxBlock, moving
// samples from the second to last block so the last one has at least
// flacMinBlock.
func flacBlocks(n int) []flacBlock {
	var blocks []flacBlock
	for start := 0; start < n; start += flacMaxBlock {
		blocks = append(blocks, flacBlock{start, min(flacMaxBlock, n-start)})
	}
	if k := len(blocks); k > 1 && blocks[k-1].size < flacMinBlock {
		short := flacMinBlock - blocks[k-1].size
		blocks[k-2].size -= short
		blocks[k-1].start -= short
		blocks[k-1].size += short
	}
	return blocks
}
