package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

var (
	// ErrIO reports an input source that cannot be opened or read.
	ErrIO = errors.New("io error")

	// ErrFormat reports a malformed container header or an unsupported encoding.
	ErrFormat = errors.New("format error")
)

// HeaderSize is the size of the canonical RIFF/WAVE header.
const HeaderSize = 44

// Header holds the decoded audio parameters.
type Header struct {
	SampleRate    uint32
	BitsPerSample uint16
	NumChannels   uint16
	NumSamples    int
}

// canonicalHeader mirrors the 44-byte on-disk layout.
type canonicalHeader struct {
	RiffID     [4]byte
	Size       uint32
	WaveID     [4]byte
	FmtID      [4]byte
	FmtSize    uint32
	Format     uint16
	Channels   uint16
	SampleRate uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
	DataID     [4]byte
	DataSize   uint32
}

// ReadWAV reads a canonical 44-byte-header WAV stream and returns samples
// normalized as sample / 2^(bits-1). Only 16-bit PCM mono is accepted.
// A data chunk shorter than declared is read up to EOF.
func ReadWAV(r io.Reader) ([]float64, Header, error) {
	var header Header

	var h canonicalHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, header, fmt.Errorf("%w: header shorter than %d bytes", ErrFormat, HeaderSize)
		}
		return nil, header, fmt.Errorf("%w: read header: %w", ErrIO, err)
	}
	if err := h.validate(); err != nil {
		return nil, header, err
	}

	header.SampleRate = h.SampleRate
	header.BitsPerSample = h.Bits
	header.NumChannels = h.Channels

	samples, err := readPCM16(io.LimitReader(r, int64(h.DataSize)), h.Bits)
	if err != nil {
		return nil, header, err
	}
	header.NumSamples = len(samples)
	return samples, header, nil
}

// ReadWAVFile is a convenience wrapper that opens a file path.
func ReadWAVFile(path string) ([]float64, Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()
	return ReadWAV(f)
}

func (h *canonicalHeader) validate() error {
	if string(h.RiffID[:]) != "RIFF" {
		return fmt.Errorf("%w: not a RIFF file", ErrFormat)
	}
	if string(h.WaveID[:]) != "WAVE" {
		return fmt.Errorf("%w: not a WAVE file", ErrFormat)
	}
	if string(h.FmtID[:]) != "fmt " || h.FmtSize != 16 {
		return fmt.Errorf("%w: expected 16-byte fmt chunk at offset 12", ErrFormat)
	}
	if h.Format != 1 {
		return fmt.Errorf("%w: unsupported audio format %d (only PCM=1 supported)", ErrFormat, h.Format)
	}
	if h.Channels != 1 {
		return fmt.Errorf("%w: unsupported channel count %d (only mono supported)", ErrFormat, h.Channels)
	}
	if h.Bits != 16 {
		return fmt.Errorf("%w: unsupported bits per sample %d (only 16 supported)", ErrFormat, h.Bits)
	}
	if string(h.DataID[:]) != "data" {
		return fmt.Errorf("%w: expected data chunk at offset 36", ErrFormat)
	}
	return nil
}

func readPCM16(r io.Reader, bits uint16) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read PCM data: %w", ErrIO, err)
	}
	// A trailing odd byte is an incomplete sample.
	n := len(data) / 2
	scale := math.Ldexp(1, int(bits)-1)
	samples := make([]float64, n)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(data[2*i:]))
		samples[i] = float64(s) / scale
	}
	return samples, nil
}
