package transcribe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// canonicalWAV decodes a RIFF/WAV upload and re-encodes its PCM data so the
// recognition service always receives a plain PCM WAV without extra chunks.
func canonicalWAV(data []byte) ([]byte, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, errors.New("not a valid WAV file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode WAV: %w", err)
	}
	if buf == nil || buf.NumFrames() == 0 {
		return nil, errors.New("WAV file contains no audio frames")
	}

	return encodeWAV(buf, int(d.BitDepth))
}

func encodeWAV(buf *audio.IntBuffer, bitDepth int) ([]byte, error) {
	tmp, err := os.CreateTemp("", "transcribe-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	enc := wav.NewEncoder(tmp, buf.Format.SampleRate, bitDepth, buf.Format.NumChannels, 1)
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("encoder write buffer: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoder close: %w", err)
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind WAV: %w", err)
	}
	out, err := io.ReadAll(tmp)
	if err != nil {
		return nil, fmt.Errorf("reading wav into memory: %w", err)
	}
	return out, nil
}
