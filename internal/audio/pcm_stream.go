package audio

import (
	"fmt"
	"io"
)

// PCMStream is an in-memory 16-bit little-endian stereo PCM stream.
// It satisfies io.ReadSeeker so Ebitengine's audio.Player can rewind it.
type PCMStream struct {
	data       []byte // PCM data (16-bit signed, interleaved L/R)
	sampleRate int64  // Sample rate in Hz
	offset     int64  // Current read position
}

// NewPCMStream wraps rendered PCM bytes.
func NewPCMStream(data []byte, sampleRate int) *PCMStream {
	return &PCMStream{
		data:       data,
		sampleRate: int64(sampleRate),
	}
}

// Read reads PCM data into p.
// Implements io.Reader interface.
func (s *PCMStream) Read(p []byte) (n int, err error) {
	if s.offset >= int64(len(s.data)) {
		return 0, io.EOF
	}

	n = copy(p, s.data[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
// Implements io.Seeker interface.
func (s *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(s.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	s.offset = newOffset
	return newOffset, nil
}

// Length returns the total length of the PCM data in bytes.
func (s *PCMStream) Length() int64 {
	return int64(len(s.data))
}

// SampleRate returns the sample rate in Hz.
func (s *PCMStream) SampleRate() int64 {
	return s.sampleRate
}

// Bytes returns the underlying PCM data.
func (s *PCMStream) Bytes() []byte {
	return s.data
}
