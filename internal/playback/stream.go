package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync/atomic"
)

// trackStream serves a track as mono float32 little-endian PCM. The read
// cursor is shared with the UI goroutine, so it is atomic.
type trackStream struct {
	samples []float64
	offset  atomic.Int64
}

func (s *trackStream) Read(p []byte) (int, error) {
	off := int(s.offset.Load())
	if off >= len(s.samples) {
		return 0, io.EOF
	}

	n := min(len(p)/4, len(s.samples)-off)
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(float32(s.samples[off+i])))
	}
	s.offset.Add(int64(n))
	return n * 4, nil
}

// Seek positions the cursor in bytes.
func (s *trackStream) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = s.offset.Load() * 4
	case io.SeekEnd:
		base = int64(len(s.samples)) * 4
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	pos := max(0, min(base+offset, int64(len(s.samples))*4))
	s.offset.Store(pos / 4)
	return pos, nil
}
