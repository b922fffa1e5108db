package audio

import (
	"encoding/binary"
	"math"
)

// EncodePCM packs mono samples as signed 16-bit little-endian PCM, the
// format the output device is opened with.
func EncodePCM(samples []float64) []byte {
	pcm := make([]byte, 2*len(samples))
	for i, sample := range samples {
		sample = math.Max(-1, math.Min(1, sample))
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(int16(math.Round(sample*math.MaxInt16))))
	}
	return pcm
}
