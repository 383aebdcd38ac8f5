package syncstring

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode is the inverse of Decode.
func Encode(d *SyncDescriptor) (string, error) {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.SampleRate))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(len(d.Chunks)))
	for chunkIdx, chunk := range d.Chunks {
		if len(chunk.ZeroCrossings) == 0 {
			return "", fmt.Errorf("chunk #%d has no zero crossings", chunkIdx)
		}
		if chunk.ZeroCrossings[0] != chunk.StartOffset {
			return "", fmt.Errorf("chunk #%d: the first zero crossing (%d) is not at the start offset (%d)", chunkIdx, chunk.ZeroCrossings[0], chunk.StartOffset)
		}
		fmt.Fprintf(&b, " %d %d", len(chunk.ZeroCrossings), chunk.StartOffset)
		for k := 1; k < len(chunk.ZeroCrossings); k++ {
			delta := chunk.ZeroCrossings[k] - chunk.ZeroCrossings[k-1]
			if delta < 0 {
				return "", fmt.Errorf("chunk #%d: zero crossings are not sorted at #%d", chunkIdx, k)
			}
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(delta))
		}
	}
	return b.String(), nil
}
