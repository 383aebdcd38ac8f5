package syncstring

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenCursor struct {
	tokens []string
	pos    int
}

func (c *tokenCursor) next(what string) (int, error) {
	if c.pos >= len(c.tokens) {
		return 0, &FormatError{Token: c.pos, Reason: fmt.Sprintf("expected %s, but the string ended", what)}
	}
	v, err := strconv.Atoi(c.tokens[c.pos])
	if err != nil {
		return 0, &FormatError{Token: c.pos, Reason: fmt.Sprintf("unable to parse %s '%s': %v", what, c.tokens[c.pos], err)}
	}
	c.pos++
	return v, nil
}

func (c *tokenCursor) remaining() int {
	return len(c.tokens) - c.pos
}

// Decode parses a decompressed sync-string.
func Decode(text string) (*SyncDescriptor, error) {
	c := &tokenCursor{tokens: strings.Fields(text)}

	sampleRate, err := c.next("sample rate")
	if err != nil {
		return nil, err
	}
	chunkCount, err := c.next("chunk count")
	if err != nil {
		return nil, err
	}
	// every chunk takes at least two tokens
	if chunkCount < 0 || chunkCount > c.remaining()/2 {
		return nil, &FormatError{Token: 1, Reason: fmt.Sprintf("chunk count %d is out of range", chunkCount)}
	}

	d := &SyncDescriptor{
		SampleRate: sampleRate,
		Chunks:     make([]ChunkRef, 0, chunkCount),
	}
	for chunkIdx := 0; chunkIdx < chunkCount; chunkIdx++ {
		sizeToken := c.pos
		size, err := c.next("chunk size")
		if err != nil {
			return nil, err
		}
		if size < 1 || size-1 > c.remaining()-1 {
			return nil, &FormatError{Token: sizeToken, Reason: fmt.Sprintf("chunk #%d: size %d is out of range", chunkIdx, size)}
		}
		base, err := c.next("chunk base")
		if err != nil {
			return nil, err
		}

		positions := make([]int, 1, size)
		positions[0] = base
		for k := 1; k < size; k++ {
			deltaToken := c.pos
			delta, err := c.next("delta")
			if err != nil {
				return nil, err
			}
			if delta < 0 {
				return nil, &FormatError{Token: deltaToken, Reason: fmt.Sprintf("chunk #%d: negative delta %d", chunkIdx, delta)}
			}
			positions = append(positions, positions[k-1]+delta)
		}
		d.Chunks = append(d.Chunks, ChunkRef{
			StartOffset:   base,
			ZeroCrossings: positions,
		})
	}
	if c.remaining() != 0 {
		return nil, &FormatError{Token: c.pos, Reason: fmt.Sprintf("%d unexpected trailing tokens", c.remaining())}
	}
	return d, nil
}
