// Package pcm converts interleaved PCM byte streams into 16-bit samples.
package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/xaionaro-go/audiosynch/pkg/audio/types"
)

// ToInt16 decodes mono PCM data of the given format into signed 16-bit samples.
//
// 16-bit formats are decoded bit-exactly; other formats are rescaled
// to the 16-bit range and clamped.
func ToInt16(format types.PCMFormat, data []byte) ([]int16, error) {
	sampleSize := int(format.Size())
	if sampleSize == 0 {
		return nil, fmt.Errorf("unsupported PCM format: %v", format)
	}
	if len(data)%sampleSize != 0 {
		return nil, fmt.Errorf("the data length (%d) is not a multiple of the sample size (%d)", len(data), sampleSize)
	}

	samples := make([]int16, len(data)/sampleSize)
	switch format {
	case types.PCMFormatS16LE:
		for i := range samples {
			samples[i] = int16(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case types.PCMFormatS16BE:
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(data[i*2:]))
		}
	default:
		for i := range samples {
			samples[i] = FromFloat64(toFloat64(format, data[i*sampleSize:]))
		}
	}
	return samples, nil
}

// FromFloat64 converts a sample in range [-1, 1] to int16, clamping
// values out of range.
func FromFloat64(v float64) int16 {
	v = math.Round(v * 32768)
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// toFloat64 converts one sample of format f (other than S16) to a float
// where full scale is 1.
func toFloat64(f types.PCMFormat, p []byte) float64 {
	switch f {
	case types.PCMFormatU8:
		return (float64(p[0]) - 128) / 128
	case types.PCMFormatS24LE:
		val := int32(uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16)
		if val&0x800000 != 0 {
			val |= -16777216
		}
		return float64(val) / 8388608
	case types.PCMFormatS24BE:
		val := int32(uint32(p[2]) | uint32(p[1])<<8 | uint32(p[0])<<16)
		if val&0x800000 != 0 {
			val |= -16777216
		}
		return float64(val) / 8388608
	case types.PCMFormatS32LE:
		return float64(int32(binary.LittleEndian.Uint32(p))) / 2147483648
	case types.PCMFormatS32BE:
		return float64(int32(binary.BigEndian.Uint32(p))) / 2147483648
	case types.PCMFormatS64LE:
		return float64(int64(binary.LittleEndian.Uint64(p))) / 9223372036854775808
	case types.PCMFormatS64BE:
		return float64(int64(binary.BigEndian.Uint64(p))) / 9223372036854775808
	case types.PCMFormatFloat32LE:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(p)))
	case types.PCMFormatFloat32BE:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(p)))
	case types.PCMFormatFloat64LE:
		return math.Float64frombits(binary.LittleEndian.Uint64(p))
	case types.PCMFormatFloat64BE:
		return math.Float64frombits(binary.BigEndian.Uint64(p))
	default:
		panic(fmt.Sprintf("unknown format: %v", f))
	}
}
