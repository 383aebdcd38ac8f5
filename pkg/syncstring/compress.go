package syncstring

import (
	"bytes"
	"compress/zlib"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/facebookincubator/go-belt/tool/logger"
)

var urlSafeToStd = strings.NewReplacer("-", "+", "_", "/")

// Decompress decodes base64 (both URL-safe and standard alphabets,
// padding is optional) and then inflates the zlib stream.
//
// An empty input yields an empty output.
func Decompress(encoded []byte) (string, error) {
	s := strings.TrimSpace(string(encoded))
	if s == "" {
		return "", nil
	}
	s = strings.TrimRight(urlSafeToStd.Replace(s), "=")

	compressed, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return "", &DecodeError{Input: encoded, Err: fmt.Errorf("base64: %w", err)}
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return "", &DecodeError{Input: encoded, Err: fmt.Errorf("zlib: %w", err)}
	}
	defer r.Close()

	text, err := io.ReadAll(r)
	if err != nil {
		return "", &DecodeError{Input: encoded, Err: fmt.Errorf("zlib: %w", err)}
	}
	return string(text), nil
}

// Compress is the inverse of Decompress; it produces padded URL-safe base64.
func Compress(text string) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write([]byte(text)); err != nil {
		return nil, fmt.Errorf("unable to compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("unable to finalize the zlib stream: %w", err)
	}

	result := make([]byte, base64.URLEncoding.EncodedLen(buf.Len()))
	base64.URLEncoding.Encode(result, buf.Bytes())
	return result, nil
}

// Parse decompresses and decodes a sync-string as it is stored on disk.
//
// If decompression fails and allowPlainText is set, input consisting only
// of decimal integers separated by whitespace is decoded as-is.
func Parse(
	ctx context.Context,
	raw []byte,
	allowPlainText bool,
) (*SyncDescriptor, error) {
	text, err := Decompress(raw)
	if err != nil {
		var decodeErr *DecodeError
		if !errors.As(err, &decodeErr) || !allowPlainText || !looksPlain(raw) {
			logger.Errorf(ctx, "%v", err)
			return nil, err
		}
		logger.Debugf(ctx, "the sync-string is not compressed, decoding it as plain text")
		text = string(raw)
	}
	logger.Tracef(ctx, "decompressed sync-string: '%s'", text)

	d, err := Decode(text)
	if err != nil {
		return nil, fmt.Errorf("unable to decode the sync-string: %w", err)
	}
	logger.Tracef(ctx, "sync descriptor: %s", spew.Sdump(d))
	return d, nil
}

func looksPlain(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return false
	}
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
		case ch == '-', ch == ' ', ch == '\t', ch == '\r', ch == '\n':
		default:
			return false
		}
	}
	return true
}
