// Package captions implements the fetch-captions command: one video identifier in,
// one JSON document out.
package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/anatolykoptev/go_captions/internal/engine"
)

// Usage is the message reported when no video identifier is given.
const Usage = "Usage: fetch-captions <video_id>"

// ErrUsage is returned by Fetch when the identifier is missing.
var ErrUsage = errors.New(Usage)

// Fetcher retrieves the caption track of one video, in chronological order.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) ([]engine.CaptionSegment, error)
}

// Fetch calls f once for videoID and returns the segments ready to print.
// An empty videoID fails with ErrUsage without calling f.
func Fetch(ctx context.Context, f Fetcher, videoID string) ([]engine.CaptionSegment, error) {
	if videoID == "" {
		return nil, ErrUsage
	}
	var segs []engine.CaptionSegment
	err := engine.TrackOperation(ctx, "fetch_captions", func(ctx context.Context) error {
		var err error
		segs, err = f.Fetch(ctx, videoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if segs == nil {
		segs = []engine.CaptionSegment{}
	}
	return segs, nil
}

// Run executes the command for the positional args and returns the exit code.
// On success the segment list goes to stdout; on failure an ErrorReport goes to stderr
// and stdout is left untouched.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, f Fetcher) int {
	var videoID string
	if len(args) > 0 {
		videoID = args[0]
	}

	segs, err := Fetch(ctx, f, videoID)
	if err == nil {
		var out []byte
		if out, err = encodeJSON(segs); err == nil {
			if _, werr := stdout.Write(out); werr != nil {
				slog.Error("write stdout", slog.Any("error", werr))
				return 1
			}
			slog.Debug("captions written", slog.String("id", videoID), slog.Int("segments", len(segs)))
			return 0
		}
		err = fmt.Errorf("encode captions: %w", err)
	}

	slog.Debug("fetch failed", slog.String("id", videoID), slog.Any("error", err))
	writeError(stderr, err)
	return 1
}

// writeError writes the ErrorReport for err to w.
func writeError(w io.Writer, err error) {
	out, mErr := encodeJSON(engine.ErrorReport{Error: err.Error()})
	if mErr != nil {
		return
	}
	if _, werr := w.Write(out); werr != nil {
		slog.Error("write stderr", slog.Any("error", werr))
	}
}

// encodeJSON renders v as a single JSON line without HTML escaping.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
