package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	YouTubeTranscriptRequests atomic.Int64
	CaptionTrackFetches       atomic.Int64
	CaptionFallbacks          atomic.Int64
	CaptionErrors             atomic.Int64
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"youtube_transcript_requests": metrics.YouTubeTranscriptRequests.Load(),
		"caption_track_fetches":       metrics.CaptionTrackFetches.Load(),
		"caption_fallbacks":           metrics.CaptionFallbacks.Load(),
		"caption_errors":              metrics.CaptionErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"youtube_transcript_requests",
		"caption_track_fetches",
		"caption_fallbacks",
		"caption_errors",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for sources/ sub-package.
func IncrYouTubeTranscript() { metrics.YouTubeTranscriptRequests.Add(1) }
func IncrCaptionTrackFetch() { metrics.CaptionTrackFetches.Add(1) }
func IncrCaptionFallback()   { metrics.CaptionFallbacks.Add(1) }
func IncrCaptionError()      { metrics.CaptionErrors.Add(1) }

// slowThreshold is the duration after which TrackOperation logs a warning.
var slowThreshold = 5 * time.Second

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > slowThreshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
