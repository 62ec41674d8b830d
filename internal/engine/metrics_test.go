package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackOperationPassesError(t *testing.T) {
	want := errors.New("upstream")
	err := TrackOperation(context.Background(), "op", func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)
}

func TestFormatMetrics(t *testing.T) {
	before := GetMetrics()["caption_fallbacks"]
	IncrCaptionFallback()
	assert.Equal(t, before+1, GetMetrics()["caption_fallbacks"])

	out := FormatMetrics()
	for _, k := range []string{"youtube_transcript_requests", "caption_track_fetches", "caption_fallbacks", "caption_errors"} {
		assert.True(t, strings.Contains(out, k+" "), "missing %s in %q", k, out)
	}
}
