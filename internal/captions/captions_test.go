package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_captions/internal/engine"
)

type fakeFetcher struct {
	segs  []engine.CaptionSegment
	err   error
	calls int
	gotID string
}

func (f *fakeFetcher) Fetch(_ context.Context, videoID string) ([]engine.CaptionSegment, error) {
	f.calls++
	f.gotID = videoID
	return f.segs, f.err
}

func run(t *testing.T, args []string, f Fetcher) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, &stdout, &stderr, f)
	return code, stdout.String(), stderr.String()
}

func TestRunNoArgs(t *testing.T) {
	f := &fakeFetcher{}
	code, stdout, stderr := run(t, nil, f)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, 0, f.calls, "fetcher must not be called without an identifier")

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(stderr), &report))
	assert.Equal(t, map[string]any{"error": Usage}, report)
}

func TestRunEmptyIdentifier(t *testing.T) {
	f := &fakeFetcher{}
	code, stdout, _ := run(t, []string{""}, f)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, 0, f.calls)
}

func TestRunUpstreamError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("No captions")}
	code, stdout, stderr := run(t, []string{"abc123"}, f)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, 1, f.calls)
	assert.JSONEq(t, `{"error": "No captions"}`, stderr)
}

func TestRunThreeSegments(t *testing.T) {
	f := &fakeFetcher{segs: []engine.CaptionSegment{
		{Start: 0.0, Duration: 1.5, Text: "a"},
		{Start: 1.5, Duration: 2.0, Text: "b"},
		{Start: 3.5, Duration: 1.0, Text: "c"},
	}}
	code, stdout, stderr := run(t, []string{"abc123", "ignored"}, f)

	require.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "abc123", f.gotID)
	assert.JSONEq(t, `[
		{"start": 0.0, "dur": 1.5, "text": "a"},
		{"start": 1.5, "dur": 2.0, "text": "b"},
		{"start": 3.5, "dur": 1.0, "text": "c"}
	]`, stdout)
}

func TestRunOutputShapes(t *testing.T) {
	segs := []engine.CaptionSegment{
		{Start: 12.34, Duration: 0.01, Text: ""},
		{Start: 12.35, Duration: 7.125, Text: "<b> & \"quoted\""},
	}

	t.Run("success has no error key", func(t *testing.T) {
		code, stdout, _ := run(t, []string{"vid"}, &fakeFetcher{segs: segs})
		require.Equal(t, 0, code)

		var out []map[string]any
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		require.Len(t, out, len(segs))
		for i, obj := range out {
			assert.NotContains(t, obj, "error")
			assert.Len(t, obj, 3)
			assert.Equal(t, segs[i].Start, obj["start"])
			assert.Equal(t, segs[i].Duration, obj["dur"])
			assert.Equal(t, segs[i].Text, obj["text"])
		}
	})

	t.Run("failure has only error key", func(t *testing.T) {
		code, _, stderr := run(t, []string{"vid"}, &fakeFetcher{err: errors.New("boom")})
		require.Equal(t, 1, code)

		var out map[string]any
		require.NoError(t, json.Unmarshal([]byte(stderr), &out))
		assert.Equal(t, map[string]any{"error": "boom"}, out)
	})
}

func TestRunEmptyTrackPrintsEmptyArray(t *testing.T) {
	code, stdout, stderr := run(t, []string{"vid"}, &fakeFetcher{})
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "[]\n", stdout)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRunStdoutWriteFailure(t *testing.T) {
	var stderr bytes.Buffer
	f := &fakeFetcher{segs: []engine.CaptionSegment{{Start: 1, Duration: 1, Text: "x"}}}
	code := Run(context.Background(), []string{"vid"}, failWriter{}, &stderr, f)
	assert.Equal(t, 1, code)
}

func TestFetchUsage(t *testing.T) {
	f := &fakeFetcher{}
	_, err := Fetch(context.Background(), f, "")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Equal(t, 0, f.calls)
}
