// go_captions: fetch YouTube captions for one video and print them as JSON.
//
// Usage: fetch-captions <video_id>
//
// On success a JSON array of {start, dur, text} goes to stdout and the exit code is 0.
// On any failure {"error": "..."} goes to stderr and the exit code is 1.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_captions/internal/captions"
	"github.com/anatolykoptev/go_captions/internal/engine"
	"github.com/anatolykoptev/go_captions/internal/engine/sources"
)

func main() {
	initLogger(env.Str("LOG_LEVEL", ""))
	initEngine()

	code := captions.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, sources.Fetcher{})
	slog.Debug("metrics", slog.String("snapshot", engine.FormatMetrics()))
	os.Exit(code)
}

// initLogger installs the default slog logger. stderr carries the error report,
// so logs are discarded unless a level is requested explicitly.
func initLogger(level string) {
	if level == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func initEngine() {
	c := engine.Config{
		YouTubeBaseURL:  env.Str("YT_BASE_URL", "https://www.youtube.com"),
		CaptionLangs:    env.List("YT_CAPTION_LANGS", "en"),
		FetchTimeout:    env.Duration("FETCH_TIMEOUT", 30*time.Second),
		MaxCaptionBytes: int64(env.Int("MAX_CAPTION_BYTES", 2*1024*1024)),
		HTTPClient: &http.Client{
			Timeout: env.Duration("HTTP_TIMEOUT", 15*time.Second),
		},
	}
	engine.Init(c)
	slog.Debug("engine initialized",
		slog.String("base_url", c.YouTubeBaseURL),
		slog.Any("langs", c.CaptionLangs),
	)
}
