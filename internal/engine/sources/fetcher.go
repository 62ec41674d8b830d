package sources

import (
	"context"

	"github.com/anatolykoptev/go_captions/internal/engine"
)

// Fetcher retrieves YouTube captions for one video.
// Empty Langs means engine.Cfg.CaptionLangs.
type Fetcher struct {
	Langs []string
}

// Fetch implements captions.Fetcher.
func (f Fetcher) Fetch(ctx context.Context, videoID string) ([]engine.CaptionSegment, error) {
	langs := f.Langs
	if len(langs) == 0 {
		langs = engine.Cfg.CaptionLangs
	}
	return FetchYouTubeCaptions(ctx, NormalizeVideoID(videoID), langs)
}
