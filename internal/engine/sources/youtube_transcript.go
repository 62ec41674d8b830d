package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/engine"
)

// YouTube caption fetching.
// Primary:  scrape watch page ytInitialPlayerResponse → caption track → timedtext XML
// Fallback: ANDROID Innertube /player → captionTracks → timedtext XML

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences.
// Skips tracks that require PoToken: those only work in a browser.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		if len(tracks) == 0 {
			return captionTrack{}, false
		}
		return tracks[0], false
	}
	// 1. Manual track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	// 2. Auto-generated track in preferred language
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	// 3. Any English track
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// selectTrack validates a player response and picks its best caption track.
func selectTrack(playerResp *innertubePlayerResp, langs []string) (captionTrack, error) {
	tracks := playerResp.tracks()
	if len(tracks) == 0 {
		if reason := playerResp.unplayableReason(); reason != "" {
			return captionTrack{}, fmt.Errorf("captions unavailable: %s", reason)
		}
		return captionTrack{}, errors.New("no captions in player response")
	}
	track, ok := pickBestTrack(tracks, langs)
	if !ok {
		return captionTrack{}, errors.New("all caption tracks require PoToken")
	}
	return track, nil
}

// parseWatchPage extracts ytInitialPlayerResponse from watch page HTML.
func parseWatchPage(body []byte) (*innertubePlayerResp, error) {
	idx := bytes.Index(body, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(body[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return nil, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	var playerResp innertubePlayerResp
	if err := json.Unmarshal(jsonData, &playerResp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return &playerResp, nil
}

// fetchCaptionsViaPageScrape scrapes the YouTube watch page HTML and extracts
// the caption track XML URL from ytInitialPlayerResponse. Works from any IP.
func fetchCaptionsViaPageScrape(ctx context.Context, videoID string, langs []string) ([]engine.CaptionSegment, error) {
	body, err := getWatchPage(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	playerResp, err := parseWatchPage(body)
	if err != nil {
		return nil, err
	}
	track, err := selectTrack(playerResp, langs)
	if err != nil {
		return nil, err
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// fetchCaptionsViaPlayer uses the ANDROID Innertube /player endpoint.
// Works from non-blocked (residential/cloud) IP addresses.
func fetchCaptionsViaPlayer(ctx context.Context, videoID string, langs []string) ([]engine.CaptionSegment, error) {
	playerResp, err := postInnerTubeAndroid(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	track, err := selectTrack(playerResp, langs)
	if err != nil {
		return nil, err
	}
	return fetchTimedText(ctx, track.BaseURL)
}

// FetchYouTubeCaptions fetches the timed caption segments for a YouTube video.
// The whole fetch is bounded by engine.Cfg.FetchTimeout.
func FetchYouTubeCaptions(ctx context.Context, videoID string, langs []string) ([]engine.CaptionSegment, error) {
	engine.IncrYouTubeTranscript()

	ctx, cancel := context.WithTimeout(ctx, engine.Cfg.FetchTimeout)
	defer cancel()

	segs, err := fetchCaptionsViaPageScrape(ctx, videoID, langs)
	if err == nil {
		return segs, nil
	}
	if ctx.Err() != nil {
		engine.IncrCaptionError()
		return nil, err
	}
	slog.Warn("youtube: page scrape failed, trying player",
		slog.String("id", videoID), slog.Any("err", err))
	engine.IncrCaptionFallback()

	segs, err = fetchCaptionsViaPlayer(ctx, videoID, langs)
	if err != nil {
		engine.IncrCaptionError()
		return nil, err
	}
	return segs, nil
}
