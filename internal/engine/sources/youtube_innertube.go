package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/engine"
)

// YouTube Innertube API: low-level constants, types, and HTTP primitives.
// Higher-level logic lives in youtube_transcript.go.

const (
	ytPlayerPath     = "/youtubei/v1/player"
	ytWatchPath      = "/watch"
	ytAndroidVersion = "20.10.38"
	ytAndroidUA      = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"

	maxWatchPageBytes = 6 * 1024 * 1024
	maxPlayerBytes    = 3 * 1024 * 1024
)

// --- ANDROID client types (/player endpoint) ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

// innertubePlayerResp is shared by the /player endpoint and ytInitialPlayerResponse.
type innertubePlayerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// tracks returns the caption tracks of a player response, or nil.
func (r *innertubePlayerResp) tracks() []captionTrack {
	if r.Captions == nil {
		return nil
	}
	return r.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
}

// unplayableReason returns the playability reason when the video is not playable.
func (r *innertubePlayerResp) unplayableReason() string {
	if r.PlayabilityStatus == nil || r.PlayabilityStatus.Status == "OK" {
		return ""
	}
	return r.PlayabilityStatus.Reason
}

// ytEndpoint joins a path onto the configured YouTube origin.
func ytEndpoint(path string) string {
	return strings.TrimRight(engine.Cfg.YouTubeBaseURL, "/") + path
}

// resolveTrackURL makes a caption baseUrl absolute and asks for the srv1 layout.
func resolveTrackURL(baseURL string) (string, error) {
	base, err := url.Parse(ytEndpoint("/"))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(strings.Replace(baseURL, "&fmt=srv3", "", 1))
	if err != nil {
		return "", fmt.Errorf("parse track url: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

// postInnerTubeAndroid POSTs a /player request with ANDROID client headers.
func postInnerTubeAndroid(ctx context.Context, videoID string) (*innertubePlayerResp, error) {
	reqBody, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytEndpoint(ytPlayerPath)+"?prettyPrint=false", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := engine.Cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}

	var playerResp innertubePlayerResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPlayerBytes)).Decode(&playerResp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return &playerResp, nil
}

// getWatchPage GETs the watch page HTML with browser-like headers.
func getWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	watchURL := ytEndpoint(ytWatchPath) + "?v=" + url.QueryEscape(videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range engine.ChromeHeaders() {
		// net/http only decompresses transparently when it sets Accept-Encoding itself.
		if strings.EqualFold(k, "accept-encoding") {
			continue
		}
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := engine.Cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
}

// extractJSON returns the balanced JSON object at the start of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
