package sources

// YouTube caption retrieval is split across files by responsibility:
//   youtube_innertube.go : Innertube/watch-page types, endpoints, and low-level HTTP primitives
//   youtube_timedtext.go : timedtext XML parsing into timed caption segments
//   youtube_transcript.go: track discovery (watch page, ANDROID player fallback) and selection
//   fetcher.go           : adapter exposing the fetch as a captions.Fetcher

import "regexp"

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)

// NormalizeVideoID pulls the 11-char video ID out of a YouTube URL.
// Anything that is not a recognised URL is returned unchanged.
func NormalizeVideoID(s string) string {
	if m := videoIDRE.FindStringSubmatch(s); len(m) >= 2 {
		return m[1]
	}
	return s
}
