package sources

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_captions/internal/engine"
)

// --- Timedtext XML types ---

// ytTimedText accepts both timedtext layouts:
// srv1 <transcript><text start dur> (seconds) and
// format 3 <timedtext><body><p t d> (milliseconds).
type ytTimedText struct {
	Lines []ytLine `xml:"text"`
	Body  struct {
		Paras []ytPara `xml:"p"`
	} `xml:"body"`
}

type ytLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

type ytPara struct {
	T     string `xml:"t,attr"`
	D     string `xml:"d,attr"`
	Inner string `xml:",innerxml"`
}

var errNoSegments = errors.New("no caption segments")

// parseTimedText converts a timedtext document into ordered caption segments.
// Elements without character data are skipped; a missing duration is zero.
func parseTimedText(data []byte) ([]engine.CaptionSegment, error) {
	var tt ytTimedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	segs := make([]engine.CaptionSegment, 0, len(tt.Lines)+len(tt.Body.Paras))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		start, err := parseSeconds(line.Start, 1, true)
		if err != nil {
			return nil, fmt.Errorf("text start: %w", err)
		}
		dur, err := parseSeconds(line.Dur, 1, false)
		if err != nil {
			return nil, fmt.Errorf("text dur: %w", err)
		}
		segs = append(segs, engine.CaptionSegment{
			Start:    start,
			Duration: dur,
			Text:     engine.CleanCaptionText(line.Text),
		})
	}
	for _, p := range tt.Body.Paras {
		if strings.TrimSpace(p.Inner) == "" {
			continue
		}
		start, err := parseSeconds(p.T, 1000, true)
		if err != nil {
			return nil, fmt.Errorf("p t: %w", err)
		}
		dur, err := parseSeconds(p.D, 1000, false)
		if err != nil {
			return nil, fmt.Errorf("p d: %w", err)
		}
		segs = append(segs, engine.CaptionSegment{
			Start:    start,
			Duration: dur,
			Text:     engine.CleanCaptionText(p.Inner),
		})
	}
	return segs, nil
}

// parseSeconds parses an attribute value and divides it by unit.
// An empty value is an error when required, zero otherwise.
func parseSeconds(v string, unit float64, required bool) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		if required {
			return 0, errors.New("missing attribute")
		}
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q", v)
	}
	return f / unit, nil
}

// fetchTimedText fetches and parses a YouTube timedtext caption URL.
func fetchTimedText(ctx context.Context, baseURL string) ([]engine.CaptionSegment, error) {
	engine.IncrCaptionTrackFetch()

	trackURL, err := resolveTrackURL(baseURL)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.UserAgentBot)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := engine.Cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch timedtext: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, engine.Cfg.MaxCaptionBytes))
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, errors.New("empty timedtext response")
	}

	segs, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, errNoSegments
	}
	return segs, nil
}
