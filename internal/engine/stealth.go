package engine

import (
	stealth "github.com/anatolykoptev/go-stealth"
)

// ChromeHeaders re-exports the stealth browser header set (random Chrome user-agent included).
func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
