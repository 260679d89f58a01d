package casepage

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// BuildURL appends escaped path segments to a base URL. Segments are not
// cleaned, so "a/b" or ".." stay a single segment.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	p := strings.TrimRight(u.EscapedPath(), "/")
	for _, seg := range pathSegments {
		p += "/" + url.PathEscape(seg)
	}
	if p == "" {
		p = "/"
	}
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return base
	}
	u.Path = unescaped
	u.RawPath = p
	return u.String()
}

// CaseURL returns the site-relative path of a case page.
func CaseURL(caseID string) string {
	return "/Q/" + url.PathEscape(caseID)
}

// NormalizeCaseID trims surrounding whitespace from user input.
func NormalizeCaseID(s string) string {
	return strings.TrimSpace(s)
}

// IsBot checks if the User-Agent is likely a bot or crawler.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	bots := []string{
		"bot", "crawler", "spider", "crawl", "slurp", "scrape",
		"facebookexternalhit", "headlesschrome", "curl/", "wget/",
	}
	for _, bot := range bots {
		if strings.Contains(ua, bot) {
			return true
		}
	}
	return false
}

// pushRecent puts id at the front of ids, dropping earlier copies and
// trimming to max entries.
func pushRecent(ids []string, id string, max int) []string {
	out := make([]string, 0, max)
	out = append(out, id)
	for _, v := range ids {
		if len(out) >= max {
			break
		}
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// viewKey identifies one visitor looking at one case. The ID is hashed so
// arbitrarily long IDs cost the limiter a fixed-size key.
func viewKey(ip, caseID string) string {
	h := sha256.Sum256([]byte(caseID))
	return ip + "|" + hex.EncodeToString(h[:])[:16]
}
