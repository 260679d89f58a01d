package casepage

import (
	"time"

	"github.com/eringen/casepage/views"
)

// PageMeta carries per-page metadata into the document <head>.
type PageMeta = views.PageMeta

// CaseStats is the stored view counter for one case.
type CaseStats struct {
	CaseID      string
	Views       int
	FirstViewed time.Time
	LastViewed  time.Time
}
