package views

// PageMeta carries per-page SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical
}

// CaseLink is one entry in a landing page case list.
type CaseLink struct {
	ID    string
	URL   string
	Views int // 0 hides the counter
}

// LandingData is everything the landing page shows.
type LandingData struct {
	SiteName    string
	Description string
	Recent      []CaseLink
	Top         []CaseLink
}
