package casepage

import "embed"

// EmbeddedAssets contains static assets shipped with casepage: casepage.css
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
