// Package views holds the default templ components for casepage: the
// document shell, the two layouts, and the pages rendered inside them.
//
// Edit the .templ files, then run `go generate ./views`.
package views

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.960 generate

import "strconv"

// Class strings used by the components in layout.templ and pages.templ.
const (
	LandingGridClass = "grid grid-row-2 md:grid-row-2 relative items-center justify-items-center min-h-screen p-8 pb-20 gap-16"
	CaseFlexClass    = "flex h-screen md:pt-5"
	CaseDetailClass  = "flex flex-col m-auto items-center sm:items-start"
)

// StylesheetPath is where the embedded stylesheet is served.
const StylesheetPath = "/public/casepage.css"

func viewsLabel(n int) string {
	if n == 1 {
		return "1 view"
	}
	return strconv.Itoa(n) + " views"
}
