package views

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return buf.String()
}

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return doc
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if got := find(c, match); got != nil {
			return got
		}
	}
	return nil
}

func isTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

var children = []templ.Component{
	Text("hello"),
	Text(""),
	nil,
	Text("<b>not bold</b> & more"),
	templ.Raw(`<section id="nested"><p>one</p><p>two</p></section>`),
	CaseDetail("7"),
}

func TestLayoutsWrapChildUnmodified(t *testing.T) {
	layouts := []struct {
		name   string
		layout func(templ.Component) templ.Component
		open   string
		close  string
	}{
		{"landing", LandingLayout, `<main><div class="` + LandingGridClass + `">`, `</div></main>`},
		{"case", CaseLayout, `<div class="` + CaseFlexClass + `">`, `</div>`},
	}
	for _, l := range layouts {
		for i, child := range children {
			want := ""
			if child != nil {
				want = renderString(t, child)
			}
			got := renderString(t, l.layout(child))
			if !strings.HasPrefix(got, l.open) || !strings.HasSuffix(got, l.close) {
				t.Fatalf("%s layout #%d: unexpected container %q", l.name, i, got)
			}
			inner := strings.TrimSuffix(strings.TrimPrefix(got, l.open), l.close)
			if inner != want {
				t.Errorf("%s layout #%d: inner = %q, want %q", l.name, i, inner, want)
			}
		}
	}
}

func TestLandingLayoutWrapsTextNode(t *testing.T) {
	doc := parse(t, renderString(t, LandingLayout(Text("hello"))))
	grid := find(doc, func(n *html.Node) bool {
		return isTag("div")(n) && attrOf(n, "class") == LandingGridClass
	})
	if grid == nil {
		t.Fatal("grid container not found")
	}
	if grid.FirstChild == nil || grid.FirstChild != grid.LastChild {
		t.Fatal("grid container should have exactly one child")
	}
	if grid.FirstChild.Type != html.TextNode || grid.FirstChild.Data != "hello" {
		t.Errorf("child = %q, want text node %q", grid.FirstChild.Data, "hello")
	}
	if grid.Parent == nil || grid.Parent.Data != "main" {
		t.Error("grid container should sit inside <main>")
	}
}

func TestCaseLayoutEmptyChild(t *testing.T) {
	got := renderString(t, CaseLayout(nil))
	want := `<div class="flex h-screen md:pt-5"></div>`
	if got != want {
		t.Errorf("CaseLayout(nil) = %q, want %q", got, want)
	}
}

func TestCaseDetailText(t *testing.T) {
	ids := []string{
		"42",
		"",
		"a&b",
		"<script>alert(1)</script>",
		`"quoted" 'single'`,
		"  spaced  ",
		"ünïcødé/with/slashes",
		"100%",
	}
	for _, id := range ids {
		doc := parse(t, renderString(t, CaseDetail(id)))
		h1 := find(doc, isTag("h1"))
		if h1 == nil {
			t.Fatalf("CaseDetail(%q): no h1", id)
		}
		if got, want := textOf(h1), "Case ID is "+id; got != want {
			t.Errorf("CaseDetail(%q) text = %q, want %q", id, got, want)
		}
		if find(doc, isTag("script")) != nil {
			t.Errorf("CaseDetail(%q) produced a script element", id)
		}
	}
}

func TestCaseDetailMarkup(t *testing.T) {
	got := renderString(t, CaseDetail("42"))
	want := `<main class="flex flex-col m-auto items-center sm:items-start"><h1>Case ID is 42</h1></main>`
	if got != want {
		t.Errorf("CaseDetail(42) = %q, want %q", got, want)
	}
}

func TestRenderingIsIdempotent(t *testing.T) {
	components := map[string]templ.Component{
		"landing": LandingLayout(Text("hello")),
		"case":    CaseLayout(CaseDetail("42")),
		"detail":  CaseDetail("x"),
		"page": Landing(LandingData{
			SiteName: "Cases",
			Recent:   []CaseLink{{ID: "1", URL: "/Q/1"}},
			Top:      []CaseLink{{ID: "2", URL: "/Q/2", Views: 3}},
		}),
	}
	for name, c := range components {
		first := renderString(t, c)
		second := renderString(t, c)
		if first != second {
			t.Errorf("%s: second render differs:\n%s\n%s", name, first, second)
		}
	}
}

type failing struct{ err error }

func (f failing) Render(ctx context.Context, w io.Writer) error { return f.err }

func TestLayoutsPropagateChildErrors(t *testing.T) {
	boom := errors.New("boom")
	for name, c := range map[string]templ.Component{
		"landing": LandingLayout(failing{boom}),
		"case":    CaseLayout(failing{boom}),
	} {
		if err := c.Render(context.Background(), io.Discard); !errors.Is(err, boom) {
			t.Errorf("%s: err = %v, want %v", name, err, boom)
		}
	}
}

func TestDocument(t *testing.T) {
	out := renderString(t, Document(PageMeta{
		Title:       "Case <1>",
		Description: "desc",
		URL:         "http://example.com/Q/1",
	}, Text("body")))
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %q", out)
	}
	doc := parse(t, out)
	if title := find(doc, isTag("title")); title == nil || textOf(title) != "Case <1>" {
		t.Errorf("title not rendered correctly: %q", out)
	}
	link := find(doc, func(n *html.Node) bool {
		return isTag("link")(n) && attrOf(n, "rel") == "canonical"
	})
	if link == nil || attrOf(link, "href") != "http://example.com/Q/1" {
		t.Errorf("canonical link missing: %q", out)
	}
	if body := find(doc, isTag("body")); body == nil || textOf(body) != "body" {
		t.Errorf("body not rendered: %q", out)
	}
}

func TestDocumentOmitsEmptyMeta(t *testing.T) {
	out := renderString(t, Document(PageMeta{Title: "x"}, nil))
	if strings.Contains(out, `name="description"`) || strings.Contains(out, `rel="canonical"`) {
		t.Errorf("empty meta should be omitted: %q", out)
	}
}

func TestLandingLists(t *testing.T) {
	out := renderString(t, Landing(LandingData{
		SiteName: "Cases",
		Recent:   []CaseLink{{ID: "a b", URL: "/Q/a%20b"}},
		Top:      []CaseLink{{ID: "1", URL: "/Q/1", Views: 1}, {ID: "2", URL: "/Q/2", Views: 5}},
	}))
	doc := parse(t, out)
	recent := find(doc, func(n *html.Node) bool { return attrOf(n, "id") == "recent-cases" })
	if recent == nil {
		t.Fatal("recent list missing")
	}
	if a := find(recent, isTag("a")); a == nil || attrOf(a, "href") != "/Q/a%20b" || textOf(a) != "a b" {
		t.Errorf("recent link wrong: %q", out)
	}
	top := find(doc, func(n *html.Node) bool { return attrOf(n, "id") == "top-cases" })
	if top == nil {
		t.Fatal("top list missing")
	}
	if txt := textOf(top); !strings.Contains(txt, "(1 view)") || !strings.Contains(txt, "(5 views)") {
		t.Errorf("view counts wrong: %q", txt)
	}
	form := find(doc, isTag("form"))
	if form == nil || attrOf(form, "action") != "/open" || attrOf(form, "method") != "get" {
		t.Errorf("open form wrong: %q", out)
	}
}

func TestLandingHidesEmptyLists(t *testing.T) {
	out := renderString(t, Landing(LandingData{SiteName: "Cases"}))
	if strings.Contains(out, "recent-cases") || strings.Contains(out, "top-cases") {
		t.Errorf("empty lists should be hidden: %q", out)
	}
}
