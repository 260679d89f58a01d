package casepage

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/casepage/views"
)

func (a *App) handleLanding(c echo.Context) error {
	top, err := a.Cache.ListTopCases()
	if err != nil {
		return err
	}
	data := views.LandingData{
		SiteName:    a.Config.Name,
		Description: a.Config.Description,
		Recent:      recentLinks(RecentCases(c)),
		Top:         topLinks(top),
	}
	meta := PageMeta{URL: BuildURL(a.Config.URL)}
	return a.renderPage(c, http.StatusOK, meta, a.Views.LandingLayout(a.Views.Landing(data)))
}

func (a *App) handleCase(c echo.Context) error {
	caseID, err := ResolveCaseID(c.Request().Context(), echoParams{c})
	if err != nil {
		if errors.Is(err, ErrMissingParam) {
			return echo.NewHTTPError(http.StatusNotFound).SetInternal(err)
		}
		return err
	}

	a.trackView(c, caseID)

	meta := PageMeta{
		Title: "Case " + caseID + " | " + a.Config.Name,
		URL:   BuildURL(a.Config.URL, "Q", caseID),
	}
	return a.renderPage(c, http.StatusOK, meta, a.Views.CaseLayout(a.Views.CaseDetail(caseID)))
}

// trackView records the visit in the session and the view counter. Failures
// are logged; the page renders regardless.
func (a *App) trackView(c echo.Context, caseID string) {
	if err := rememberCase(c, caseID); err != nil {
		c.Logger().Warnf("remember case %q: %v", caseID, err)
	}
	if IsBot(c.Request().UserAgent()) {
		return
	}
	if !a.viewLimiter.Allow(viewKey(c.RealIP(), caseID)) {
		return
	}
	if err := a.Store.RecordView(caseID, time.Now()); err != nil {
		c.Logger().Errorf("record view of %q: %v", caseID, err)
	}
}

func handleOpenCase(c echo.Context) error {
	caseID := NormalizeCaseID(c.QueryParam("case_id"))
	if caseID == "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return c.Redirect(http.StatusSeeOther, CaseURL(caseID))
}

func handleCaseIndex(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/")
}

func handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n")
}

func handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, context.Canceled) {
		c.Logger().Debugf("request canceled: %s", c.Request().URL.Path)
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderPage(c, http.StatusNotFound, PageMeta{Title: "Not found | " + a.Config.Name}, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = a.renderPage(c, code, PageMeta{Title: "Error | " + a.Config.Name}, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

func recentLinks(ids []string) []views.CaseLink {
	links := make([]views.CaseLink, 0, len(ids))
	for _, id := range ids {
		links = append(links, views.CaseLink{ID: id, URL: CaseURL(id)})
	}
	return links
}

func topLinks(cases []CaseStats) []views.CaseLink {
	links := make([]views.CaseLink, 0, len(cases))
	for _, cs := range cases {
		links = append(links, views.CaseLink{ID: cs.CaseID, URL: CaseURL(cs.CaseID), Views: cs.Views})
	}
	return links
}
