package casepage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// CaseIDParam is the route parameter holding the case identifier.
const CaseIDParam = "caseId"

// ErrMissingParam is returned when a route did not supply a parameter.
var ErrMissingParam = errors.New("route parameter missing")

// Params resolves the path parameters of a matched route. Resolve may block;
// it must return ctx.Err() once ctx is done.
type Params interface {
	Resolve(ctx context.Context) (map[string]string, error)
}

// ParamsFunc adapts a function to Params.
type ParamsFunc func(ctx context.Context) (map[string]string, error)

// Resolve calls f.
func (f ParamsFunc) Resolve(ctx context.Context) (map[string]string, error) {
	return f(ctx)
}

// ResolveCaseID waits for p to resolve and returns the case identifier
// verbatim. Any string is accepted, including the empty string.
func ResolveCaseID(ctx context.Context, p Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	params, err := p.Resolve(ctx)
	if err != nil {
		return "", err
	}
	id, ok := params[CaseIDParam]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, CaseIDParam)
	}
	return id, nil
}

// echoParams exposes the parameters Echo matched for the current request.
type echoParams struct {
	c echo.Context
}

// Resolve decodes the matched values. Echo only leaves them escaped when
// the request carried a raw path that differs from the decoded one.
func (p echoParams) Resolve(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	escaped := p.c.Request().URL.RawPath != ""
	names := p.c.ParamNames()
	values := p.c.ParamValues()
	out := make(map[string]string, len(names))
	for i, name := range names {
		if i >= len(values) {
			break
		}
		v := values[i]
		if escaped {
			dec, err := url.PathUnescape(v)
			if err != nil {
				return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed path parameter").SetInternal(err)
			}
			v = dec
		}
		out[name] = v
	}
	return out, nil
}
