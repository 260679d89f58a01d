package casepage

import (
	"context"
	"errors"
	"testing"
)

func staticParams(m map[string]string) Params {
	return ParamsFunc(func(ctx context.Context) (map[string]string, error) {
		return m, nil
	})
}

func TestResolveCaseID(t *testing.T) {
	for _, id := range []string{"42", "", "a b/c", "<x>"} {
		got, err := ResolveCaseID(context.Background(), staticParams(map[string]string{CaseIDParam: id}))
		if err != nil {
			t.Fatalf("ResolveCaseID(%q) failed: %v", id, err)
		}
		if got != id {
			t.Errorf("ResolveCaseID = %q, want %q", got, id)
		}
	}
}

func TestResolveCaseIDWaitsForParams(t *testing.T) {
	ready := make(chan map[string]string, 1)
	p := ParamsFunc(func(ctx context.Context) (map[string]string, error) {
		select {
		case m := <-ready:
			return m, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	go func() { ready <- map[string]string{CaseIDParam: "late"} }()

	got, err := ResolveCaseID(context.Background(), p)
	if err != nil {
		t.Fatalf("ResolveCaseID failed: %v", err)
	}
	if got != "late" {
		t.Errorf("ResolveCaseID = %q, want %q", got, "late")
	}
}

func TestResolveCaseIDMissing(t *testing.T) {
	_, err := ResolveCaseID(context.Background(), staticParams(map[string]string{"other": "1"}))
	if !errors.Is(err, ErrMissingParam) {
		t.Errorf("err = %v, want ErrMissingParam", err)
	}
}

func TestResolveCaseIDPropagatesErrors(t *testing.T) {
	boom := errors.New("resolver failed")
	p := ParamsFunc(func(ctx context.Context) (map[string]string, error) {
		return nil, boom
	})
	if _, err := ResolveCaseID(context.Background(), p); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestResolveCaseIDCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	p := ParamsFunc(func(ctx context.Context) (map[string]string, error) {
		called = true
		return map[string]string{CaseIDParam: "1"}, nil
	})
	if _, err := ResolveCaseID(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if called {
		t.Error("resolver should not run for a canceled request")
	}
}
