package observability

import (
	"context"
	"testing"
	"time"
)

type testHTTPHooks struct{ NoopHTTPHooks }
type testValidationHooks struct{ NoopValidationHooks }

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "pypi.python.org", "/pypi/scipy/json")
	h.OnResponse(ctx, "GET", "pypi.python.org", "/pypi/scipy/json", 200, time.Second)
	h.OnError(ctx, "GET", "pypi.python.org", "/pypi/scipy/json", nil)

	NoopValidationHooks{}.OnRejected(ctx, "repo.anaconda.com", "/pkgs/main/noarch/repodata.json", 3)
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}
	if _, ok := Validation().(NoopValidationHooks); !ok {
		t.Error("Validation() should return NoopValidationHooks by default")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}
	customValidation := &testValidationHooks{}
	SetValidationHooks(customValidation)
	if Validation() != customValidation {
		t.Error("SetValidationHooks should set custom hooks")
	}

	SetHTTPHooks(nil)
	SetValidationHooks(nil)
	if HTTP() != customHTTP || Validation() != customValidation {
		t.Error("setting nil hooks should be ignored")
	}

	Reset()
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}
