package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeConfig, http.StatusInternalServerError},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError}, // default branch
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestConstructorsAndCodeOf(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	if CodeOf(Conflictf("period %s is not quantifiable", "p1")) != ErrorCodeConflict {
		t.Fatalf("Conflictf code mismatch")
	}
	if CodeOf(Validationf("score %d not allowed", 666)) != ErrorCodeValidation {
		t.Fatalf("Validationf code mismatch")
	}
	if CodeOf(Configf("missing percentage")) != ErrorCodeConfig {
		t.Fatalf("Configf code mismatch")
	}
	if CodeOf(NotFoundf("praise %s", "x")) != ErrorCodeNotFound {
		t.Fatalf("NotFoundf code mismatch")
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown {
		t.Fatalf("foreign error should map to Unknown")
	}
}

func TestWrapKeepsCauseAndCode(t *testing.T) {
	src := stderrs.New("root cause")
	err := Wrap(src, ErrorCodeDB, "query failed")
	if got := stderrs.Unwrap(err); got == nil || got.Error() != "root cause" {
		t.Fatalf("Wrap lost the original error")
	}
	if !IsCode(err, ErrorCodeDB) {
		t.Fatalf("IsCode(ErrorCodeDB) = false")
	}
	if Root(err).Error() != "root cause" {
		t.Fatalf("Root = %q", Root(err).Error())
	}
}

func TestToWireCarriesField(t *testing.T) {
	err := WithField(Validationf("must be one of [0 1 3]"), "score")
	w := WireFrom(err)
	if w.Code != ErrorCodeValidation || w.Field != "score" {
		t.Fatalf("wire = %+v", w)
	}
	if w.Message != "must be one of [0 1 3]" {
		t.Fatalf("wire message = %q", w.Message)
	}
}

func TestHTTPBundlesStatusAndWire(t *testing.T) {
	status, w := HTTP(nil)
	if status != http.StatusOK || w.Message != "" {
		t.Fatalf("HTTP(nil) = %d, %+v", status, w)
	}
	status, w = HTTP(Conflictf("cannot be duplicate of itself"))
	if status != http.StatusConflict || w.Code != ErrorCodeConflict {
		t.Fatalf("HTTP(conflict) = %d, %+v", status, w)
	}
}
