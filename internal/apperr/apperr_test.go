package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusUnprocessableEntity},
		{KindBadRequest, http.StatusBadRequest},
		{KindNetwork, http.StatusBadGateway},
		{KindSubmission, http.StatusInternalServerError},
		{KindConflict, http.StatusConflict},
		{KindNotFound, http.StatusNotFound},
		{KindUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := New(tt.kind, "x").HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOf_WrappedChain(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("search failed: %w", Network("autocomplete request failed", base))

	if got := KindOf(err); got != KindNetwork {
		t.Errorf("KindOf() = %v, want %v", got, KindNetwork)
	}
	if !Is(err, KindNetwork) {
		t.Error("Is(err, KindNetwork) = false, want true")
	}
	if !errors.Is(err, base) {
		t.Error("errors.Is(err, base) = false, want true")
	}
	if KindOf(base) != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want unknown", KindOf(base))
	}
	if Is(nil, KindUnknown) {
		t.Error("Is(nil, ...) = true, want false")
	}
}

func TestError_Error(t *testing.T) {
	err := Submission("submit failed", errors.New("boom")).WithOp("onboarding.Submit")
	want := "onboarding.Submit: submit failed: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
