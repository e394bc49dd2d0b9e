package shape

import (
	"errors"
	"testing"
)

func TestGuard(t *testing.T) {
	v, err := Guard("ok", func() int { return 3 })
	if err != nil || v != 3 {
		t.Fatalf("got %d, %v", v, err)
	}
	_, err = Guard("circle", func() int { panic("radius <= 0") })
	var serr *Error
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, want *Error", err)
	}
	if err.Error() != "circle: radius <= 0" || serr.Stack == "" {
		t.Errorf("unexpected error %q", err)
	}
}
