package wrapper

import (
	"errors"
	"strings"
	"testing"
)

func TestFrom(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		value    any
		wantKind Kind
		wantName string
	}{
		{name: "nil is auto", value: nil, wantKind: KindAuto},
		{name: "string is a literal name", value: "invoice", wantKind: KindName, wantName: "invoice"},
		{name: "false suppresses", value: false, wantKind: KindNone},
		{name: "spec passes through", value: Method("pick"), wantKind: KindMethod, wantName: "pick"},
		{name: "inline func", value: InlineFunc(func(any) any { return "x" }), wantKind: KindFunc},
		{name: "bare func", value: func(any) any { return "x" }, wantKind: KindFunc},
		{name: "zero arg func", value: func() any { return "x" }, wantKind: KindFunc},
		{name: "zero arg string func", value: func() string { return "x" }, wantKind: KindFunc},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			spec, err := From(tc.value)
			if err != nil {
				t.Fatalf("From(%v) returned error: %v", tc.value, err)
			}
			if spec.Kind() != tc.wantKind {
				t.Fatalf("expected kind %s, got %s", tc.wantKind, spec.Kind())
			}
			if spec.Name() != tc.wantName {
				t.Fatalf("expected name %q, got %q", tc.wantName, spec.Name())
			}
		})
	}
}

func TestFromRejectsTrue(t *testing.T) {
	t.Parallel()

	_, err := From(true)
	if err == nil {
		t.Fatal("expected an error for a true declaration")
	}

	var cfgErr ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected a ConfigError, got %T", err)
	}
	if cfgErr.Value != true {
		t.Fatalf("expected the error to carry the value, got %v", cfgErr.Value)
	}
	if !strings.Contains(err.Error(), "string, method, function, false, or nil") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestFromRejectsUnsupportedTypes(t *testing.T) {
	t.Parallel()

	for _, value := range []any{42, 3.14, []string{"a"}, struct{}{}} {
		if _, err := From(value); err == nil {
			t.Fatalf("expected an error for %T", value)
		}
	}
}

func TestInlineReceivesInstance(t *testing.T) {
	t.Parallel()

	type probe struct{ name string }

	spec := Inline(func(instance any) any {
		return instance.(*probe).name
	})
	if got := spec.Call(&probe{name: "teller"}); got != "teller" {
		t.Fatalf("expected the instance to reach the function, got %v", got)
	}
}

func TestInline0IgnoresInstance(t *testing.T) {
	t.Parallel()

	spec := Inline0(func() any { return "static" })
	if got := spec.Call(nil); got != "static" {
		t.Fatalf("expected %q, got %v", "static", got)
	}
}

func TestSpecString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		spec Spec
		want string
	}{
		{spec: Auto(), want: "auto"},
		{spec: Name("invoice"), want: "name(invoice)"},
		{spec: Method("pick"), want: "method(pick)"},
		{spec: None(), want: "none"},
	}

	for _, tc := range cases {
		if got := tc.spec.String(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
