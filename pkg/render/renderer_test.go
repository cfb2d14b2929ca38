package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wrappers/pkg/handler"
	"github.com/goliatone/go-wrappers/pkg/resolver"
	"github.com/goliatone/go-wrappers/pkg/template"
	"github.com/goliatone/go-wrappers/pkg/wrapper"
)

type engineCall struct {
	name   string
	data   map[string]any
	inline bool
}

// stubEngine renders recognizable markers and records every call. Wrapper
// templates reproduce the embedded content between name tags.
type stubEngine struct {
	calls []engineCall
}

func (e *stubEngine) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	m, _ := data.(map[string]any)
	e.calls = append(e.calls, engineCall{name: name, data: m})
	if content, ok := m["content"]; ok {
		return fmt.Sprintf("<%s>%v</%s>", name, content, name), nil
	}
	return "body:" + name, nil
}

func (e *stubEngine) RenderString(content string, data any, _ ...io.Writer) (string, error) {
	m, _ := data.(map[string]any)
	e.calls = append(e.calls, engineCall{name: content, data: m, inline: true})
	return content, nil
}

type stubFinder struct {
	templates map[string]bool
	probes    int
}

func newStubFinder(identifiers ...string) *stubFinder {
	set := make(map[string]bool, len(identifiers))
	for _, id := range identifiers {
		set[id] = true
	}
	return &stubFinder{templates: set}
}

func (s *stubFinder) FindAll(_ context.Context, name string, prefixes ...string) ([]template.Template, error) {
	s.probes++
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}
	var found []template.Template
	for _, prefix := range prefixes {
		if s.templates[path.Join(prefix, name)] {
			found = append(found, template.Template{Name: name, Prefix: prefix})
		}
	}
	return found, nil
}

func newTestRenderer(finder template.Finder, opts ...RendererOption) (*Renderer, *stubEngine) {
	engine := &stubEngine{}
	return NewRenderer(engine, resolver.New(finder), opts...), engine
}

func TestRenderWithDeclaredWrapper(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank", handler.WithWrapper(wrapper.Name("vault")))
	r, _ := newTestRenderer(newStubFinder())

	result, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/index",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	want := "<wrapperss/vault>body:views/bank/index</wrapperss/vault>"
	if result.Content != want {
		t.Fatalf("expected %q, got %q", want, result.Content)
	}
	if result.Fragment != "body:views/bank/index" {
		t.Fatalf("unexpected fragment: %q", result.Fragment)
	}
	if result.Wrapper.Path != "wrapperss/vault" {
		t.Fatalf("unexpected wrapper: %q", result.Wrapper.Path)
	}
}

func TestRenderWithoutWrapper(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank")
	r, _ := newTestRenderer(newStubFinder())

	result, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/index",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if result.Content != "body:views/bank/index" {
		t.Fatalf("expected the bare fragment, got %q", result.Content)
	}
	if !result.Wrapper.None() {
		t.Fatalf("expected no wrapper, got %q", result.Wrapper.Path)
	}
}

func TestPartialSkipsResolution(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank", handler.WithWrapper(wrapper.Name("vault")))
	finder := newStubFinder("wrapperss/bank")
	r, _ := newTestRenderer(finder)

	result, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/_row",
		Partial:  true,
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if result.Content != "body:views/bank/_row" {
		t.Fatalf("expected the bare partial, got %q", result.Content)
	}
	if finder.probes != 0 {
		t.Fatalf("expected no finder probes for a partial, got %d", finder.probes)
	}
}

func TestPartialWithExplicitWrapper(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank")
	r, _ := newTestRenderer(newStubFinder())

	result, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/_row",
		Partial:  true,
		Wrapper:  wrapper.Use("printable"),
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	want := "<wrapperss/printable>body:views/bank/_row</wrapperss/printable>"
	if result.Content != want {
		t.Fatalf("expected %q, got %q", want, result.Content)
	}
}

func TestRenderOverrideNone(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank", handler.WithWrapper(wrapper.Name("vault")))
	r, _ := newTestRenderer(newStubFinder())

	result, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/index",
		Wrapper:  wrapper.UseNone(),
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if result.Content != "body:views/bank/index" {
		t.Fatalf("expected the bare fragment, got %q", result.Content)
	}
}

func TestRenderInlineText(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank")
	r, engine := newTestRenderer(newStubFinder())

	result, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Text: "hello {{ name }}",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if result.Content != "hello {{ name }}" {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if len(engine.calls) != 1 || !engine.calls[0].inline {
		t.Fatalf("expected one inline engine call, got %+v", engine.calls)
	}
}

func TestRenderSanitizesFragment(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank")
	r, _ := newTestRenderer(newStubFinder(), WithSanitizer(StrictSanitizer()))

	result, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Text: "<script>alert(1)</script>balance",
	})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if result.Content != "balance" {
		t.Fatalf("expected the script stripped, got %q", result.Content)
	}
}

func TestRenderExposesThemeData(t *testing.T) {
	t.Parallel()

	cfg := &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		CSSVars: map[string]string{"--brand": "#654321"},
		AssetURL: func(key string) string {
			return "/assets/" + key
		},
	}

	bank := handler.New("Bank")
	r, engine := newTestRenderer(newStubFinder(), WithThemeConfig(cfg))

	if _, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/index",
	}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if len(engine.calls) == 0 {
		t.Fatal("expected engine calls")
	}
	themeData, ok := engine.calls[0].data["theme"].(map[string]any)
	if !ok {
		t.Fatalf("expected theme data, got %+v", engine.calls[0].data)
	}
	if themeData["name"] != "acme" || themeData["variant"] != "dark" {
		t.Fatalf("unexpected theme identity: %+v", themeData)
	}
}

func TestRenderCustomContentKey(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank", handler.WithWrapper(wrapper.Name("vault")))
	r, engine := newTestRenderer(newStubFinder(), WithContentKey("body"))

	if _, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/index",
	}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	last := engine.calls[len(engine.calls)-1]
	if last.name != "wrapperss/vault" {
		t.Fatalf("expected the wrapper call last, got %q", last.name)
	}
	if _, ok := last.data["body"]; !ok {
		t.Fatalf("expected the fragment under the custom key, got %+v", last.data)
	}
}

func TestRenderRequiredWrapperMissing(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank")
	r, _ := newTestRenderer(newStubFinder())

	_, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{
		Template: "views/bank/index",
		Wrapper:  wrapper.UseRequired(),
	})
	if err == nil {
		t.Fatal("expected a not found error")
	}
	var nfErr resolver.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected a NotFoundError, got %T", err)
	}
}

func TestRenderValidation(t *testing.T) {
	t.Parallel()

	bank := handler.New("Bank")
	r, _ := newTestRenderer(newStubFinder())

	if _, err := r.Render(context.Background(), handler.NewBase(bank, "index"), Options{}); err == nil {
		t.Fatal("expected an error without template or text")
	}
	if _, err := r.Render(context.Background(), nil, Options{Text: "x"}); err == nil {
		t.Fatal("expected an error for a nil instance")
	}

	bare := NewRenderer(nil, nil)
	if _, err := bare.Render(context.Background(), handler.NewBase(bank, "index"), Options{Text: "x"}); err == nil {
		t.Fatal("expected an error without collaborators")
	}
}
