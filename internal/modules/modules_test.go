package modules

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeModule struct {
	name    string
	tools   []Tool
	execute func(ctx context.Context, name string, params map[string]any) (string, error)
	compact bool
}

func (m *fakeModule) Name() string                { return m.name }
func (m *fakeModule) Description() string         { return "fake" }
func (m *fakeModule) Descriptions() LocalizedText { return LocalizedText{"en-US": "fake"} }
func (m *fakeModule) APIVersion() string          { return "v1" }
func (m *fakeModule) Tools() []Tool               { return m.tools }
func (m *fakeModule) ExecuteTool(ctx context.Context, name string, params map[string]any) (string, error) {
	return m.execute(ctx, name, params)
}

type compactModule struct{ *fakeModule }

func (m compactModule) ToCompact(toolName, jsonResult string) string {
	return "compact:" + toolName
}

func echoTool(name string) Tool {
	return Tool{
		ID:           "fake:" + name,
		Name:         name,
		Descriptions: LocalizedText{"en-US": "Echo " + name, "ja-JP": name + "を返す"},
		InputSchema: InputSchema{
			Type:       "object",
			Properties: map[string]Property{"value": {Type: "string"}},
			Required:   []string{"value"},
		},
	}
}

func newFake(name string, tools ...Tool) *fakeModule {
	return &fakeModule{
		name:  name,
		tools: tools,
		execute: func(ctx context.Context, tool string, params map[string]any) (string, error) {
			return `{"value":"` + params["value"].(string) + `"}`, nil
		},
	}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	if err := r.Register(newFake("a", echoTool("one"), echoTool("two"))); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(newFake("a")); err == nil {
		t.Error("expected duplicate module error")
	}
	if err := r.Register(newFake("b", echoTool("two"))); err == nil {
		t.Error("expected duplicate tool error")
	}
	if err := r.Register(newFake("c", echoTool("three"))); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if got := r.Modules(); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Modules() = %v", got)
	}
	if _, ok := r.Module("b"); ok {
		t.Error("rejected module must not be registered")
	}
	if _, m, ok := r.FindTool("three"); !ok || m.Name() != "c" {
		t.Error("FindTool(three) should resolve to module c")
	}
}

func TestRegistryToolsLocalized(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	if err := r.Register(newFake("a", echoTool("one"), echoTool("two"))); err != nil {
		t.Fatal(err)
	}

	tools := r.Tools("ja-JP")
	if len(tools) != 2 || tools[0].Name != "one" || tools[1].Name != "two" {
		t.Fatalf("Tools() = %+v", tools)
	}
	if tools[0].Description != "oneを返す" {
		t.Errorf("description = %q", tools[0].Description)
	}
	if tools[0].Descriptions != nil {
		t.Error("all-language descriptions must not be exposed")
	}
	if got := r.Tools("de-DE")[0].Description; got != "Echo one" {
		t.Errorf("fallback description = %q", got)
	}
}

func TestRegistryCall(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	if err := r.Register(newFake("a", echoTool("echo"))); err != nil {
		t.Fatal(err)
	}

	res, err := r.Call(context.Background(), "echo", map[string]any{"value": "hi"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if res.IsError || res.Content[0].Text != `{"value":"hi"}` {
		t.Errorf("result = %+v", res)
	}

	_, err = r.Call(context.Background(), "missing", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
}

func TestRegistryCallValidationError(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	if err := r.Register(newFake("a", echoTool("echo"))); err != nil {
		t.Fatal(err)
	}

	res, err := r.Call(context.Background(), "echo", map[string]any{})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !res.IsError || res.Content[0].Text != "missing required parameter(s): value" {
		t.Errorf("result = %+v", res)
	}
}

func TestRegistryCallExecuteError(t *testing.T) {
	m := newFake("a", echoTool("echo"))
	m.execute = func(ctx context.Context, name string, params map[string]any) (string, error) {
		return "", errors.New("GitHub API GET /x: 404 Not Found")
	}
	r := NewRegistry(zap.NewNop())
	if err := r.Register(m); err != nil {
		t.Fatal(err)
	}

	res, err := r.Call(context.Background(), "echo", map[string]any{"value": "x"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !res.IsError || !strings.Contains(res.Content[0].Text, "404 Not Found") {
		t.Errorf("result = %+v", res)
	}
}

func TestRegistryCallTimeout(t *testing.T) {
	m := newFake("a", echoTool("slow"))
	m.execute = func(ctx context.Context, name string, params map[string]any) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}
	r := NewRegistry(zap.NewNop(), WithTimeout(20*time.Millisecond))
	if err := r.Register(m); err != nil {
		t.Fatal(err)
	}

	res, err := r.Call(context.Background(), "slow", map[string]any{"value": "x"})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !res.IsError || !strings.Contains(res.Content[0].Text, "timed out after 20ms") {
		t.Errorf("result = %+v", res)
	}
}

func TestRegistryCallCompact(t *testing.T) {
	var seen map[string]any
	m := newFake("a", echoTool("echo"))
	inner := m.execute
	m.execute = func(ctx context.Context, name string, params map[string]any) (string, error) {
		seen = params
		return inner(ctx, name, params)
	}
	r := NewRegistry(zap.NewNop())
	if err := r.Register(compactModule{m}); err != nil {
		t.Fatal(err)
	}

	res, _ := r.Call(context.Background(), "echo", map[string]any{"value": "x"})
	if res.Content[0].Text != "compact:echo" {
		t.Errorf("compact result = %q", res.Content[0].Text)
	}

	res, _ = r.Call(context.Background(), "echo", map[string]any{"value": "x", "format": "json"})
	if res.Content[0].Text != `{"value":"x"}` {
		t.Errorf("json result = %q", res.Content[0].Text)
	}
	if _, ok := seen["format"]; ok {
		t.Error("format must not reach the module")
	}
}
