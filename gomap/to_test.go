package gomap

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/go-ucl/ir"
)

func TestToValueScalars(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		exp  any
	}{
		{"int", ir.FromInt(-42), int64(-42)},
		{"float", ir.FromFloat(1.25), 1.25},
		{"time", ir.FromTime(0.1), 0.1},
		{"string", ir.FromString("a\x00b"), "a\x00b"},
		{"bool", ir.FromBool(true), true},
		{"null", ir.Null(), nil},
		{"userdata", ir.FromUserData([]byte{0, 1, 2}), []byte{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToValue(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.exp, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToValueContainers(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "arr", Val: ir.FromSlice([]*ir.Node{
			ir.FromInt(1), ir.FromString("two"), ir.FromBool(false),
		})},
		{Key: "empty", Val: ir.NewArray()},
		{Key: "one", Val: ir.FromSlice([]*ir.Node{ir.NewObject()})},
		{Key: "a", Val: ir.FromInt(2)},
	})
	got, err := ToValue(node)
	if err != nil {
		t.Fatal(err)
	}
	exp := map[string]any{
		"a":     int64(2),
		"arr":   []any{int64(1), "two", false},
		"empty": []any{},
		"one":   []any{map[string]any{}},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestToValueKeySymbols(t *testing.T) {
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
		{Key: "sub", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "b", Val: ir.Null()}})},
	})
	got, err := ToValue(node, KeySymbols(true))
	if err != nil {
		t.Fatal(err)
	}
	m, ok := got.(map[Symbol]any)
	if !ok {
		t.Fatalf("expected map[Symbol]any, got %T", got)
	}
	if m[Intern("a")] != int64(1) {
		t.Errorf("a: got %v", m[Intern("a")])
	}
	sub, ok := m[Intern("sub")].(map[Symbol]any)
	if !ok {
		t.Fatalf("sub: got %T", m[Intern("sub")])
	}
	for k := range sub {
		if k.String() != "b" || k != Intern("b") {
			t.Errorf("unexpected key %q", k)
		}
	}
	if diff := cmp.Diff(map[string]any{"a": int64(1), "sub": map[string]any{"b": nil}}, Stringify(got)); diff != "" {
		t.Errorf("stringified mismatch (-want +got):\n%s", diff)
	}
}

func TestSymbolZero(t *testing.T) {
	var s Symbol
	if s.String() != "" {
		t.Errorf("zero symbol: got %q", s.String())
	}
	if Intern("x") == s || Intern("x") != Intern("x") {
		t.Error("symbols compare by text")
	}
}

func TestToValueReleased(t *testing.T) {
	before := ir.LiveIters()
	node := ir.FromKeyVals([]ir.KeyVal{{Key: "a", Val: ir.FromInt(1)}})
	node.Unref()
	got, err := ToValue(node)
	if !errors.Is(err, ErrIteration) || !errors.Is(err, ir.ErrReleased) {
		t.Errorf("expected iteration error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no value, got %#v", got)
	}
	if ir.LiveIters() != before {
		t.Error("iterator leaked")
	}
}

func TestToValueNestedFailure(t *testing.T) {
	inner := ir.FromSlice([]*ir.Node{ir.FromInt(1)})
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "ok", Val: ir.FromInt(0)},
		{Key: "bad", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "arr", Val: inner}})},
	})
	inner.Unref()
	got, err := ToValue(node, KeySymbols(true))
	if !errors.Is(err, ErrIteration) {
		t.Fatalf("expected iteration error, got %v", err)
	}
	if got != nil {
		t.Errorf("expected no value, got %#v", got)
	}
}

func TestToValueUnknownTypePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r != "unhandled type (99)" {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	ToValue(ir.FromSlice([]*ir.Node{{Type: ir.Type(99)}}))
	t.Error("expected panic")
}

func TestDecode(t *testing.T) {
	type server struct {
		Host    string   `json:"host"`
		Port    int      `json:"port"`
		Timeout float64  `json:"timeout"`
		Tags    []string `json:"tags"`
	}
	node := ir.FromKeyVals([]ir.KeyVal{
		{Key: "host", Val: ir.FromString("example.com")},
		{Key: "port", Val: ir.FromInt(8080)},
		{Key: "timeout", Val: ir.FromTime(1.5)},
		{Key: "tags", Val: ir.FromSlice([]*ir.Node{ir.FromString("a"), ir.FromString("b")})},
	})
	var got server
	if err := Decode(node, &got, KeySymbols(true)); err != nil {
		t.Fatal(err)
	}
	exp := server{Host: "example.com", Port: 8080, Timeout: 1.5, Tags: []string{"a", "b"}}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	var wrong struct {
		Port string `json:"port"`
	}
	var de *DecodeError
	if err := Decode(node, &wrong); !errors.As(err, &de) {
		t.Errorf("expected DecodeError, got %v", err)
	}
}

func TestStringifyCopies(t *testing.T) {
	in := map[string]any{
		"sub":  map[Symbol]any{Intern("k"): int64(1)},
		"list": []any{map[Symbol]any{Intern("x"): "y"}},
	}
	got := Stringify(in)
	exp := map[string]any{
		"sub":  map[string]any{"k": int64(1)},
		"list": []any{map[string]any{"x": "y"}},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if _, ok := in["sub"].(map[Symbol]any); !ok {
		t.Errorf("input modified: sub is %T", in["sub"])
	}
	if _, ok := in["list"].([]any)[0].(map[Symbol]any); !ok {
		t.Errorf("input modified: list[0] is %T", in["list"].([]any)[0])
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Stringify(in)
		}()
	}
	wg.Wait()
}
