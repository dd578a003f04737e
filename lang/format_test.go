package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"
)

func mustParse(t *testing.T, input string) *Result {
	t.Helper()

	res, err := Parse(context.Background(), input, WithCache(false))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}

	return res
}

func TestParseFormat(t *testing.T) {
	for name := range Formats() {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q) failed: %v", name, err)
		}

		if f.String() != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, f.String())
		}
	}

	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YAML) = %v, %v", f, err)
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ParseFormat(xml) error = %v, want %v", err, ErrInvalidFormat)
	}

	if got := slices.Collect(Formats()); len(got) != 5 {
		t.Errorf("Formats() = %v", got)
	}
}

func TestFormatDebug(t *testing.T) {
	var buf bytes.Buffer

	if err := mustParse(t, "= 1 + 2 * 3").Format(context.Background(), &buf, FormatDebug, 0); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if got := buf.String(); got != "(+ 1 (* 2 3))\n" {
		t.Errorf("debug = %q", got)
	}
}

func TestFormatHTML(t *testing.T) {
	res := mustParse(t, `f "<x>"`)

	var frag bytes.Buffer
	if err := res.FormatHTML(&frag, false); err != nil {
		t.Fatalf("FormatHTML failed: %v", err)
	}

	if !strings.HasPrefix(frag.String(), "<span class=expression>") {
		t.Errorf("fragment = %q", frag.String())
	}

	if strings.Contains(frag.String(), "<html>") {
		t.Error("fragment must not be a full page")
	}

	var page bytes.Buffer
	if err := res.FormatHTML(&page, true); err != nil {
		t.Fatalf("FormatHTML failed: %v", err)
	}

	got := page.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>f &#34;&lt;x&gt;&#34;</title>",
		frag.String()[:len(frag.String())-1],
		"<table class=symbols>",
		"<td>Pipe</td>",
		"postfix into_percent",
		"</html>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestWritePage(t *testing.T) {
	a, b := mustParse(t, "f 1"), mustParse(t, "g 2")

	var buf bytes.Buffer
	if err := WritePage(&buf, a, nil, b); err != nil {
		t.Fatalf("WritePage failed: %v", err)
	}

	got := buf.String()

	if !strings.Contains(got, "<title>impral</title>") {
		t.Errorf("multi-result page has the wrong title: %q", got)
	}

	if n := strings.Count(got, "<pre class=source>"); n != 2 {
		t.Errorf("expected 2 source blocks, got %d", n)
	}

	if strings.Index(got, ">f 1<") > strings.Index(got, ">g 2<") {
		t.Error("results written out of order")
	}
}

func TestFormatJSON(t *testing.T) {
	res := mustParse(t, "f 1 k=$x")

	var buf bytes.Buffer
	if err := res.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}

	var doc struct {
		Entry int              `json:"entry"`
		Items []map[string]any `json:"items"`
	}

	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if len(doc.Items) != res.Block.Len() {
		t.Fatalf("items = %d, want %d", len(doc.Items), res.Block.Len())
	}

	root := doc.Items[doc.Entry]
	if root["kind"] != "call" || root["name"] != "f" {
		t.Errorf("entry = %v", root)
	}

	named, ok := root["named"].([]any)
	if !ok || len(named) != 1 {
		t.Fatalf("named = %v", root["named"])
	}

	arg := named[0].(map[string]any)
	ref := int(arg["value"].(float64))

	if v := doc.Items[ref]; v["type"] != "ref-var" || v["value"] != "$x" {
		t.Errorf("named value = %v", v)
	}

	var compact bytes.Buffer
	if err := res.FormatJSON(context.Background(), &compact, 0); err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	if strings.Count(compact.String(), "\n") != 1 {
		t.Errorf("compact output spans lines: %q", compact.String())
	}
}

func TestFormatYAML(t *testing.T) {
	res := mustParse(t, "a | b")

	var buf bytes.Buffer
	if err := res.Format(context.Background(), &buf, FormatYAML, 2); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	for _, want := range []string{"entry:", "items:", "kind: pipe", "kind: mapping"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("yaml is missing %q:\n%s", want, buf.String())
		}
	}

	var flow bytes.Buffer
	if err := res.FormatYAML(context.Background(), &flow, 0); err != nil {
		t.Fatalf("FormatYAML failed: %v", err)
	}

	if !strings.HasPrefix(flow.String(), "{") {
		t.Errorf("flow yaml = %q", flow.String())
	}
}

func TestFormatTokens(t *testing.T) {
	var buf bytes.Buffer

	if err := mustParse(t, "f [1]").FormatTokens(&buf); err != nil {
		t.Fatalf("FormatTokens failed: %v", err)
	}

	want := "0..1 char-string f\n" +
		"2..4 group [\n" +
		"  3..4 integer-number 1\n"

	if got := buf.String(); got != want {
		t.Errorf("tokens =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatInvalid(t *testing.T) {
	err := mustParse(t, "x").Format(context.Background(), &bytes.Buffer{}, Format(99), 0)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("error = %v, want %v", err, ErrInvalidFormat)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestFormatWriteError(t *testing.T) {
	err := mustParse(t, "x").Format(context.Background(), failingWriter{}, FormatDebug, 0)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error = %v, want %v", err, ErrFormat)
	}
}
