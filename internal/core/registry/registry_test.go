package registry

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"eltranslit/internal/core/scheme"
	perr "eltranslit/internal/platform/errors"
)

func TestLoadEmbedded(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if r.Version != Version {
		t.Fatalf("version = %d, want %d", r.Version, Version)
	}

	var codes []string
	for _, l := range r.Languages() {
		codes = append(codes, l.Code)
	}
	if !reflect.DeepEqual(codes, []string{"lo", "ru", "th"}) {
		t.Fatalf("languages = %v", codes)
	}

	lo, ok := r.Lookup("LO")
	if !ok || lo.Bicamerality != scheme.LatinOnly || lo.TableID != "lo-alalc" {
		t.Fatalf("lo = %+v ok=%v", lo, ok)
	}
	ru, _ := r.Lookup("ru")
	if ru.Bicamerality != scheme.Both {
		t.Fatalf("ru bicamerality = %q", ru.Bicamerality)
	}

	_, rev, ok := r.Entries("lo", scheme.Reverse)
	if !ok {
		t.Fatalf("lo entries missing")
	}
	if got := rev["b\u01EB"]; got != "\u0E9A\u0ECD" {
		t.Fatalf("lo reverse b-ogonek = %q", got)
	}
	if _, _, ok := r.Entries("xx", scheme.Forward); ok {
		t.Fatalf("unexpected entries for xx")
	}
}

// registry.json must stay in sync with data/tables
func TestEmbeddedMatchesDataDir(t *testing.T) {
	var want Document
	if err := json.Unmarshal(embedded, &want); err != nil {
		t.Fatalf("decode embedded: %v", err)
	}
	got, err := LoadDir(context.Background(), filepath.Join("..", "..", "..", "data", "tables"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if !reflect.DeepEqual(got.Languages, want.Languages) {
		t.Fatalf("languages drifted; rerun eltranslit-tablepacker")
	}
	if !reflect.DeepEqual(got.Tables, want.Tables) {
		t.Fatalf("tables drifted; rerun eltranslit-tablepacker")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		code  perr.ErrorCode
		field string
	}{
		{"bad json", `{`, perr.ErrorCodeJSON, ""},
		{"wrong version", `{"version":2}`, perr.ErrorCodeValidation, ""},
		{
			"unknown table",
			`{"version":1,"languages":{"lo":{"table":"nope","bicamerality":"latin-only"}},"tables":{}}`,
			perr.ErrorCodeValidation, "table",
		},
		{
			"bad bicamerality",
			`{"version":1,"languages":{"lo":{"table":"t","bicamerality":"sometimes"}},"tables":{"t":{}}}`,
			perr.ErrorCodeValidation, "bicamerality",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.in))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !perr.IsCode(err, tc.code) {
				t.Fatalf("code = %v, want %v (%v)", perr.CodeOf(err), tc.code, err)
			}
			if tc.field != "" {
				e, _ := perr.As(err)
				if e.Field() != tc.field {
					t.Fatalf("field = %q, want %q", e.Field(), tc.field)
				}
			}
		})
	}
}

func TestNew(t *testing.T) {
	fwd := map[string]string{"a": "x", "": "dropped"}
	r, err := New(
		[]Language{{Code: " XX ", TableID: "t"}},
		[]Table{{ID: "t", Forward: fwd}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l, ok := r.Lookup("xx")
	if !ok || l.Bicamerality != scheme.LatinOnly {
		t.Fatalf("lookup = %+v ok=%v", l, ok)
	}
	tb, _ := r.Table("t")
	if len(tb.Forward) != 1 {
		t.Fatalf("empty key not dropped: %v", tb.Forward)
	}
	fwd["b"] = "y"
	if _, ok := tb.Forward["b"]; ok {
		t.Fatalf("registry aliases caller map")
	}

	if _, err := New(nil, []Table{{ID: "t"}, {ID: "t"}}); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("dup table err = %v", err)
	}
	if _, err := New([]Language{{Code: "a", TableID: "t"}, {Code: "A", TableID: "t"}}, []Table{{ID: "t"}}); !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("dup language err = %v", err)
	}
	if _, err := New([]Language{{Code: "", TableID: "t"}}, []Table{{ID: "t"}}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("empty code err = %v", err)
	}
}

func TestNilRegistry(t *testing.T) {
	var r *Registry
	if _, ok := r.Lookup("lo"); ok {
		t.Fatalf("nil registry lookup ok")
	}
	if r.Languages() != nil || r.Tables() != nil {
		t.Fatalf("nil registry languages or tables")
	}
}

func TestTablesSorted(t *testing.T) {
	r, err := New(nil, []Table{{ID: "b"}, {ID: "a"}, {ID: "c"}})
	if err != nil {
		t.Fatal(err)
	}
	ts := r.Tables()
	if len(ts) != 3 || ts[0].ID != "a" || ts[2].ID != "c" {
		t.Fatalf("Tables = %+v", ts)
	}
}

func TestAssemble(t *testing.T) {
	core := Core{Version: 1, Meta: map[string]any{"name": "test"}}
	doc, err := Assemble(core, []Fragment{
		{Language: "aa", Aliases: []string{"AB"}, Table: "shared", Bicamerality: "both", Forward: map[string]string{"x": "1"}},
		{Language: "ac", Table: "shared", Bicamerality: "both", Forward: map[string]string{"y": "2"}},
		{Language: "ad", Bicamerality: "other", Reverse: map[string]string{"z": "3"}},
	})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(doc.Languages) != 4 {
		t.Fatalf("languages = %v", doc.Languages)
	}
	if doc.Languages["ab"].Table != "shared" {
		t.Fatalf("alias not registered: %+v", doc.Languages)
	}
	if doc.Languages["ad"].Table != "ad" {
		t.Fatalf("table id should default to language: %+v", doc.Languages["ad"])
	}
	if got := doc.Tables["shared"].Forward; len(got) != 2 {
		t.Fatalf("shared table not merged: %v", got)
	}
	if _, err := FromDocument(doc); err != nil {
		t.Fatalf("FromDocument: %v", err)
	}

	_, err = Assemble(core, []Fragment{
		{Language: "aa", Table: "t", Forward: map[string]string{"x": "1"}},
		{Language: "ab", Table: "t", Forward: map[string]string{"x": "2"}},
	})
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("conflict err = %v", err)
	}

	if _, err := Assemble(core, []Fragment{{Language: " "}}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("missing language err = %v", err)
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDirSource_PicksLatestVersion(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1", "core.json"), `{"version":1}`)
	writeFile(t, filepath.Join(root, "1", "old.json"), `{"language":"old","bicamerality":"both"}`)
	writeFile(t, filepath.Join(root, "3", "core.json"), `{"version":1}`)
	writeFile(t, filepath.Join(root, "3", "nested", "new.json"), `{"language":"new","bicamerality":"other","forward":{"a":"b"}}`)
	writeFile(t, filepath.Join(root, "3", "schema", "ignored.json"), `not json`)
	writeFile(t, filepath.Join(root, "9", "README"), "no core here")

	r, err := Dir(root).Load(context.Background())
	if err != nil {
		t.Fatalf("Dir.Load: %v", err)
	}
	if _, ok := r.Lookup("new"); !ok {
		t.Fatalf("latest version not used")
	}
	if _, ok := r.Lookup("old"); ok {
		t.Fatalf("older version leaked in")
	}
}

func TestDirSource_Errors(t *testing.T) {
	root := t.TempDir()
	if _, err := Dir(root).Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing core err = %v", err)
	}

	writeFile(t, filepath.Join(root, "core.json"), `{"version":1}`)
	if _, err := Dir(root).Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("no fragments err = %v", err)
	}

	writeFile(t, filepath.Join(root, "bad.json"), `{"language":`)
	if _, err := Dir(root).Load(context.Background()); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("bad fragment err = %v", err)
	}
}

func TestEmbeddedSource(t *testing.T) {
	r, err := Embedded().Load(context.Background())
	if err != nil || r == nil {
		t.Fatalf("Embedded().Load: %v", err)
	}
}

func TestFromSource(t *testing.T) {
	ctx := context.Background()

	r, err := FromSource(ctx, nil)
	if err != nil || len(r.Languages()) == 0 {
		t.Fatalf("nil source should load embedded data: %v", err)
	}

	empty := SourceFunc(func(context.Context) (*Registry, error) { return nil, nil })
	if _, err := FromSource(ctx, empty); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable for nil registry, got %v", err)
	}

	boom := perr.New(perr.ErrorCodeDB, "boom")
	failing := SourceFunc(func(context.Context) (*Registry, error) { return nil, boom })
	if _, err := FromSource(ctx, failing); err != boom {
		t.Fatalf("want source error passed through, got %v", err)
	}
}
