package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	perr "eltranslit/internal/platform/errors"
)

// Document is the on-disk shape of registry.json
type Document struct {
	Version   int                 `json:"version"`
	Meta      map[string]any      `json:"meta,omitempty"`
	Languages map[string]DocLang  `json:"languages"`
	Tables    map[string]DocTable `json:"tables"`
}

// DocLang is a language row in a Document
type DocLang struct {
	Table        string `json:"table"`
	Bicamerality string `json:"bicamerality"`
	Label        string `json:"label,omitempty"`
}

// DocTable is a table in a Document
type DocTable struct {
	Forward map[string]string `json:"forward"`
	Reverse map[string]string `json:"reverse"`
}

// Core is the core.json file at the root of a table data directory
type Core struct {
	Version int            `json:"version"`
	Meta    map[string]any `json:"meta"`
}

// Fragment is one per-language table file
// Several fragments may contribute to the same table; they must not disagree on a key
type Fragment struct {
	Language     string            `json:"language"`
	Aliases      []string          `json:"aliases,omitempty"`
	Table        string            `json:"table"`
	Bicamerality string            `json:"bicamerality"`
	Label        string            `json:"label,omitempty"`
	Forward      map[string]string `json:"forward,omitempty"`
	Reverse      map[string]string `json:"reverse,omitempty"`
}

// Assemble merges core and fragments into a Document
func Assemble(core Core, frags []Fragment) (Document, error) {
	doc := Document{
		Version:   core.Version,
		Meta:      core.Meta,
		Languages: make(map[string]DocLang, len(frags)),
		Tables:    make(map[string]DocTable, len(frags)),
	}
	if doc.Version == 0 {
		doc.Version = Version
	}

	for _, fr := range frags {
		lang := strings.ToLower(strings.TrimSpace(fr.Language))
		if lang == "" {
			return Document{}, perr.WithField(perr.New(perr.ErrorCodeValidation, "registry: fragment missing language"), "language")
		}
		table := strings.TrimSpace(fr.Table)
		if table == "" {
			table = lang
		}

		row := DocLang{Table: table, Bicamerality: fr.Bicamerality, Label: fr.Label}
		for _, code := range append([]string{lang}, fr.Aliases...) {
			code = strings.ToLower(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			if prev, dup := doc.Languages[code]; dup && prev != row {
				return Document{}, perr.Newf(perr.ErrorCodeDuplicateKey,
					"registry: language %q declared twice with different rows", code)
			}
			doc.Languages[code] = row
		}

		t := doc.Tables[table]
		var err error
		if t.Forward, err = mergeEntries(t.Forward, fr.Forward); err != nil {
			return Document{}, fmt.Errorf("registry: table %s forward: %w", table, err)
		}
		if t.Reverse, err = mergeEntries(t.Reverse, fr.Reverse); err != nil {
			return Document{}, fmt.Errorf("registry: table %s reverse: %w", table, err)
		}
		doc.Tables[table] = t
	}

	return doc, nil
}

func mergeEntries(dst, src map[string]string) (map[string]string, error) {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		if prev, ok := dst[k]; ok && prev != v {
			return nil, perr.Newf(perr.ErrorCodeConflict, "key %q maps to both %q and %q", k, prev, v)
		}
	}
	maps.Copy(dst, src)
	return dst, nil
}

// Dir is the Source for an unpacked table data directory
// root may be a version directory holding core.json or a parent of numbered versions
func Dir(root string) Source {
	return SourceFunc(func(ctx context.Context) (*Registry, error) {
		doc, err := LoadDir(ctx, root)
		if err != nil {
			return nil, err
		}
		return FromDocument(doc)
	})
}

// LoadDir reads core.json and every fragment beneath root into a Document
func LoadDir(ctx context.Context, root string) (Document, error) {
	dir, ok := VersionDir(root)
	if !ok {
		return Document{}, perr.NotFoundf("registry: core.json not found under %s", root)
	}

	var core Core
	if err := readJSON(filepath.Join(dir, "core.json"), &core); err != nil {
		return Document{}, fmt.Errorf("registry: read core.json: %w", err)
	}

	paths, err := FragmentFiles(dir)
	if err != nil {
		return Document{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "registry: walk %s", dir)
	}
	if len(paths) == 0 {
		return Document{}, perr.NotFoundf("registry: no fragment files found under %s", dir)
	}

	frags := make([]Fragment, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		var fr Fragment
		if err := readJSON(p, &fr); err != nil {
			return Document{}, err
		}
		if strings.TrimSpace(fr.Language) == "" {
			return Document{}, perr.InvalidArgf("registry: fragment missing language: %s", p)
		}
		frags = append(frags, fr)
	}
	return Assemble(core, frags)
}

// FragmentFiles lists every *.json under root except root/core.json, sorted
func FragmentFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			if strings.HasPrefix(rel, "schema") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Base(path) == "core.json" && filepath.Dir(path) == root {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// VersionDir resolves root to a directory holding core.json
// A parent of numbered version directories resolves to the highest one
func VersionDir(root string) (string, bool) {
	if root == "" {
		return "", false
	}
	if hasCore(root) {
		return root, true
	}
	ents, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}
	best := -1
	for _, e := range ents {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		if n > best && hasCore(filepath.Join(root, e.Name())) {
			best = n
		}
	}
	if best < 0 {
		return "", false
	}
	return filepath.Join(root, strconv.Itoa(best)), true
}

func hasCore(dir string) bool {
	st, err := os.Stat(filepath.Join(dir, "core.json"))
	return err == nil && st.Mode().IsRegular()
}

func readJSON[T any](path string, into *T) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeNotFound, "registry: read %s", path)
	}
	if err := json.Unmarshal(b, into); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "registry: decode %s", path)
	}
	return nil
}
