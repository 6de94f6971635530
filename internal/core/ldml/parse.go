// Package ldml reads LDML transform rule files and runs them through a
// pluggable rule engine
//
// Documents carry a single transform at supplementalData/transforms/transform
// or transforms/transform. The transform is registered under the first token
// of its alias attribute.
package ldml

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"

	perr "eltranslit/internal/platform/errors"
)

// Transform is a parsed LDML transform
type Transform struct {
	Name      string
	Source    string
	Target    string
	Variant   string
	Direction string // forward, backward or both
	Alias     []string
	Rules     string
	Path      string
}

// Forward reports whether the transform declares forward rules
func (t Transform) Forward() bool { return t.Direction != "backward" }

// Backward reports whether the transform declares backward rules
func (t Transform) Backward() bool { return t.Direction == "backward" || t.Direction == "both" }

type xmlTransform struct {
	Source    string   `xml:"source,attr"`
	Target    string   `xml:"target,attr"`
	Variant   string   `xml:"variant,attr"`
	Direction string   `xml:"direction,attr"`
	Alias     string   `xml:"alias,attr"`
	Rules     []string `xml:"tRule"`
}

// ParseFile resolves path and parses the transform it holds
func ParseFile(path string) (Transform, error) {
	p, err := ResolvePath(path)
	if err != nil {
		return Transform{}, err
	}
	f, err := os.Open(p)
	if err != nil {
		return Transform{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "ldml: open %s", p)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return Transform{}, perr.WithOp(err, "parse "+p)
	}
	t.Path = p
	return t, nil
}

// Parse reads the first transform found at transforms/transform
func Parse(r io.Reader) (Transform, error) {
	d := xml.NewDecoder(r)
	d.Strict = true

	var stack []string
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return Transform{}, perr.Wrap(ErrMalformed, perr.ErrorCodeValidation, "ldml: no transforms/transform element")
		}
		if err != nil {
			return Transform{}, perr.Wrap(err, perr.ErrorCodeValidation, "ldml: decode")
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "transform" && underTransforms(stack) {
				var xt xmlTransform
				if err := d.DecodeElement(&xt, &el); err != nil {
					return Transform{}, perr.Wrap(err, perr.ErrorCodeValidation, "ldml: decode transform")
				}
				return fromXML(xt)
			}
			stack = append(stack, el.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// underTransforms accepts transforms/transform at the root or below supplementalData
func underTransforms(stack []string) bool {
	switch len(stack) {
	case 1:
		return stack[0] == "transforms"
	case 2:
		return stack[0] == "supplementalData" && stack[1] == "transforms"
	}
	return false
}

func fromXML(xt xmlTransform) (Transform, error) {
	t := Transform{
		Source:    strings.TrimSpace(xt.Source),
		Target:    strings.TrimSpace(xt.Target),
		Variant:   strings.TrimSpace(xt.Variant),
		Direction: strings.ToLower(strings.TrimSpace(xt.Direction)),
		Alias:     strings.Fields(xt.Alias),
	}
	switch t.Direction {
	case "":
		t.Direction = "forward"
	case "forward", "backward", "both":
	default:
		return Transform{}, perr.WithField(perr.Wrapf(ErrMalformed, perr.ErrorCodeValidation,
			"ldml: unknown direction %q", xt.Direction), "direction")
	}

	if len(xt.Rules) == 0 {
		return Transform{}, perr.WithField(perr.Wrap(ErrMalformed, perr.ErrorCodeValidation, "ldml: transform has no tRule"), "tRule")
	}
	t.Rules = CleanRules(strings.Join(xt.Rules, "\n"))

	switch {
	case len(t.Alias) > 0:
		t.Name = t.Alias[0]
	case t.Source != "" && t.Target != "":
		t.Name = t.Source + "-" + t.Target
		if t.Variant != "" {
			t.Name += "/" + t.Variant
		}
	default:
		return Transform{}, perr.WithField(perr.Wrap(ErrMalformed, perr.ErrorCodeValidation, "ldml: transform has no alias or source/target"), "alias")
	}
	return t, nil
}

var hspaceRun = regexp.MustCompile(`[ \t]{2,}`)

// CleanRules drops # comments and runs of two or more spaces or tabs, trims
// each line and removes blank lines
// A # inside quotes or after a backslash is kept
func CleanRules(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, ln := range lines {
		ln = stripComment(ln)
		ln = hspaceRun.ReplaceAllString(ln, "")
		ln = strings.TrimSpace(ln)
		if ln != "" {
			out = append(out, ln)
		}
	}
	return strings.Join(out, "\n")
}

func stripComment(ln string) string {
	quoted := false
	for i := 0; i < len(ln); i++ {
		switch ln[i] {
		case '\\':
			i++
		case '\'':
			quoted = !quoted
		case '#':
			if !quoted {
				return ln[:i]
			}
		}
	}
	return ln
}
