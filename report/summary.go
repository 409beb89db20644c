package report

import (
	"strconv"
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Labels of the summary fields in the report header.
const (
	labelOrganizations = "Total Organizations:"
	labelUsers         = "Total Users:"
	labelUniqueUsers   = "Total Unique Users:"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ParseSummary reads the summary totals back from a rendered report.
// Each total is a bold label followed by its value, e.g. "**Total Users:** 42".
func ParseSummary(source []byte) (ghaudit.Summary, error) {
	doc := markdown.Parser().Parse(text.NewReader(source))

	fields := map[string]string{}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		em, ok := n.(*ast.Emphasis)
		if !ok || em.Level != 2 {
			return ast.WalkContinue, nil
		}

		label := strings.TrimSpace(nodeText(em, source))
		if _, seen := fields[label]; !seen {
			fields[label] = strings.TrimSpace(valueAfter(em, source))
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return ghaudit.Summary{}, errors.Wrap(err, errors.CodeInvalidInput, "failed to walk report")
	}

	var summary ghaudit.Summary
	for label, dst := range map[string]*int{
		labelOrganizations: &summary.TotalOrganizations,
		labelUsers:         &summary.TotalUsers,
		labelUniqueUsers:   &summary.TotalUniqueUsers,
	} {
		raw, ok := fields[label]
		if !ok {
			err := errors.New(errors.CodeInvalidInput, "summary field missing from report")
			return ghaudit.Summary{}, errors.WithContext(err, "field", label)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			wrapped := errors.Wrap(err, errors.CodeInvalidInput, "summary field is not a number")
			return ghaudit.Summary{}, errors.WithContextMap(wrapped, map[string]interface{}{
				"field": label,
				"value": raw,
			})
		}
		*dst = v
	}

	return summary, nil
}

// valueAfter collects the text following n up to the next bold label.
func valueAfter(n ast.Node, source []byte) string {
	var b strings.Builder
	for sib := n.NextSibling(); sib != nil; sib = sib.NextSibling() {
		if _, ok := sib.(*ast.Emphasis); ok {
			break
		}
		b.WriteString(nodeText(sib, source))
		if t, ok := sib.(*ast.Text); ok && (t.HardLineBreak() || t.SoftLineBreak()) {
			break
		}
	}
	return b.String()
}

func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
