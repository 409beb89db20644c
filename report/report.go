// Package report renders an enterprise snapshot as a markdown document.
//
// Render is a pure function of the snapshot: the same snapshot always yields
// the same document. ParseSummary reads the summary totals back from a
// rendered document.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/ghaudit"
	"github.com/samber/lo"
)

//go:embed template.md.tmpl
var reportTemplate string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"date":          formatDate,
	"cell":          escapeCell,
	"truncate":      truncate,
	"orDash":        orDash,
	"orgURL":        orgURL,
	"boldCount":     boldCount,
	"warnCount":     warnCount,
	"licenseInfo":   licenseInfo,
	"license":       licenseLabel,
	"displayName":   displayName,
	"members":       usersOfType(ghaudit.UserTypeMember),
	"collaborators": usersOfType(ghaudit.UserTypeOutsideCollaborator),
}).Parse(reportTemplate))

// Render writes the markdown report for snap to w.
func Render(w io.Writer, snap *ghaudit.EnterpriseSnapshot) error {
	if snap == nil {
		return errors.New(errors.CodeInvalidInput, "snapshot cannot be nil")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, snap); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to render report")
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write report")
	}
	return nil
}

// RenderString renders the report into a string.
func RenderString(snap *ghaudit.EnterpriseSnapshot) (string, error) {
	var b strings.Builder
	if err := Render(&b, snap); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatDate(t time.Time) string {
	return t.UTC().Format("Monday, January 2, 2006")
}

// escapeCell keeps free text from breaking table rows.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" || s == ghaudit.NotAvailable {
		return "-"
	}
	return s
}

func orgURL(org ghaudit.OrganizationSnapshot) string {
	if org.URL != "" {
		return org.URL
	}
	return "https://github.com/" + org.Name
}

func boldCount(n int) string {
	if n > 0 {
		return fmt.Sprintf("**%d**", n)
	}
	return "0"
}

func warnCount(n int) string {
	if n > 0 {
		return fmt.Sprintf("⚠️ %d", n)
	}
	return "0"
}

func licenseInfo(org ghaudit.OrganizationSnapshot) string {
	vs, ghe, unknown := org.VisualStudioLicenseCount, org.EnterpriseLicenseCount, org.UnknownLicenseCount
	if vs == 0 && ghe == 0 {
		if unknown > 0 {
			return " - ⚠️ License info not available"
		}
		return ""
	}

	var parts []string
	if vs > 0 {
		parts = append(parts, fmt.Sprintf("%d VS+GitHub", vs))
	}
	if ghe > 0 {
		parts = append(parts, fmt.Sprintf("%d GitHub Enterprise", ghe))
	}
	if unknown > 0 {
		parts = append(parts, fmt.Sprintf("%d unknown", unknown))
	}
	return " - Licenses: " + strings.Join(parts, ", ")
}

func licenseLabel(u ghaudit.UserRecord) string {
	switch u.License {
	case ghaudit.LicenseVisualStudio:
		return "🟦 **VS+GitHub**"
	case ghaudit.LicenseEnterprise:
		return "🟩 GitHub Enterprise"
	}
	if u.LicenseType != "" && u.LicenseType != ghaudit.NoLicenseData {
		return escapeCell(u.LicenseType)
	}
	return "-"
}

func displayName(u ghaudit.UserRecord) string {
	if u.DisplayName == u.Username {
		return "-"
	}
	return u.DisplayName
}

func usersOfType(t ghaudit.UserType) func(ghaudit.OrganizationSnapshot) []ghaudit.UserRecord {
	return func(org ghaudit.OrganizationSnapshot) []ghaudit.UserRecord {
		return lo.Filter(org.Users, func(u ghaudit.UserRecord, _ int) bool {
			return u.UserType == t
		})
	}
}
