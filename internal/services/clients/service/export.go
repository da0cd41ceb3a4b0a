package service

import (
	"strconv"
	"strings"
	"time"

	"clientele/internal/services/clients/domain"
)

// exportColumn pairs a header name with its serializer. The schema is a fixed
// ordered list so adding a column is a deliberate change, not an object spread
type exportColumn struct {
	header string
	value  func(domain.Client) string
}

// exportColumns is the canonical 15-column export schema. The email slot is an
// empty placeholder kept for spreadsheet compatibility with older exports
var exportColumns = []exportColumn{
	{"id", func(c domain.Client) string { return c.ID }},
	{"name", func(c domain.Client) string { return c.Name }},
	{"phone", func(c domain.Client) string { return c.Phone }},
	{"email", func(domain.Client) string { return "" }},
	{"birthday", func(c domain.Client) string { return dateOrEmpty(c.Birthday) }},
	{"notes", func(c domain.Client) string { return c.Notes }},
	{"total_spent", func(c domain.Client) string { return c.TotalSpent }},
	{"total_visits", func(c domain.Client) string { return strconv.Itoa(c.TotalVisits) }},
	{"last_visit_date", func(c domain.Client) string { return dateOrEmpty(c.LastVisitDate) }},
	{"whatsapp_link", func(c domain.Client) string { return c.WhatsappLink }},
	{"facebook_link", func(c domain.Client) string { return c.FacebookLink }},
	{"instagram_link", func(c domain.Client) string { return c.InstagramLink }},
	{"tiktok_link", func(c domain.Client) string { return c.TiktokLink }},
	{"referrer_id", func(c domain.Client) string { return strOrEmpty(c.ReferrerID) }},
	{"created_at", func(c domain.Client) string { return c.CreatedAt.UTC().Format(time.RFC3339) }},
}

// MarshalCSV serializes clients to the export format: every field wrapped in
// double quotes, embedded quotes doubled, fields joined by commas, rows by
// newlines, with a trailing newline. Absent optional fields serialize as ""
func MarshalCSV(clients []domain.Client) []byte {
	var b strings.Builder

	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}

	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col.header
	}
	writeRow(header)

	row := make([]string, len(exportColumns))
	for _, c := range clients {
		for i, col := range exportColumns {
			row[i] = col.value(c)
		}
		writeRow(row)
	}
	return []byte(b.String())
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
