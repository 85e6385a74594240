// Package export projects an assessment document into a static
// human-readable HTML report, the portal's "PDF" export.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"alphacloud/assessment-portal/internal/domain"
)

// Canonical wizard section order. Unknown keys render after these with a
// fallback title rather than being dropped.
const canonicalSectionOrder = "ABCDEFGHIJ"

var sectionTitles = map[string]string{
	"A": "Company Information",
	"B": "Billing & Cost Management",
	"C": "Compute Resources",
	"D": "Storage Solutions",
	"E": "Networking",
	"F": "Database Services",
	"G": "Security & Compliance",
	"H": "Future Plans",
	"I": "Business Alignment",
	"J": "Additional Information",
}

// Attachment is one downloadable file in the report.
type Attachment struct {
	FileName    string
	SizeLabel   string
	DownloadURL string
}

// ReportField is a rendered question/answer pair.
type ReportField struct {
	Label string
	Value string
}

// ReportSection is one section of the rendered report.
type ReportSection struct {
	Key         string
	Title       string
	Fields      []ReportField
	Attachments []Attachment
}

// AttachmentGroup backs the consolidated All Attachments block. The data
// duplicates the per-section attachments on purpose, for readability.
type AttachmentGroup struct {
	Key   string
	Files []Attachment
}

// ReportData is everything the HTML template needs.
type ReportData struct {
	ClientName     string
	GeneratedDate  string
	SubmittedDate  string
	Sections       []ReportSection
	AllAttachments []AttachmentGroup
	Findings       string
}

// FileAttachment is the caller-facing attachment input.
type FileAttachment struct {
	FileName    string
	FileSize    int64
	DownloadURL string
}

// Render projects a document into the final HTML report.
func Render(sections map[string]domain.Section, review domain.AssessmentState, submittedAt time.Time, attachmentsBySection map[string][]FileAttachment, clientName string) (string, error) {
	data := Project(sections, review, submittedAt, attachmentsBySection, clientName)
	return RenderReportHTML(data)
}

// Project builds the template data without rendering it; split out so the
// projection can be tested on its own.
func Project(sections map[string]domain.Section, review domain.AssessmentState, submittedAt time.Time, attachmentsBySection map[string][]FileAttachment, clientName string) ReportData {
	data := ReportData{
		ClientName:    clientName,
		GeneratedDate: time.Now().Format("January 2, 2006"),
		Findings:      review.Findings,
	}
	if !submittedAt.IsZero() {
		data.SubmittedDate = submittedAt.Format("January 2, 2006")
	}

	for _, key := range orderedSectionKeys(sections) {
		section := sections[key]
		title, ok := sectionTitles[key]
		if !ok {
			title = "Unknown Section"
		}

		rendered := ReportSection{Key: key, Title: title}
		for _, name := range sortedFieldNames(section.Fields) {
			value := section.Fields[name]
			if value.IsEmpty() {
				continue
			}
			rendered.Fields = append(rendered.Fields, ReportField{
				Label: strings.ToUpper(strings.ReplaceAll(name, "_", " ")),
				Value: formatFieldValue(value),
			})
		}
		for _, file := range attachmentsBySection[key] {
			rendered.Attachments = append(rendered.Attachments, Attachment{
				FileName:    file.FileName,
				SizeLabel:   sizeLabel(file.FileSize),
				DownloadURL: file.DownloadURL,
			})
		}
		data.Sections = append(data.Sections, rendered)
	}

	for _, key := range sortedAttachmentKeys(attachmentsBySection) {
		files := attachmentsBySection[key]
		if len(files) == 0 {
			continue
		}
		group := AttachmentGroup{Key: key}
		for _, file := range files {
			group.Files = append(group.Files, Attachment{
				FileName:    file.FileName,
				SizeLabel:   sizeLabel(file.FileSize),
				DownloadURL: file.DownloadURL,
			})
		}
		data.AllAttachments = append(data.AllAttachments, group)
	}

	return data
}

// orderedSectionKeys yields the present section keys in canonical A..J
// order, then any unknown keys sorted.
func orderedSectionKeys(sections map[string]domain.Section) []string {
	keys := make([]string, 0, len(sections))
	for _, r := range canonicalSectionOrder {
		key := string(r)
		if _, ok := sections[key]; ok {
			keys = append(keys, key)
		}
	}
	var extra []string
	for key := range sections {
		if len(key) == 1 && strings.Contains(canonicalSectionOrder, key) {
			continue
		}
		extra = append(extra, key)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func sortedFieldNames(fields map[string]domain.FieldValue) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedAttachmentKeys(attachments map[string][]FileAttachment) []string {
	keys := make([]string, 0, len(attachments))
	for key := range attachments {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// formatFieldValue renders a field value as text: arrays become a
// delimited list, nested maps their structural JSON form.
func formatFieldValue(value domain.FieldValue) string {
	switch value.Kind() {
	case domain.FieldStringList:
		return strings.Join(value.List(), ", ")
	case domain.FieldMap:
		encoded, err := json.MarshalIndent(value.Interface(), "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", value.Interface())
		}
		return string(encoded)
	case domain.FieldNumber:
		return strconv.FormatFloat(value.Number(), 'f', -1, 64)
	case domain.FieldBool:
		return strconv.FormatBool(value.Bool())
	default:
		return value.String()
	}
}

func sizeLabel(size int64) string {
	if size <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%.1f KB)", float64(size)/1024)
}
