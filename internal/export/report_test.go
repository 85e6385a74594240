package export

import (
	"strings"
	"testing"
	"time"

	"alphacloud/assessment-portal/internal/domain"
)

func TestProjectOrdersSectionsCanonically(t *testing.T) {
	sections := map[string]domain.Section{
		"J": {Fields: map[string]domain.FieldValue{"notes": domain.StringValue("none")}},
		"A": {Fields: map[string]domain.FieldValue{"company_name": domain.StringValue("Acme")}},
		"C": {Fields: map[string]domain.FieldValue{"instance_count": domain.NumberValue(4)}},
		"Z": {Fields: map[string]domain.FieldValue{"extra": domain.StringValue("x")}},
	}

	data := Project(sections, domain.AssessmentState{}, time.Time{}, nil, "")

	var keys []string
	for _, section := range data.Sections {
		keys = append(keys, section.Key)
	}
	want := []string{"A", "C", "J", "Z"}
	if strings.Join(keys, "") != strings.Join(want, "") {
		t.Errorf("section order = %v, want %v", keys, want)
	}

	if data.Sections[0].Title != "Company Information" {
		t.Errorf("title for A = %q", data.Sections[0].Title)
	}
	// Unknown keys render with a fallback title instead of being dropped.
	if data.Sections[3].Title != "Unknown Section" {
		t.Errorf("title for Z = %q", data.Sections[3].Title)
	}
}

func TestProjectFormatsFieldValues(t *testing.T) {
	sections := map[string]domain.Section{
		"B": {Fields: map[string]domain.FieldValue{
			"monthly_spend":  domain.NumberValue(1250.5),
			"has_committed":  domain.BoolValue(true),
			"cost_centers":   domain.ListValue([]string{"eng", "ops", "data"}),
			"unanswered":     domain.StringValue(""),
			"billing_detail": domain.MapValue(map[string]domain.FieldValue{"currency": domain.StringValue("EUR")}),
		}},
	}

	data := Project(sections, domain.AssessmentState{}, time.Time{}, nil, "")
	if len(data.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(data.Sections))
	}

	fields := map[string]string{}
	for _, field := range data.Sections[0].Fields {
		fields[field.Label] = field.Value
	}

	if _, ok := fields["UNANSWERED"]; ok {
		t.Error("empty value not omitted")
	}
	if got := fields["COST CENTERS"]; got != "eng, ops, data" {
		t.Errorf("list value = %q", got)
	}
	if got := fields["MONTHLY SPEND"]; got != "1250.5" {
		t.Errorf("number value = %q", got)
	}
	if got := fields["HAS COMMITTED"]; got != "true" {
		t.Errorf("bool value = %q", got)
	}
	if got := fields["BILLING DETAIL"]; !strings.Contains(got, `"currency": "EUR"`) {
		t.Errorf("map value = %q, want structural JSON", got)
	}
}

func TestProjectAttachments(t *testing.T) {
	sections := map[string]domain.Section{"A": {}, "D": {}}
	attachments := map[string][]FileAttachment{
		"D": {
			{FileName: "diagram.png", FileSize: 2048, DownloadURL: "https://files.test/d/diagram.png"},
		},
	}

	data := Project(sections, domain.AssessmentState{}, time.Time{}, attachments, "")

	var sectionD *ReportSection
	for i := range data.Sections {
		if data.Sections[i].Key == "D" {
			sectionD = &data.Sections[i]
		}
	}
	if sectionD == nil || len(sectionD.Attachments) != 1 {
		t.Fatalf("section D attachments missing: %+v", data.Sections)
	}
	if sectionD.Attachments[0].SizeLabel != " (2.0 KB)" {
		t.Errorf("size label = %q", sectionD.Attachments[0].SizeLabel)
	}

	// The consolidated block repeats the same files.
	if len(data.AllAttachments) != 1 || data.AllAttachments[0].Key != "D" {
		t.Fatalf("all attachments = %+v", data.AllAttachments)
	}
	if data.AllAttachments[0].Files[0].FileName != "diagram.png" {
		t.Errorf("consolidated file = %+v", data.AllAttachments[0].Files[0])
	}
}

func TestProjectMetaAndFindings(t *testing.T) {
	submitted := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	data := Project(nil, domain.AssessmentState{Findings: "All good."}, submitted, nil, "Acme Corp")

	if data.ClientName != "Acme Corp" {
		t.Errorf("client name = %q", data.ClientName)
	}
	if data.SubmittedDate != "June 15, 2025" {
		t.Errorf("submitted date = %q", data.SubmittedDate)
	}
	if data.GeneratedDate == "" {
		t.Error("generated date empty")
	}
	if data.Findings != "All good." {
		t.Errorf("findings = %q", data.Findings)
	}

	// Zero submission time leaves the field blank.
	blank := Project(nil, domain.AssessmentState{}, time.Time{}, nil, "")
	if blank.SubmittedDate != "" {
		t.Errorf("submitted date = %q, want empty", blank.SubmittedDate)
	}
}

func TestRenderReportHTML(t *testing.T) {
	sections := map[string]domain.Section{
		"A": {Fields: map[string]domain.FieldValue{"company_name": domain.StringValue("Acme & Sons")}},
	}
	review := domain.AssessmentState{Findings: "Migrate to managed databases."}

	html, err := Render(sections, review, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), nil, "Acme & Sons")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		"Section A: Company Information",
		"COMPANY NAME",
		"Acme &amp; Sons",
		"Migrate to managed databases.",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(html, "All Attachments") {
		t.Error("empty attachments still rendered a consolidated block")
	}
}

func TestRenderOmitsFindingsBlockWhenEmpty(t *testing.T) {
	html, err := Render(map[string]domain.Section{"A": {}}, domain.AssessmentState{}, time.Time{}, nil, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(html, "Assessment Findings") {
		t.Error("findings block rendered without findings")
	}
}
