package service

import (
	"time"

	"alphacloud/assessment-portal/internal/domain"
)

// ApplyUpdate is the assessment-document merge engine. It never mutates its
// inputs; callers persist the returned document.
//
// With no existing document it constructs a fresh one. With an existing
// document it shallow-merges sections key-wise: an incoming section fully
// replaces the stored section for that key and all other keys are carried
// over untouched. The submit flag marks the questionnaire submitted and
// stamps submitted_at; on an existing document it deliberately does NOT
// touch assessment.status, matching the portal's historical behavior.
func ApplyUpdate(existing *domain.AssessmentDocument, incoming map[string]domain.Section, submit bool, now time.Time) *domain.AssessmentDocument {
	if existing == nil {
		status := domain.StatusPending
		var submittedAt *time.Time
		if submit {
			status = domain.StatusSubmitted
			ts := now
			submittedAt = &ts
		}
		sections := incoming
		if sections == nil {
			sections = map[string]domain.Section{}
		}
		return &domain.AssessmentDocument{
			Sections: sections,
			Assessment: domain.AssessmentState{
				Status:      status,
				Findings:    "",
				Attachments: []domain.UploadRecord{},
				Submitted:   submit,
				SubmittedAt: submittedAt,
			},
			Timestamps: domain.Timestamps{
				Created: now,
				Updated: now,
			},
		}
	}

	updated := *existing

	merged := make(map[string]domain.Section, len(existing.Sections)+len(incoming))
	for key, section := range existing.Sections {
		merged[key] = section
	}
	for key, section := range incoming {
		merged[key] = section
	}
	updated.Sections = merged

	updated.Timestamps.Updated = now

	if submit {
		updated.Assessment.Submitted = true
		ts := now
		updated.Assessment.SubmittedAt = &ts
	}

	return &updated
}

// AppendUpload merges one upload record into a section. Unlike ApplyUpdate
// this path deep-merges at the section level: the section's fields stay
// untouched and the record is appended to its uploads, never replacing an
// earlier one. The input document is not mutated.
func AppendUpload(existing *domain.AssessmentDocument, sectionKey string, record domain.UploadRecord, now time.Time) *domain.AssessmentDocument {
	updated := *existing

	merged := make(map[string]domain.Section, len(existing.Sections)+1)
	for key, section := range existing.Sections {
		merged[key] = section
	}

	section := merged[sectionKey]
	uploads := make([]domain.UploadRecord, 0, len(section.Uploads)+1)
	uploads = append(uploads, section.Uploads...)
	uploads = append(uploads, record)
	section.Uploads = uploads
	merged[sectionKey] = section

	updated.Sections = merged
	updated.Timestamps.Updated = now

	return &updated
}
