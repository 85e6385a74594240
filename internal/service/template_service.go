package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alphacloud/assessment-portal/internal/domain"
	"alphacloud/assessment-portal/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTemplateInvalid  = errors.New("template invalid")
	ErrTemplateNotFound = errors.New("template not found")
)

// ParsedTemplate is the outcome of parsing a template text document.
type ParsedTemplate struct {
	Title       string                     `json:"title"`
	Description string                     `json:"description"`
	Sections    []domain.SectionDefinition `json:"sections"`
}

// TemplateService parses template documents and manages stored templates.
type TemplateService interface {
	Parse(rawText string) (*ParsedTemplate, error)
	Upload(ctx context.Context, title, description string, sections []domain.SectionDefinition, createdBy string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
	Get(ctx context.Context, templateID string) (*domain.Template, error)
	Delete(ctx context.Context, templateID string) error
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

// Parse runs the line-oriented template grammar. Directive lines carry a
// fixed case-sensitive prefix; every other non-blank line is ignored. A
// SECTION: line flushes the in-progress question and section; a QUESTION:
// line flushes the in-progress question; end of input flushes both.
func (s *templateService) Parse(rawText string) (*ParsedTemplate, error) {
	template := &ParsedTemplate{Sections: []domain.SectionDefinition{}}

	var currentSection *domain.SectionDefinition
	var currentQuestion *domain.FieldDefinition

	flushQuestion := func() {
		if currentQuestion != nil && currentSection != nil {
			currentSection.Fields = append(currentSection.Fields, *currentQuestion)
		}
		currentQuestion = nil
	}
	flushSection := func() {
		if currentSection != nil {
			template.Sections = append(template.Sections, *currentSection)
		}
		currentSection = nil
	}

	for _, rawLine := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Questionnaire Title:"):
			template.Title = strings.TrimSpace(strings.TrimPrefix(line, "Questionnaire Title:"))
		case strings.HasPrefix(line, "Description:"):
			template.Description = strings.TrimSpace(strings.TrimPrefix(line, "Description:"))
		case strings.HasPrefix(line, "SECTION:"):
			flushQuestion()
			flushSection()
			currentSection = &domain.SectionDefinition{
				ID:     strings.TrimSpace(strings.TrimPrefix(line, "SECTION:")),
				Fields: []domain.FieldDefinition{},
			}
		case strings.HasPrefix(line, "TITLE:"):
			if currentSection != nil {
				currentSection.Title = strings.TrimSpace(strings.TrimPrefix(line, "TITLE:"))
			}
		case strings.HasPrefix(line, "DESCRIPTION:"):
			if currentSection != nil {
				currentSection.Description = strings.TrimSpace(strings.TrimPrefix(line, "DESCRIPTION:"))
			}
		case strings.HasPrefix(line, "QUESTION:"):
			flushQuestion()
			currentQuestion = &domain.FieldDefinition{
				Label:   strings.TrimSpace(strings.TrimPrefix(line, "QUESTION:")),
				Type:    domain.FieldTypeText,
				Options: []string{},
			}
		case strings.HasPrefix(line, "FIELD_NAME:"):
			if currentQuestion != nil {
				currentQuestion.Name = strings.TrimSpace(strings.TrimPrefix(line, "FIELD_NAME:"))
			}
		case strings.HasPrefix(line, "FIELD_TYPE:"):
			if currentQuestion != nil {
				currentQuestion.Type = domain.FieldType(strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "FIELD_TYPE:"))))
			}
		case strings.HasPrefix(line, "REQUIRED:"):
			if currentQuestion != nil {
				currentQuestion.Required = strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(line, "REQUIRED:")), "true")
			}
		case strings.HasPrefix(line, "HINT:"):
			if currentQuestion != nil {
				currentQuestion.Hint = strings.TrimSpace(strings.TrimPrefix(line, "HINT:"))
			}
		case strings.HasPrefix(line, "OPTIONS:"):
			if currentQuestion != nil {
				parts := strings.Split(strings.TrimSpace(strings.TrimPrefix(line, "OPTIONS:")), "|")
				options := make([]string, 0, len(parts))
				for _, part := range parts {
					options = append(options, strings.TrimSpace(part))
				}
				currentQuestion.Options = options
			}
		}
	}

	flushQuestion()
	flushSection()

	if err := validateTemplate(template); err != nil {
		return nil, err
	}
	return template, nil
}

// validateTemplate reports the first violation found.
func validateTemplate(template *ParsedTemplate) error {
	if template.Title == "" {
		return fmt.Errorf("%w: template title is required", ErrTemplateInvalid)
	}
	if len(template.Sections) == 0 {
		return fmt.Errorf("%w: at least one section is required", ErrTemplateInvalid)
	}
	for _, section := range template.Sections {
		if section.Title == "" {
			return fmt.Errorf("%w: section %s must have a title", ErrTemplateInvalid, section.ID)
		}
		if len(section.Fields) == 0 {
			return fmt.Errorf("%w: section %s must have at least one question", ErrTemplateInvalid, section.ID)
		}
		for _, field := range section.Fields {
			if field.Name == "" {
				return fmt.Errorf("%w: question in section %s must have a field name", ErrTemplateInvalid, section.ID)
			}
			if field.Label == "" {
				return fmt.Errorf("%w: question in section %s must have a label", ErrTemplateInvalid, section.ID)
			}
		}
	}
	return nil
}

// Upload stores a new template.
func (s *templateService) Upload(ctx context.Context, title, description string, sections []domain.SectionDefinition, createdBy string) (*domain.Template, error) {
	if title == "" || len(sections) == 0 {
		return nil, fmt.Errorf("%w: template data and title are required", ErrTemplateInvalid)
	}
	if createdBy == "" {
		createdBy = "system"
	}

	tmpl := &domain.Template{
		Title:       title,
		Description: description,
		Sections:    sections,
		CreatedBy:   createdBy,
	}
	id, err := s.templateRepo.Create(ctx, tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	tmpl.ID = id
	return tmpl, nil
}

// List returns all active templates, newest first.
func (s *templateService) List(ctx context.Context) ([]domain.Template, error) {
	templates, err := s.templateRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return templates, nil
}

// Get returns one template by id.
func (s *templateService) Get(ctx context.Context, templateID string) (*domain.Template, error) {
	id, err := primitive.ObjectIDFromHex(templateID)
	if err != nil {
		return nil, ErrTemplateNotFound
	}
	tmpl, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return tmpl, nil
}

// Delete soft-deletes a template.
func (s *templateService) Delete(ctx context.Context, templateID string) error {
	id, err := primitive.ObjectIDFromHex(templateID)
	if err != nil {
		return ErrTemplateNotFound
	}
	if err := s.templateRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("%w: %v", ErrStoreWriteFailed, err)
	}
	return nil
}
