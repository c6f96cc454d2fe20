package usecase

import (
	"github.com/remedian-lab/remedian/pkg/domain/model"
)

// payloadValidation aggregates field-level validation across a payload
type payloadValidation struct {
	Errors   []string
	Warnings []string
}

// checkRequired validates a required field and writes the sanitized value
// back into the payload
func (uc *ConfirmationUseCase) checkRequired(pv *payloadValidation, field string, value *string) {
	result := uc.validator.ValidateField(field, *value)
	if !result.Accepted {
		pv.Errors = append(pv.Errors, result.Errors...)
		return
	}
	pv.Warnings = append(pv.Warnings, result.Warnings...)
	*value = result.Sanitized
}

// checkOptional validates an optional field, skipping empty values
func (uc *ConfirmationUseCase) checkOptional(pv *payloadValidation, field string, value *string) {
	if value == nil || *value == "" {
		return
	}
	uc.checkRequired(pv, field, value)
}

// validatePayload runs structural validation followed by field-level
// screening. Field errors and structural errors are merged; the payload's
// text fields are sanitized in place when accepted.
func (uc *ConfirmationUseCase) validatePayload(payload model.ActionPayload) payloadValidation {
	var pv payloadValidation

	type structural interface {
		Validate() error
	}
	if v, ok := payload.(structural); ok {
		if err := v.Validate(); err != nil {
			pv.Errors = append(pv.Errors, err.Error())
			return pv
		}
	}

	switch p := payload.(type) {
	case *model.IncidentCreateRequest:
		uc.checkRequired(&pv, "summary", &p.Summary)
		uc.checkRequired(&pv, "description", &p.Description)
		uc.checkOptional(&pv, "name", &p.RequesterFirstName)
		uc.checkOptional(&pv, "name", &p.RequesterLastName)
		uc.checkOptional(&pv, "category", &p.CategoryTier1)
		uc.checkOptional(&pv, "category", &p.CategoryTier2)
		uc.checkOptional(&pv, "category", &p.CategoryTier3)
		uc.checkOptional(&pv, "group", &p.AssignedGroup)

	case *model.IncidentUpdateRequest:
		uc.checkOptional(&pv, "summary", p.Summary)
		uc.checkOptional(&pv, "description", p.Description)
		uc.checkOptional(&pv, "description", p.Resolution)
		uc.checkOptional(&pv, "work_log", p.WorkLog)
		uc.checkOptional(&pv, "category", p.CategoryTier1)
		uc.checkOptional(&pv, "category", p.CategoryTier2)
		uc.checkOptional(&pv, "category", p.CategoryTier3)
		uc.checkOptional(&pv, "group", p.AssignedGroup)

	case *model.WorkOrderCreateRequest:
		uc.checkRequired(&pv, "summary", &p.Summary)
		uc.checkRequired(&pv, "description", &p.Description)
		uc.checkOptional(&pv, "name", &p.RequesterFirstName)
		uc.checkOptional(&pv, "name", &p.RequesterLastName)
		uc.checkOptional(&pv, "category", &p.CategoryTier1)
		uc.checkOptional(&pv, "category", &p.CategoryTier2)
		uc.checkOptional(&pv, "category", &p.CategoryTier3)
		uc.checkOptional(&pv, "group", &p.AssignedGroup)

	case *model.WorkOrderUpdateRequest:
		uc.checkOptional(&pv, "summary", p.Summary)
		uc.checkOptional(&pv, "description", p.Description)
		uc.checkOptional(&pv, "work_log", p.WorkLog)
		uc.checkOptional(&pv, "group", p.AssignedGroup)
	}

	return pv
}
