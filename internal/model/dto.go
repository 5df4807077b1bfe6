package model

import (
	"github.com/deppfellow/emp-records/internal/validation"
)

// ListRecordsPayload carries no input.
type ListRecordsPayload struct{}

func (p *ListRecordsPayload) Validate() error {
	return nil
}

// RecordIDPayload addresses one record by its path id.
type RecordIDPayload struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (p *RecordIDPayload) Validate() error {
	return validate.Struct(p)
}

// CreateRecordPayload is the body of POST /record.
type CreateRecordPayload struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Level    Level  `json:"level" validate:"required,oneof=Intern Junior Senior"`
}

func (p *CreateRecordPayload) Validate() error {
	return validate.Struct(p)
}

func (p *CreateRecordPayload) Record() Record {
	return Record{Name: p.Name, Position: p.Position, Level: p.Level}
}

// UpdateRecordPayload is the body of PATCH /record/:id.
type UpdateRecordPayload struct {
	ID       string  `param:"id" json:"-" validate:"required"`
	Name     *string `json:"name" validate:"omitnil,min=1"`
	Position *string `json:"position" validate:"omitnil,min=1"`
	Level    *Level  `json:"level" validate:"omitnil,oneof=Intern Junior Senior"`
}

func (p *UpdateRecordPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.Patch().IsEmpty() {
		return validation.CustomValidationErrors{{
			Field:   "body",
			Message: "at least one of name, position or level is required",
		}}
	}
	return nil
}

func (p *UpdateRecordPayload) Patch() Patch {
	return Patch{Name: p.Name, Position: p.Position, Level: p.Level}
}

// ReplaceRecordPayload is the body of PUT /record/:id.
type ReplaceRecordPayload struct {
	ID       string `param:"id" json:"-" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Level    Level  `json:"level" validate:"required,oneof=Intern Junior Senior"`
}

func (p *ReplaceRecordPayload) Validate() error {
	return validate.Struct(p)
}

func (p *ReplaceRecordPayload) Record() Record {
	return Record{Name: p.Name, Position: p.Position, Level: p.Level}
}
