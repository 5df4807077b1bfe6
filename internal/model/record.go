// Package model holds the employee record entity, the request payloads that
// carry it over HTTP and the domain errors shared by every layer.
package model

import (
	"time"
)

// Level is the seniority of an employee.
type Level string

const (
	LevelIntern Level = "Intern"
	LevelJunior Level = "Junior"
	LevelSenior Level = "Senior"
)

// Levels lists every valid Level in display order.
var Levels = []Level{LevelIntern, LevelJunior, LevelSenior}

// Valid reports whether l is one of Levels.
func (l Level) Valid() bool {
	for _, level := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// ID identifies a record. Its textual form belongs to the store that
// assigned it (a hex ObjectID for MongoDB, a UUID otherwise) and is only
// produced by a store's ParseID or Insert.
type ID string

func (id ID) String() string {
	return string(id)
}

// Record is one employee record.
//
// The identifier is serialized as "_id" so documents look the same whichever
// store produced them.
type Record struct {
	ID       ID     `json:"_id"`
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Level    Level  `json:"level" validate:"required,oneof=Intern Junior Senior"`

	Created *time.Time `json:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`
}

// Validate checks the user-editable fields.
func (r Record) Validate() error {
	return validationError(validate.Struct(r))
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name     *string `json:"name,omitempty" validate:"omitnil,min=1"`
	Position *string `json:"position,omitempty" validate:"omitnil,min=1"`
	Level    *Level  `json:"level,omitempty" validate:"omitnil,oneof=Intern Junior Senior"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Position == nil && p.Level == nil
}

// Validate rejects empty patches and invalid present fields.
func (p Patch) Validate() error {
	if p.IsEmpty() {
		return &ValidationError{Issues: []Issue{{
			Field:   "body",
			Message: "at least one of name, position or level is required",
		}}}
	}
	return validationError(validate.Struct(p))
}

// Apply returns r with the patch fields merged in.
func (p Patch) Apply(r Record) Record {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Position != nil {
		r.Position = *p.Position
	}
	if p.Level != nil {
		r.Level = *p.Level
	}
	return r
}

// FullPatch turns a complete record into a patch that sets every field.
func FullPatch(r Record) Patch {
	return Patch{Name: &r.Name, Position: &r.Position, Level: &r.Level}
}

// UpdateResult summarizes an update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult summarizes a delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
