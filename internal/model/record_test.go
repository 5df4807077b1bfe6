package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deppfellow/emp-records/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestLevelValid(t *testing.T) {
	for _, l := range Levels {
		assert.True(t, l.Valid(), string(l))
	}
	assert.False(t, Level("Lead").Valid())
	assert.False(t, Level("").Valid())
	assert.False(t, Level("intern").Valid())
}

func TestRecordValidate(t *testing.T) {
	ok := Record{Name: "Ada Lovelace", Position: "Engineer", Level: LevelSenior}
	require.NoError(t, ok.Validate())

	err := Record{Level: "Boss"}.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	fields := map[string]string{}
	for _, issue := range ve.Issues {
		fields[issue.Field] = issue.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["position"])
	assert.Equal(t, "must be one of: Intern Junior Senior", fields["level"])
	assert.Contains(t, err.Error(), "invalid record")
}

func TestPatchValidate(t *testing.T) {
	var ve *ValidationError

	require.ErrorAs(t, Patch{}.Validate(), &ve)
	assert.Equal(t, "body", ve.Issues[0].Field)

	require.NoError(t, Patch{Position: ptr("Manager")}.Validate())

	require.ErrorAs(t, Patch{Name: ptr("")}.Validate(), &ve)
	assert.Equal(t, "name", ve.Issues[0].Field)

	require.ErrorAs(t, Patch{Level: ptr(Level("CEO"))}.Validate(), &ve)
	assert.Equal(t, "level", ve.Issues[0].Field)
}

func TestPatchApply(t *testing.T) {
	base := Record{ID: "1", Name: "A", Position: "B", Level: LevelIntern}

	got := Patch{Level: ptr(LevelJunior)}.Apply(base)
	assert.Equal(t, Record{ID: "1", Name: "A", Position: "B", Level: LevelJunior}, got)

	full := FullPatch(Record{Name: "X", Position: "Y", Level: LevelSenior}).Apply(base)
	assert.Equal(t, "X", full.Name)
	assert.Equal(t, "Y", full.Position)
	assert.Equal(t, LevelSenior, full.Level)
	assert.Equal(t, ID("1"), full.ID)
}

func TestRecordJSONUsesUnderscoreID(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	raw, err := json.Marshal(Record{ID: "abc", Name: "N", Position: "P", Level: LevelIntern, Created: &now})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "abc", m["_id"])
	assert.Contains(t, m, "created")
	assert.NotContains(t, m, "updated")
	assert.NotContains(t, m, "id")
}

func TestCreatePayloadValidate(t *testing.T) {
	p := &CreateRecordPayload{Name: "A", Position: "B", Level: "Senior"}
	require.NoError(t, p.Validate())
	assert.Equal(t, Record{Name: "A", Position: "B", Level: LevelSenior}, p.Record())

	bad := &CreateRecordPayload{Name: "A", Level: "Chief"}
	var verrs validator.ValidationErrors
	require.True(t, errors.As(bad.Validate(), &verrs))
	assert.Len(t, verrs, 2)
}

func TestUpdatePayloadRejectsEmptyPatch(t *testing.T) {
	p := &UpdateRecordPayload{ID: "x"}
	var custom validation.CustomValidationErrors
	require.ErrorAs(t, p.Validate(), &custom)
	assert.Equal(t, "body", custom[0].Field)

	p.Level = ptr(LevelJunior)
	require.NoError(t, p.Validate())
	assert.Equal(t, LevelJunior, *p.Patch().Level)
}

func TestIDPayloadRequiresID(t *testing.T) {
	require.Error(t, (&RecordIDPayload{}).Validate())
	require.NoError(t, (&RecordIDPayload{ID: "abc"}).Validate())
	require.Error(t, (&ReplaceRecordPayload{Name: "a", Position: "b", Level: LevelIntern}).Validate())
}
