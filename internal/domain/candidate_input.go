package domain

import (
	"bytes"
	"encoding/json"
)

// CandidateInput is the raw body accepted when creating a candidate. Text fields
// holding a non-string JSON value still decode; they are flagged so validation
// reports the message of the rule they break instead of a generic body error.
type CandidateInput struct {
	FirstName       string                `json:"firstName" example:"José María"`
	LastName        string                `json:"lastName" example:"García-Martínez"`
	Email           string                `json:"email" example:"jose.garcia@example.com"`
	Phone           string                `json:"phone,omitempty" example:"666555444"`
	Address         string                `json:"address,omitempty" example:"123 Main St"`
	Educations      []EducationInput      `json:"educations,omitempty"`
	WorkExperiences []WorkExperienceInput `json:"workExperiences,omitempty"`
	CV              *CVInput              `json:"cv,omitempty"`

	wrongType fieldSet
}

func (in *CandidateInput) UnmarshalJSON(data []byte) error {
	var decoded CandidateInput
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	decoded.wrongType = decodeText(raw, map[string]*string{
		"firstName": &decoded.FirstName,
		"lastName":  &decoded.LastName,
		"email":     &decoded.Email,
		"phone":     &decoded.Phone,
		"address":   &decoded.Address,
	})
	if err := decodeList(raw["educations"], &decoded.Educations); err != nil {
		return err
	}
	if err := decodeList(raw["workExperiences"], &decoded.WorkExperiences); err != nil {
		return err
	}
	if v, ok := raw["cv"]; ok && !isNull(v) {
		decoded.CV = &CVInput{}
		if err := decoded.CV.UnmarshalJSON(v); err != nil {
			return err
		}
	}
	*in = decoded
	return nil
}

// WrongType reports whether the JSON value of field was not a string.
func (in *CandidateInput) WrongType(field string) bool {
	return in.wrongType.has(field)
}

type EducationInput struct {
	Institution string `json:"institution" example:"University"`
	Title       string `json:"title" example:"Computer Science"`
	StartDate   string `json:"startDate" example:"2020-01-01"`
	EndDate     string `json:"endDate,omitempty" example:"2024-01-01"`

	wrongType fieldSet
}

// UnmarshalJSON accepts any JSON value. An entry that is not an object has
// every field flagged.
func (e *EducationInput) UnmarshalJSON(data []byte) error {
	var decoded EducationInput
	raw, err := decodeObject(data)
	if err != nil {
		*e = EducationInput{wrongType: fieldSet{anyField: true}}
		return nil
	}
	decoded.wrongType = decodeText(raw, map[string]*string{
		"institution": &decoded.Institution,
		"title":       &decoded.Title,
		"startDate":   &decoded.StartDate,
		"endDate":     &decoded.EndDate,
	})
	*e = decoded
	return nil
}

func (e *EducationInput) WrongType(field string) bool {
	return e.wrongType.has(field)
}

type WorkExperienceInput struct {
	Company     string `json:"company" example:"Tech Corp"`
	Position    string `json:"position" example:"Developer"`
	Description string `json:"description,omitempty" example:"Full Stack Development"`
	StartDate   string `json:"startDate" example:"2020-01-01"`
	EndDate     string `json:"endDate,omitempty" example:"2024-01-01"`

	wrongType fieldSet
}

func (w *WorkExperienceInput) UnmarshalJSON(data []byte) error {
	var decoded WorkExperienceInput
	raw, err := decodeObject(data)
	if err != nil {
		*w = WorkExperienceInput{wrongType: fieldSet{anyField: true}}
		return nil
	}
	decoded.wrongType = decodeText(raw, map[string]*string{
		"company":     &decoded.Company,
		"position":    &decoded.Position,
		"description": &decoded.Description,
		"startDate":   &decoded.StartDate,
		"endDate":     &decoded.EndDate,
	})
	*w = decoded
	return nil
}

func (w *WorkExperienceInput) WrongType(field string) bool {
	return w.wrongType.has(field)
}

// CVInput is the resume metadata of a submission. A cv value that is not a JSON
// object still decodes, flagged as malformed, so validation can reject it with
// its own message instead of a generic body error.
type CVInput struct {
	FilePath string `json:"filePath" example:"/path/to/cv.pdf"`
	FileType string `json:"fileType" example:"application/pdf"`

	malformed bool
}

func (c *CVInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*c = CVInput{malformed: true}
		return nil
	}

	type plain CVInput
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		*c = CVInput{malformed: true}
		return nil
	}
	*c = CVInput(p)
	return nil
}

// IsObject reports whether the cv value was a JSON object.
func (c *CVInput) IsObject() bool {
	return c != nil && !c.malformed
}

// HasData reports whether at least one cv field is populated.
func (c *CVInput) HasData() bool {
	return c.IsObject() && (c.FilePath != "" || c.FileType != "")
}

// CandidateUpdate is the body of an update. Nil collections are left untouched;
// a supplied collection (even empty) replaces the stored one.
type CandidateUpdate struct {
	ID              int64                 `json:"id"`
	FirstName       *string               `json:"firstName,omitempty"`
	LastName        *string               `json:"lastName,omitempty"`
	Educations      []EducationInput      `json:"educations,omitempty"`
	WorkExperiences []WorkExperienceInput `json:"workExperiences,omitempty"`

	wrongType fieldSet
}

func (u *CandidateUpdate) UnmarshalJSON(data []byte) error {
	var decoded CandidateUpdate
	raw, err := decodeObject(data)
	if err != nil {
		return err
	}
	// The id in the path wins, so a bad one here is ignored.
	if v, ok := raw["id"]; ok {
		_ = json.Unmarshal(v, &decoded.ID)
	}

	var first, last string
	decoded.wrongType = decodeText(raw, map[string]*string{
		"firstName": &first,
		"lastName":  &last,
	})
	if present(raw, "firstName") {
		decoded.FirstName = &first
	}
	if present(raw, "lastName") {
		decoded.LastName = &last
	}

	if err := decodeList(raw["educations"], &decoded.Educations); err != nil {
		return err
	}
	if err := decodeList(raw["workExperiences"], &decoded.WorkExperiences); err != nil {
		return err
	}
	*u = decoded
	return nil
}

func (u *CandidateUpdate) WrongType(field string) bool {
	return u.wrongType.has(field)
}

// anyField marks every field of an entry that was not a JSON object.
const anyField = "*"

type fieldSet map[string]bool

func (s fieldSet) has(field string) bool {
	return s[anyField] || s[field]
}

func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// decodeText fills each target from its JSON field and returns the fields whose
// value was not a string. Absent and null fields leave the target empty.
func decodeText(raw map[string]json.RawMessage, targets map[string]*string) fieldSet {
	var wrong fieldSet
	for field, dst := range targets {
		v, ok := raw[field]
		if !ok || isNull(v) {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			if wrong == nil {
				wrong = fieldSet{}
			}
			wrong[field] = true
		}
	}
	return wrong
}

// decodeList leaves dst nil for an absent or null list.
func decodeList(v json.RawMessage, dst any) error {
	if v == nil || isNull(v) {
		return nil
	}
	return json.Unmarshal(v, dst)
}

func present(raw map[string]json.RawMessage, field string) bool {
	v, ok := raw[field]
	return ok && !isNull(v)
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
