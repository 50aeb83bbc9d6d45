package models

import (
	"bytes"
	"encoding/json"
)

// Lead form field names, also used as ValidationErrors keys
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldPhone = "phone"
	FieldAgree = "agree"
)

// LeadForm is the transient state of the landing-page contact form.
// It is never persisted by the submitting side.
type LeadForm struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
	Agree bool   `form:"agree" json:"agree"`
}

// Payload returns the wire body for the form. The agree flag is not transmitted.
func (f LeadForm) Payload() LeadPayload {
	return LeadPayload{
		Name:  f.Name,
		Email: f.Email,
		Phone: f.Phone,
	}
}

// ValidationErrors maps a field name to a human-readable message.
// A key is present only while that field fails validation.
type ValidationErrors map[string]string

// Valid reports whether no field is failing
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Get returns the message for a field, or "" when the field is valid
func (v ValidationErrors) Get(field string) string {
	if v == nil {
		return ""
	}
	return v[field]
}

// LeadPayload is the JSON body posted to the lead endpoint
type LeadPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SendFormResponse is the JSON body returned by the lead endpoint
type SendFormResponse struct {
	Success Truthy `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Truthy decodes a loosely typed success flag the way a browser would coerce it:
// true, non-zero numbers and non-empty strings are true; false, 0, "", null are false.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case bool:
		*t = Truthy(val)
	case float64:
		*t = Truthy(val != 0)
	case string:
		*t = Truthy(val != "")
	case nil:
		*t = false
	default:
		// objects and arrays are truthy
		*t = true
	}
	return nil
}
