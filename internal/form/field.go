package form

import (
	"fmt"

	"relish/internal/errors"
)

// Kind identifies the input type of a form field. It controls both how the
// field is rendered and the shape of the raw value it produces (multi-choice
// fields yield string lists, number fields yield numbers, everything else
// yields strings).
type Kind string

const (
	KindText         Kind = "text"
	KindNumber       Kind = "number"
	KindEmail        Kind = "email"
	KindPhone        Kind = "phone"
	KindMultiline    Kind = "multiline"
	KindSingleChoice Kind = "single-choice"
	KindMultiChoice  Kind = "multi-choice"
)

// NeedsChoices reports whether fields of this kind carry a choice list.
func (k Kind) NeedsChoices() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

// Valid reports whether k is a known field kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindNumber, KindEmail, KindPhone, KindMultiline,
		KindSingleChoice, KindMultiChoice:
		return true
	}
	return false
}

// Role tags a field with the canonical record attribute it feeds. The field
// name stays purely cosmetic: renaming "Age" to "Your age" does not break
// numeric parsing as long as the role survives. Fields without a role land in
// the record's extension bag.
type Role string

const (
	RoleNone           Role = ""
	RoleName           Role = "name"
	RoleAge            Role = "age"
	RoleGender         Role = "gender"
	RolePhone          Role = "phone"
	RoleEmail          Role = "email"
	RolePlace          Role = "place"
	RoleFavoriteDish   Role = "favoriteDish"
	RoleVisitFrequency Role = "visitFrequency"
	RoleDietary        Role = "dietaryPreferences"
)

// wellKnownNames maps the literal default-field labels to roles. Used to
// backfill roles on schemas persisted before roles existed; the match is
// exact and case-sensitive, mirroring how those schemas were interpreted.
var wellKnownNames = map[string]Role{
	"Name":                                    RoleName,
	"Age":                                     RoleAge,
	"Gender":                                  RoleGender,
	"Phone Number":                            RolePhone,
	"Email":                                   RoleEmail,
	"Where are you from?":                     RolePlace,
	"What's your favorite dish from our menu?": RoleFavoriteDish,
	"How often do you visit us?":              RoleVisitFrequency,
	"Dietary Preferences":                     RoleDietary,
}

// RoleForName returns the role historically associated with a literal field
// label, or RoleNone.
func RoleForName(name string) Role {
	return wellKnownNames[name]
}

// Field is a single form field definition. Schema order is significant: it
// defines the form layout and is the only ordering mechanism.
type Field struct {
	// ID is a stable identifier, unique within the schema.
	ID string `json:"id"`

	// Name is the human-readable label shown on the form.
	Name string `json:"name"`

	// Kind is the input type.
	Kind Kind `json:"kind"`

	// Required marks the field as mandatory on the public form.
	Required bool `json:"required"`

	// Choices is the ordered option list; present iff the kind needs one.
	Choices []string `json:"choices,omitempty"`

	// Role ties the field to a canonical record attribute (may be empty).
	Role Role `json:"role,omitempty"`
}

// Schema is the ordered field list that defines the public form.
type Schema []Field

// Default returns the built-in nine-field schema used when nothing has been
// persisted yet.
func Default() Schema {
	return Schema{
		{ID: "1", Name: "Name", Kind: KindText, Required: true, Role: RoleName},
		{ID: "2", Name: "Age", Kind: KindNumber, Required: true, Role: RoleAge},
		{ID: "3", Name: "Gender", Kind: KindSingleChoice, Required: true,
			Choices: []string{"Male", "Female", "Other"}, Role: RoleGender},
		{ID: "4", Name: "Phone Number", Kind: KindPhone, Required: true, Role: RolePhone},
		{ID: "5", Name: "Email", Kind: KindEmail, Required: true, Role: RoleEmail},
		{ID: "6", Name: "Where are you from?", Kind: KindText, Required: true, Role: RolePlace},
		{ID: "7", Name: "What's your favorite dish from our menu?", Kind: KindText, Required: true, Role: RoleFavoriteDish},
		{ID: "8", Name: "How often do you visit us?", Kind: KindSingleChoice, Required: true,
			Choices: []string{"First Time", "Weekly", "Monthly", "Yearly"}, Role: RoleVisitFrequency},
		{ID: "9", Name: "Dietary Preferences", Kind: KindMultiChoice, Required: false,
			Choices: []string{"Vegetarian", "Non-Vegetarian", "Vegan", "Gluten-Free"}, Role: RoleDietary},
	}
}

// FieldByID returns the field with the given id and whether it exists.
func (s Schema) FieldByID(id string) (Field, bool) {
	for _, f := range s {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// FieldByRole returns the first field carrying the given role.
func (s Schema) FieldByRole(role Role) (Field, bool) {
	if role == RoleNone {
		return Field{}, false
	}
	for _, f := range s {
		if f.Role == role {
			return f, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy so callers can mutate freely.
func (s Schema) Clone() Schema {
	out := make(Schema, len(s))
	for i, f := range s {
		out[i] = f
		if f.Choices != nil {
			out[i].Choices = append([]string(nil), f.Choices...)
		}
	}
	return out
}

// Validate checks structural well-formedness: unique non-empty ids, known
// kinds, and a choice list present exactly when the kind needs one. Semantic
// consistency with stored records is the caller's responsibility.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, f := range s {
		if f.ID == "" {
			return errors.NewInvalidRequest(fmt.Sprintf("field %q has no id", f.Name))
		}
		if seen[f.ID] {
			return errors.NewInvalidRequest(fmt.Sprintf("duplicate field id %q", f.ID))
		}
		seen[f.ID] = true
		if !f.Kind.Valid() {
			return errors.NewInvalidRequest(fmt.Sprintf("field %q has unknown kind %q", f.ID, f.Kind))
		}
		if f.Kind.NeedsChoices() && len(f.Choices) == 0 {
			return errors.NewInvalidRequest(fmt.Sprintf("field %q requires choices", f.ID))
		}
		if !f.Kind.NeedsChoices() && len(f.Choices) > 0 {
			return errors.NewInvalidRequest(fmt.Sprintf("field %q must not carry choices", f.ID))
		}
	}
	return nil
}
