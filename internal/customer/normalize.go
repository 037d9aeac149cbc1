package customer

import (
	"strconv"
	"strings"
	"time"

	"relish/internal/form"
)

// visitLabels maps the literal choice labels offered on the form to the
// canonical buckets. Anything else, including an absent field, falls back to
// VisitYearly.
var visitLabels = map[string]string{
	"First Time": VisitFirst,
	"Weekly":     VisitWeekly,
	"Monthly":    VisitMonthly,
}

// Normalize converts a raw answer bag, keyed by field id, into a canonical
// record against the schema snapshot the form was rendered from. Fields with
// a role feed the fixed attributes; everything else lands in the extension
// bag keyed by field id. It never fails: unparseable or missing input
// degrades to documented defaults so a submission always goes through.
func Normalize(schema form.Schema, raw map[string]Value, now time.Time) Record {
	rec := Record{
		ID:                 NewID(),
		Gender:             GenderOther,
		VisitFrequency:     VisitYearly,
		DietaryPreferences: []string{},
		SubmittedAt:        now,
	}

	for _, f := range schema {
		v := raw[f.ID]
		switch f.Role {
		case form.RoleName:
			rec.Name = v.AsString()
		case form.RoleAge:
			rec.Age = parseAge(v)
		case form.RoleGender:
			rec.Gender = parseGender(v)
		case form.RolePhone:
			rec.Phone = v.AsString()
		case form.RoleEmail:
			rec.Email = v.AsString()
		case form.RolePlace:
			rec.Place = v.AsString()
		case form.RoleFavoriteDish:
			rec.FavoriteDish = v.AsString()
		case form.RoleVisitFrequency:
			rec.VisitFrequency = parseVisit(v)
		case form.RoleDietary:
			if list, ok := v.AsList(); ok {
				rec.DietaryPreferences = append([]string{}, list...)
			}
		default:
			if rec.ExtensionFields == nil {
				rec.ExtensionFields = make(map[string]ExtensionField)
			}
			rec.ExtensionFields[f.ID] = ExtensionField{Label: f.Name, Value: v}
		}
	}
	return rec
}

func parseAge(v Value) int {
	var n int
	if f, ok := v.AsNumber(); ok {
		n = int(f)
	} else {
		parsed, err := strconv.Atoi(strings.TrimSpace(v.AsString()))
		if err != nil {
			return 0
		}
		n = parsed
	}
	if n < 0 {
		return 0
	}
	return n
}

func parseGender(v Value) string {
	switch strings.ToLower(strings.TrimSpace(v.AsString())) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	default:
		return GenderOther
	}
}

func parseVisit(v Value) string {
	if bucket, ok := visitLabels[v.AsString()]; ok {
		return bucket
	}
	return VisitYearly
}
