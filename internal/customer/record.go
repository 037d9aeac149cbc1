package customer

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Canonical gender values. Unrecognized input normalizes to GenderOther.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Canonical visit-frequency buckets. Unrecognized or missing input
// normalizes to VisitYearly.
const (
	VisitFirst   = "first"
	VisitWeekly  = "weekly"
	VisitMonthly = "monthly"
	VisitYearly  = "yearly"
)

// ExtensionField holds the answer to a schema field with no canonical role,
// labeled with the field's name as it read at submission time. The label is
// the only reliable display name: later schema edits never rewrite stored
// records, so the field id may no longer resolve against the current schema.
type ExtensionField struct {
	Label string `json:"label"`
	Value Value  `json:"value"`
}

// Record is one submitted piece of feedback, shaped by whatever schema was
// active at submission time. ID and SubmittedAt are set once at creation and
// never change.
type Record struct {
	ID                 string                    `json:"id"`
	Name               string                    `json:"name"`
	Age                int                       `json:"age"`
	Gender             string                    `json:"gender"`
	Phone              string                    `json:"phone"`
	Email              string                    `json:"email"`
	Place              string                    `json:"place"`
	FavoriteDish       string                    `json:"favoriteDish"`
	VisitFrequency     string                    `json:"visitFrequency"`
	DietaryPreferences []string                  `json:"dietaryPreferences"`
	ExtensionFields    map[string]ExtensionField `json:"extensionFields,omitempty"`
	SubmittedAt        time.Time                 `json:"submittedAt"`
}

// NewID returns a fresh record identifier. ULIDs sort by creation time,
// which keeps insertion order recoverable even outside the store.
func NewID() string {
	return ulid.Make().String()
}
