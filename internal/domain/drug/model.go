package drug

import (
	"time"

	"github.com/google/uuid"
)

// Severity grades a drug-drug interaction. Values are ordered: none < mild <
// moderate < severe < contraindicated.
type Severity string

const (
	SeverityNone            Severity = "none"
	SeverityMild            Severity = "mild"
	SeverityModerate        Severity = "moderate"
	SeveritySevere          Severity = "severe"
	SeverityContraindicated Severity = "contraindicated"
)

var severityRank = map[Severity]int{
	SeverityNone:            0,
	SeverityMild:            1,
	SeverityModerate:        2,
	SeveritySevere:          3,
	SeverityContraindicated: 4,
}

// Rank returns the ordinal position of the severity. Unknown values rank
// below none.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether s is as severe as other or more so.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// Valid reports whether s is one of the known severity grades.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Drug maps to the drug table.
type Drug struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	GenericName string    `db:"generic_name" json:"generic_name"`
	BrandNames  []string  `db:"brand_names" json:"brand_names"`
	DrugClass   string    `db:"drug_class" json:"drug_class"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// InteractionRecord maps to the drug_interaction table. The pair is stored
// canonically ordered (drug_a <= drug_b) and is unique per pair.
type InteractionRecord struct {
	ID              uuid.UUID `db:"id" json:"id"`
	DrugA           string    `db:"drug_a" json:"drug_a"`
	DrugB           string    `db:"drug_b" json:"drug_b"`
	Severity        Severity  `db:"severity" json:"severity"`
	Description     string    `db:"description" json:"description"`
	Mechanism       *string   `db:"mechanism" json:"mechanism,omitempty"`
	Management      *string   `db:"management" json:"management,omitempty"`
	ClinicalEffects []string  `db:"clinical_effects" json:"clinical_effects,omitempty"`
	Source          *string   `db:"source" json:"source,omitempty"`
	RefreshedAt     time.Time `db:"refreshed_at" json:"refreshed_at"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Interaction is a single finding in a check response.
type Interaction struct {
	DrugA           string   `json:"drug_a"`
	DrugB           string   `json:"drug_b"`
	Severity        Severity `json:"severity"`
	Description     string   `json:"description"`
	Mechanism       string   `json:"mechanism,omitempty"`
	Management      string   `json:"management,omitempty"`
	ClinicalEffects []string `json:"clinical_effects,omitempty"`
	Source          string   `json:"source,omitempty"`
}

// Alternative is a same-class substitution suggestion for a flagged drug.
type Alternative struct {
	For       string `json:"for"`
	Name      string `json:"name"`
	DrugClass string `json:"drug_class"`
}

// CheckRequest is the wire shape of POST /drugs/check.
type CheckRequest struct {
	Drugs []string `json:"drugs"`
}

// CheckResult is the wire shape of the check response.
type CheckResult struct {
	Interactions          []Interaction `json:"interactions"`
	Alternatives          []Alternative `json:"alternatives"`
	Warnings              []string      `json:"warnings"`
	CheckedDrugs          []string      `json:"checked_drugs"`
	HasSevereInteractions bool          `json:"has_severe_interactions"`
	HasContraindications  bool          `json:"has_contraindications"`
}

// DrugInfo combines a catalog entry with its known interactions.
type DrugInfo struct {
	Drug         *Drug                `json:"drug"`
	Interactions []*InteractionRecord `json:"interactions"`
}
