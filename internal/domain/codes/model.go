package codes

// ICD10Code is a diagnostic code entry.
type ICD10Code struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Includes    []string `json:"includes"`
	Excludes    []string `json:"excludes"`
}

// SNOMEDConcept is a clinical terminology entry.
type SNOMEDConcept struct {
	ConceptID    string   `json:"concept_id"`
	Term         string   `json:"term"`
	SemanticType string   `json:"semantic_type"`
	Synonyms     []string `json:"synonyms"`
}
