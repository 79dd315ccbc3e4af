package codes

import (
	"strings"

	"github.com/medassist/medassist/pkg/fault"
)

const (
	// DefaultSearchLimit applies when the caller does not give one.
	DefaultSearchLimit = 20
	// MaxSearchLimit caps how many entries a single search returns.
	MaxSearchLimit = 100
)

// Service answers terminology lookups against in-memory code sets.
// Entries are held in insertion order so searches page deterministically.
type Service struct {
	icd10List []ICD10Code
	icd10     map[string]*ICD10Code
	snomed    []SNOMEDConcept
	snomedIdx map[string]*SNOMEDConcept
}

func NewService() *Service {
	s := &Service{
		icd10List: ICD10Codes(),
		icd10:     make(map[string]*ICD10Code),
		snomed:    SNOMEDConcepts(),
		snomedIdx: make(map[string]*SNOMEDConcept),
	}
	for i := range s.icd10List {
		s.icd10[s.icd10List[i].Code] = &s.icd10List[i]
	}
	for i := range s.snomed {
		s.snomedIdx[s.snomed[i].ConceptID] = &s.snomed[i]
	}
	return s
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}

// SearchICD10 matches the query against code and description,
// case-insensitively.
func (s *Service) SearchICD10(query string, limit int) []ICD10Code {
	query = strings.ToLower(strings.TrimSpace(query))
	limit = clampLimit(limit)

	results := []ICD10Code{}
	for _, entry := range s.icd10List {
		if len(results) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(entry.Code), query) ||
			strings.Contains(strings.ToLower(entry.Description), query) {
			results = append(results, entry)
		}
	}
	return results
}

// GetICD10 looks up one code. Codes are stored uppercase.
func (s *Service) GetICD10(code string) (*ICD10Code, error) {
	entry, ok := s.icd10[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, fault.Newf(fault.NotFound, "ICD-10 code %q not found", code)
	}
	return entry, nil
}

// SearchSNOMED matches the query against concept ID, preferred term
// and synonyms.
func (s *Service) SearchSNOMED(query string, limit int) []SNOMEDConcept {
	query = strings.ToLower(strings.TrimSpace(query))
	limit = clampLimit(limit)

	results := []SNOMEDConcept{}
	for _, entry := range s.snomed {
		if len(results) >= limit {
			break
		}
		if s.snomedMatches(entry, query) {
			results = append(results, entry)
		}
	}
	return results
}

func (s *Service) snomedMatches(entry SNOMEDConcept, query string) bool {
	if strings.Contains(entry.ConceptID, query) ||
		strings.Contains(strings.ToLower(entry.Term), query) {
		return true
	}
	for _, syn := range entry.Synonyms {
		if strings.Contains(strings.ToLower(syn), query) {
			return true
		}
	}
	return false
}

// GetSNOMED looks up one concept by its ID.
func (s *Service) GetSNOMED(conceptID string) (*SNOMEDConcept, error) {
	entry, ok := s.snomedIdx[strings.TrimSpace(conceptID)]
	if !ok {
		return nil, fault.Newf(fault.NotFound, "SNOMED concept %q not found", conceptID)
	}
	return entry, nil
}
