package drug

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/medassist/medassist/pkg/fault"
)

// MaxCheckDrugs caps the size of a single interaction check.
const MaxCheckDrugs = 10

const (
	maxAlternativesPerDrug = 2
	maxAlternativesTotal   = 5
)

// Service resolves drug-drug interactions against the cache store, falling
// back to the external knowledge source on a miss.
type Service struct {
	drugs         DrugRepository
	interactions  InteractionRepository
	source        KnowledgeSource
	aliases       *AliasTable
	cacheTTL      time.Duration
	lookupTimeout time.Duration
}

func NewService(drugs DrugRepository, interactions InteractionRepository, source KnowledgeSource,
	aliases *AliasTable, cacheTTL, lookupTimeout time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 720 * time.Hour
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 5 * time.Second
	}
	return &Service{
		drugs:         drugs,
		interactions:  interactions,
		source:        source,
		aliases:       aliases,
		cacheTTL:      cacheTTL,
		lookupTimeout: lookupTimeout,
	}
}

// Check canonicalizes the requested names, enumerates every unordered pair of
// the distinct results and resolves each pair through the cache. Fewer than
// two distinct drugs yields an empty result, not an error.
func (s *Service) Check(ctx context.Context, names []string) (*CheckResult, error) {
	if len(names) > MaxCheckDrugs {
		return nil, fault.Newf(fault.TooManyDrugs,
			"at most %d drugs may be checked at once, got %d", MaxCheckDrugs, len(names))
	}

	checked := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		canonical, err := s.aliases.Canonicalize(name)
		if err != nil {
			return nil, err
		}
		if !seen[canonical] {
			seen[canonical] = true
			checked = append(checked, canonical)
		}
	}

	result := &CheckResult{
		Interactions: []Interaction{},
		Alternatives: []Alternative{},
		Warnings:     []string{},
		CheckedDrugs: checked,
	}
	if len(checked) < 2 {
		return result, nil
	}

	ordered := make([]string, len(checked))
	copy(ordered, checked)
	sort.Strings(ordered)

	var findings []*InteractionRecord
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			rec, err := s.resolvePair(ctx, ordered[i], ordered[j])
			if err != nil {
				return nil, err
			}
			if rec != nil && rec.Severity != SeverityNone {
				findings = append(findings, rec)
			}
		}
	}

	// Pairs are enumerated in lexical order, so a stable sort by severity
	// keeps lexical order within each grade.
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() > findings[j].Severity.Rank()
	})

	for _, rec := range findings {
		inter := Interaction{
			DrugA:           rec.DrugA,
			DrugB:           rec.DrugB,
			Severity:        rec.Severity,
			Description:     rec.Description,
			ClinicalEffects: rec.ClinicalEffects,
		}
		if rec.Mechanism != nil {
			inter.Mechanism = *rec.Mechanism
		}
		if rec.Management != nil {
			inter.Management = *rec.Management
		}
		if rec.Source != nil {
			inter.Source = *rec.Source
		}
		result.Interactions = append(result.Interactions, inter)

		if rec.Severity.AtLeast(SeveritySevere) {
			result.HasSevereInteractions = true
		}
		if rec.Severity == SeverityContraindicated {
			result.HasContraindications = true
		}
		if rec.Severity.AtLeast(SeverityModerate) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s + %s - %s",
				strings.ToUpper(string(rec.Severity)), rec.DrugA, rec.DrugB, rec.Description))
		}
	}

	alts, err := s.alternatives(ctx, findings, seen)
	if err != nil {
		return nil, err
	}
	result.Alternatives = alts

	return result, nil
}

// resolvePair serves the pair from the cache when fresh. On a miss or a stale
// entry it consults the knowledge source under the lookup timeout; a timed-out
// lookup degrades to the stale entry if one exists, otherwise to an uncached
// none. Absent knowledge is never written back.
func (s *Service) resolvePair(ctx context.Context, drugA, drugB string) (*InteractionRecord, error) {
	cached, err := s.interactions.GetByPair(ctx, drugA, drugB)
	if err != nil {
		return nil, err
	}
	if cached != nil && time.Since(cached.RefreshedAt) < s.cacheTTL {
		return cached, nil
	}

	lctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	fact, err := s.source.Lookup(lctx, drugA, drugB)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, context.DeadlineExceeded) && !fault.IsKind(err, fault.KnowledgeLookupTimeout) {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
		return noneRecord(drugA, drugB), nil
	}
	if fact == nil {
		return noneRecord(drugA, drugB), nil
	}

	rec := recordFromFact(drugA, drugB, fact)
	if err := s.interactions.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func recordFromFact(drugA, drugB string, fact *Fact) *InteractionRecord {
	rec := &InteractionRecord{
		DrugA:           drugA,
		DrugB:           drugB,
		Severity:        fact.Severity,
		Description:     fact.Description,
		ClinicalEffects: fact.ClinicalEffects,
		RefreshedAt:     time.Now(),
	}
	if fact.Mechanism != "" {
		m := fact.Mechanism
		rec.Mechanism = &m
	}
	if fact.Management != "" {
		m := fact.Management
		rec.Management = &m
	}
	if fact.Source != "" {
		src := fact.Source
		rec.Source = &src
	}
	return rec
}

func noneRecord(drugA, drugB string) *InteractionRecord {
	return &InteractionRecord{
		DrugA:       drugA,
		DrugB:       drugB,
		Severity:    SeverityNone,
		Description: "No known interaction",
	}
}

// alternatives suggests same-class substitutes for drugs flagged in a severe
// or contraindicated pair, skipping anything already in the requested set.
func (s *Service) alternatives(ctx context.Context, findings []*InteractionRecord,
	requested map[string]bool) ([]Alternative, error) {

	var flagged []string
	flaggedSeen := make(map[string]bool)
	for _, rec := range findings {
		if !rec.Severity.AtLeast(SeveritySevere) {
			continue
		}
		for _, name := range []string{rec.DrugA, rec.DrugB} {
			if !flaggedSeen[name] {
				flaggedSeen[name] = true
				flagged = append(flagged, name)
			}
		}
	}

	alts := []Alternative{}
	suggested := make(map[string]bool)
	for _, name := range flagged {
		if len(alts) >= maxAlternativesTotal {
			break
		}
		entry, err := s.drugs.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if entry == nil || entry.DrugClass == "" {
			continue
		}
		mates, err := s.drugs.ListByClass(ctx, entry.DrugClass)
		if err != nil {
			return nil, err
		}
		perDrug := 0
		for _, mate := range mates {
			if perDrug >= maxAlternativesPerDrug || len(alts) >= maxAlternativesTotal {
				break
			}
			if requested[mate.Name] || suggested[mate.Name] {
				continue
			}
			suggested[mate.Name] = true
			alts = append(alts, Alternative{For: name, Name: mate.Name, DrugClass: mate.DrugClass})
			perDrug++
		}
	}
	return alts, nil
}

// Seed loads the built-in catalog and interaction knowledge into the store.
func (s *Service) Seed(ctx context.Context) error {
	for _, d := range Catalog() {
		entry := d
		if err := s.drugs.Upsert(ctx, &entry); err != nil {
			return fmt.Errorf("seed drug %q: %w", d.Name, err)
		}
	}
	for _, f := range Facts() {
		fact := f
		rec := recordFromFact(f.DrugA, f.DrugB, &fact)
		if err := s.interactions.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("seed interaction %s/%s: %w", f.DrugA, f.DrugB, err)
		}
	}
	return nil
}

// SearchDrugs looks up catalog entries by name, generic name, brand name or
// drug class.
func (s *Service) SearchDrugs(ctx context.Context, query string, limit, offset int) ([]*Drug, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.drugs.Search(ctx, query, limit, offset)
}

// GetDrugInfo returns the catalog entry for a name together with every cached
// interaction that involves it. The name may be a brand name.
func (s *Service) GetDrugInfo(ctx context.Context, name string) (*DrugInfo, error) {
	canonical, err := s.aliases.Canonicalize(name)
	if err != nil {
		return nil, err
	}
	entry, err := s.drugs.GetByName(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fault.Newf(fault.NotFound, "drug %q not found", canonical)
	}
	recs, err := s.interactions.ListForDrug(ctx, canonical)
	if err != nil {
		return nil, err
	}
	return &DrugInfo{Drug: entry, Interactions: recs}, nil
}

// GetAlternatives returns same-class substitutes for a single drug, at most
// maxAlternativesTotal of them.
func (s *Service) GetAlternatives(ctx context.Context, name string) ([]Alternative, error) {
	canonical, err := s.aliases.Canonicalize(name)
	if err != nil {
		return nil, err
	}
	entry, err := s.drugs.GetByName(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fault.Newf(fault.NotFound, "drug %q not found", canonical)
	}
	mates, err := s.drugs.ListByClass(ctx, entry.DrugClass)
	if err != nil {
		return nil, err
	}
	alts := []Alternative{}
	for _, mate := range mates {
		if len(alts) >= maxAlternativesTotal {
			break
		}
		if mate.Name == entry.Name {
			continue
		}
		alts = append(alts, Alternative{For: entry.Name, Name: mate.Name, DrugClass: mate.DrugClass})
	}
	return alts, nil
}
