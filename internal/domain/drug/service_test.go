package drug

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/medassist/medassist/pkg/fault"
)

// =========== Mock Repositories ===========

type mockDrugRepo struct {
	data map[string]*Drug
}

func newMockDrugRepo() *mockDrugRepo {
	return &mockDrugRepo{data: make(map[string]*Drug)}
}

func (m *mockDrugRepo) Upsert(_ context.Context, d *Drug) error {
	copied := *d
	m.data[d.Name] = &copied
	return nil
}
func (m *mockDrugRepo) GetByName(_ context.Context, name string) (*Drug, error) {
	return m.data[name], nil
}
func (m *mockDrugRepo) Search(_ context.Context, query string, limit, offset int) ([]*Drug, int, error) {
	var out []*Drug
	for _, d := range m.data {
		if strings.Contains(d.Name, strings.ToLower(query)) {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}
func (m *mockDrugRepo) ListByClass(_ context.Context, drugClass string) ([]*Drug, error) {
	var out []*Drug
	for _, name := range sortedKeys(m.data) {
		if m.data[name].DrugClass == drugClass {
			out = append(out, m.data[name])
		}
	}
	return out, nil
}

func sortedKeys(data map[string]*Drug) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type mockInteractionRepo struct {
	data    map[string]*InteractionRecord
	upserts int
}

func newMockInteractionRepo() *mockInteractionRepo {
	return &mockInteractionRepo{data: make(map[string]*InteractionRecord)}
}

func (m *mockInteractionRepo) Upsert(_ context.Context, rec *InteractionRecord) error {
	m.upserts++
	a, b := PairKey(rec.DrugA, rec.DrugB)
	copied := *rec
	m.data[a+":"+b] = &copied
	return nil
}
func (m *mockInteractionRepo) GetByPair(_ context.Context, drugA, drugB string) (*InteractionRecord, error) {
	a, b := PairKey(drugA, drugB)
	return m.data[a+":"+b], nil
}
func (m *mockInteractionRepo) ListForDrug(_ context.Context, name string) ([]*InteractionRecord, error) {
	var out []*InteractionRecord
	for _, rec := range m.data {
		if rec.DrugA == name || rec.DrugB == name {
			out = append(out, rec)
		}
	}
	return out, nil
}

// countingSource counts lookups so cache hits can be asserted.
type countingSource struct {
	inner KnowledgeSource
	calls int
}

func (s *countingSource) Lookup(ctx context.Context, drugA, drugB string) (*Fact, error) {
	s.calls++
	return s.inner.Lookup(ctx, drugA, drugB)
}

// timeoutSource simulates a knowledge service that never answers in time.
type timeoutSource struct{}

func (timeoutSource) Lookup(context.Context, string, string) (*Fact, error) {
	return nil, context.DeadlineExceeded
}

type testEnv struct {
	svc          *Service
	drugs        *mockDrugRepo
	interactions *mockInteractionRepo
	source       *countingSource
}

func newTestService() *testEnv {
	drugs := newMockDrugRepo()
	for _, d := range Catalog() {
		drugs.Upsert(context.Background(), &d)
	}
	interactions := newMockInteractionRepo()
	source := &countingSource{inner: NewStaticSource()}
	svc := NewService(drugs, interactions, source,
		NewAliasTable(CatalogVersion, Catalog()), 720*time.Hour, 5*time.Second)
	return &testEnv{svc: svc, drugs: drugs, interactions: interactions, source: source}
}

// =========== Check ===========

func TestService_Check_SevereInteraction(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"Lisinopril", "Spironolactone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(result.Interactions))
	}
	if result.Interactions[0].Severity != SeveritySevere {
		t.Errorf("expected severe, got %s", result.Interactions[0].Severity)
	}
	if !result.HasSevereInteractions {
		t.Error("expected has_severe_interactions to be true")
	}
	if result.HasContraindications {
		t.Error("expected has_contraindications to be false")
	}
}

func TestService_Check_CarriesInteractionDetail(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"lisinopril", "spironolactone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 1 {
		t.Fatalf("expected 1 interaction, got %d", len(result.Interactions))
	}
	inter := result.Interactions[0]
	if inter.Mechanism != "Both drugs increase potassium retention" {
		t.Errorf("mechanism = %q", inter.Mechanism)
	}
	if inter.Source != "UpToDate Drug Interactions" {
		t.Errorf("source = %q", inter.Source)
	}
	want := []string{"Hyperkalemia", "Cardiac arrhythmias", "Muscle weakness"}
	if !reflect.DeepEqual(inter.ClinicalEffects, want) {
		t.Errorf("clinical effects = %v, want %v", inter.ClinicalEffects, want)
	}
	if inter.Management == "" {
		t.Error("expected management guidance")
	}
}

func TestService_Check_OrderIndependence(t *testing.T) {
	env := newTestService()
	first, err := env.svc.Check(context.Background(), []string{"Warfarin", "Ibuprofen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := env.svc.Check(context.Background(), []string{"Ibuprofen", "Warfarin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first.Interactions, second.Interactions) {
		t.Error("expected identical interactions regardless of input order")
	}
	if !reflect.DeepEqual(first.Warnings, second.Warnings) {
		t.Error("expected identical warnings regardless of input order")
	}
	if first.HasSevereInteractions != second.HasSevereInteractions {
		t.Error("expected identical severity flags regardless of input order")
	}
}

func TestService_Check_DuplicatesCollapse(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(),
		[]string{"Warfarin", "Coumadin", "warfarin sodium", "Ibuprofen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.CheckedDrugs) != 2 {
		t.Fatalf("expected 2 distinct drugs, got %v", result.CheckedDrugs)
	}
	if env.source.calls != 1 {
		t.Errorf("expected 1 pair lookup, got %d", env.source.calls)
	}
	if len(result.Interactions) != 1 || result.Interactions[0].Severity != SeveritySevere {
		t.Errorf("expected one severe interaction, got %+v", result.Interactions)
	}
}

func TestService_Check_SecondCallIsCacheServed(t *testing.T) {
	env := newTestService()
	ctx := context.Background()
	names := []string{"Clopidogrel", "Omeprazole"}

	first, err := env.svc.Check(ctx, names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callsAfterFirst := env.source.calls

	second, err := env.svc.Check(ctx, names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.source.calls != callsAfterFirst {
		t.Errorf("expected cache to serve second call, lookups went %d -> %d",
			callsAfterFirst, env.source.calls)
	}
	if !reflect.DeepEqual(first.Interactions, second.Interactions) {
		t.Error("expected identical results on repeat check")
	}
}

func TestService_Check_SingleDrug(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"Aspirin"})
	if err != nil {
		t.Fatalf("expected empty result, got error: %v", err)
	}
	if len(result.Interactions) != 0 || len(result.Warnings) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if !reflect.DeepEqual(result.CheckedDrugs, []string{"aspirin"}) {
		t.Errorf("expected checked drugs [aspirin], got %v", result.CheckedDrugs)
	}
}

func TestService_Check_TooManyDrugs(t *testing.T) {
	env := newTestService()
	names := make([]string, MaxCheckDrugs+1)
	for i := range names {
		names[i] = "metformin"
	}
	_, err := env.svc.Check(context.Background(), names)
	if !fault.IsKind(err, fault.TooManyDrugs) {
		t.Errorf("expected TooManyDrugs, got %v", err)
	}
}

func TestService_Check_UnresolvedName(t *testing.T) {
	env := newTestService()
	_, err := env.svc.Check(context.Background(), []string{"warfarin", "500mg"})
	if !fault.IsKind(err, fault.UnresolvedDrugName) {
		t.Errorf("expected UnresolvedDrugName, got %v", err)
	}
}

func TestService_Check_ContraindicatedPair(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"Phenelzine", "Sertraline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.HasContraindications {
		t.Error("expected has_contraindications to be true")
	}
	if !result.HasSevereInteractions {
		t.Error("expected has_severe_interactions to be true for contraindicated pair")
	}
}

func TestService_Check_WarningOrdering(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"Aspirin", "Ibuprofen", "Warfarin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", result.Warnings)
	}
	if !strings.HasPrefix(result.Warnings[0], "SEVERE") {
		t.Errorf("expected severe warning first, got %q", result.Warnings[0])
	}
	if !strings.HasPrefix(result.Warnings[1], "MODERATE") {
		t.Errorf("expected moderate warning second, got %q", result.Warnings[1])
	}
}

func TestService_Check_ContrastAlternatives(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"Metformin", "Iodinated Contrast"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 1 || result.Interactions[0].Severity != SeveritySevere {
		t.Fatalf("expected one severe interaction, got %+v", result.Interactions)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for the severe pair")
	}
	found := false
	for _, alt := range result.Alternatives {
		if alt.For == "iodinated contrast" && alt.Name == "iodixanol" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a same-class alternative for the contrast agent, got %+v", result.Alternatives)
	}
}

func TestService_Check_AlternativesExcludeRequested(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"Metoprolol", "Verapamil"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, alt := range result.Alternatives {
		if alt.Name == "metoprolol" || alt.Name == "verapamil" {
			t.Errorf("alternative %q is in the requested set", alt.Name)
		}
	}
	if len(result.Alternatives) > 5 {
		t.Errorf("expected at most 5 alternatives, got %d", len(result.Alternatives))
	}
}

func TestService_Check_NoKnownInteraction(t *testing.T) {
	env := newTestService()
	result, err := env.svc.Check(context.Background(), []string{"Metformin", "Sertraline"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 0 {
		t.Errorf("expected no interactions, got %+v", result.Interactions)
	}
	if env.interactions.upserts != 0 {
		t.Errorf("expected absent knowledge not to be cached, got %d upserts", env.interactions.upserts)
	}
}

func TestService_Check_LookupTimeoutDegrades(t *testing.T) {
	env := newTestService()
	env.svc.source = timeoutSource{}
	result, err := env.svc.Check(context.Background(), []string{"Warfarin", "Ibuprofen"})
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if len(result.Interactions) != 0 {
		t.Errorf("expected no findings on timeout, got %+v", result.Interactions)
	}
	if env.interactions.upserts != 0 {
		t.Errorf("expected timed-out pair not to be cached, got %d upserts", env.interactions.upserts)
	}
}

func TestService_Check_LookupTimeoutServesStale(t *testing.T) {
	env := newTestService()
	mgmt := "Avoid combination. Consider acetaminophen."
	env.interactions.Upsert(context.Background(), &InteractionRecord{
		DrugA:       "ibuprofen",
		DrugB:       "warfarin",
		Severity:    SeveritySevere,
		Description: "Increased risk of serious bleeding",
		Management:  &mgmt,
		RefreshedAt: time.Now().Add(-1000 * time.Hour),
	})
	env.interactions.upserts = 0
	env.svc.source = timeoutSource{}

	result, err := env.svc.Check(context.Background(), []string{"Warfarin", "Ibuprofen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Interactions) != 1 || result.Interactions[0].Severity != SeveritySevere {
		t.Errorf("expected stale cached record to be served, got %+v", result.Interactions)
	}
}

// =========== Seed / Search / Info ===========

func TestService_Seed(t *testing.T) {
	env := newTestService()
	env.drugs = newMockDrugRepo()
	env.svc.drugs = env.drugs
	if err := env.svc.Seed(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.drugs.data) != len(Catalog()) {
		t.Errorf("expected %d drugs seeded, got %d", len(Catalog()), len(env.drugs.data))
	}
	if len(env.interactions.data) != len(Facts()) {
		t.Errorf("expected %d interactions seeded, got %d", len(Facts()), len(env.interactions.data))
	}
}

func TestService_SearchDrugs_RequiresQuery(t *testing.T) {
	env := newTestService()
	if _, _, err := env.svc.SearchDrugs(context.Background(), "  ", 10, 0); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestService_GetDrugInfo(t *testing.T) {
	env := newTestService()
	env.svc.Check(context.Background(), []string{"Warfarin", "Ibuprofen"})

	info, err := env.svc.GetDrugInfo(context.Background(), "Coumadin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.Drug.Name != "warfarin" {
		t.Errorf("expected warfarin, got %q", info.Drug.Name)
	}
	if len(info.Interactions) != 1 {
		t.Errorf("expected 1 cached interaction, got %d", len(info.Interactions))
	}
}

func TestService_GetDrugInfo_NotFound(t *testing.T) {
	env := newTestService()
	_, err := env.svc.GetDrugInfo(context.Background(), "examplinib")
	if !fault.IsKind(err, fault.NotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestService_GetAlternatives(t *testing.T) {
	env := newTestService()
	alts, err := env.svc.GetAlternatives(context.Background(), "omeprazole")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, alt := range alts {
		if alt.Name == "omeprazole" {
			t.Error("alternatives should not include the drug itself")
		}
		if alt.Name == "pantoprazole" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected pantoprazole as a same-class alternative, got %+v", alts)
	}
}

func TestService_GetAlternatives_CappedAtFive(t *testing.T) {
	env := newTestService()
	for _, name := range []string{"lansoprazole", "rabeprazole", "esomeprazole",
		"dexlansoprazole", "tenatoprazole", "ilaprazole"} {
		env.drugs.Upsert(context.Background(), &Drug{
			Name:        name,
			GenericName: name,
			DrugClass:   "Proton Pump Inhibitor",
		})
	}
	alts, err := env.svc.GetAlternatives(context.Background(), "omeprazole")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alts) != 5 {
		t.Errorf("expected 5 alternatives, got %d: %+v", len(alts), alts)
	}
	for _, alt := range alts {
		if alt.Name == "omeprazole" {
			t.Error("alternatives should not include the drug itself")
		}
	}
}
