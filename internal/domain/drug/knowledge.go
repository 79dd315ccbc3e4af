package drug

import "context"

// KnowledgeSource answers interaction lookups for a canonically ordered drug
// pair. A nil Fact with a nil error means the source has no entry for the
// pair. Implementations must honor context cancellation; in production this
// would front DrugBank or a similar licensed service.
type KnowledgeSource interface {
	Lookup(ctx context.Context, drugA, drugB string) (*Fact, error)
}

// StaticSource serves the built-in interaction facts. It is the seeded
// stand-in for an external drug knowledge service.
type StaticSource struct {
	facts map[string]Fact
}

func NewStaticSource() *StaticSource {
	facts := make(map[string]Fact)
	for _, f := range Facts() {
		a, b := PairKey(f.DrugA, f.DrugB)
		facts[a+":"+b] = f
	}
	return &StaticSource{facts: facts}
}

func (s *StaticSource) Lookup(ctx context.Context, drugA, drugB string) (*Fact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, b := PairKey(drugA, drugB)
	if f, ok := s.facts[a+":"+b]; ok {
		return &f, nil
	}
	return nil, nil
}
