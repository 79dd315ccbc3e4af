package drug

import "context"

type DrugRepository interface {
	Upsert(ctx context.Context, d *Drug) error
	GetByName(ctx context.Context, name string) (*Drug, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*Drug, int, error)
	ListByClass(ctx context.Context, drugClass string) ([]*Drug, error)
}

type InteractionRepository interface {
	// Upsert stores the record for its canonical pair, overwriting any
	// existing row (last writer wins).
	Upsert(ctx context.Context, rec *InteractionRecord) error
	// GetByPair returns (nil, nil) when no record exists for the pair.
	GetByPair(ctx context.Context, drugA, drugB string) (*InteractionRecord, error)
	ListForDrug(ctx context.Context, name string) ([]*InteractionRecord, error)
}
