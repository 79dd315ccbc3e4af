package drug

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medassist/medassist/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Drug Repository ===========

type drugRepoPG struct{ pool *pgxpool.Pool }

func NewDrugRepoPG(pool *pgxpool.Pool) DrugRepository { return &drugRepoPG{pool: pool} }

func (r *drugRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const drugCols = `id, name, generic_name, brand_names, drug_class, description, created_at, updated_at`

func scanDrug(row pgx.Row) (*Drug, error) {
	var d Drug
	err := row.Scan(&d.ID, &d.Name, &d.GenericName, &d.BrandNames, &d.DrugClass, &d.Description,
		&d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *drugRepoPG) Upsert(ctx context.Context, d *Drug) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO drug (id, name, generic_name, brand_names, drug_class, description)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (name) DO UPDATE SET
			generic_name = EXCLUDED.generic_name,
			brand_names = EXCLUDED.brand_names,
			drug_class = EXCLUDED.drug_class,
			description = EXCLUDED.description,
			updated_at = NOW()`,
		d.ID, d.Name, d.GenericName, d.BrandNames, d.DrugClass, d.Description)
	return err
}

func (r *drugRepoPG) GetByName(ctx context.Context, name string) (*Drug, error) {
	d, err := scanDrug(r.conn(ctx).QueryRow(ctx,
		`SELECT `+drugCols+` FROM drug WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *drugRepoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Drug, int, error) {
	pattern := "%" + query + "%"
	where := `WHERE name ILIKE $1 OR generic_name ILIKE $1 OR drug_class ILIKE $1
		OR EXISTS (SELECT 1 FROM unnest(brand_names) AS b WHERE b ILIKE $1)`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM drug `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+drugCols+` FROM drug `+where+` ORDER BY name LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Drug
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *drugRepoPG) ListByClass(ctx context.Context, drugClass string) ([]*Drug, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+drugCols+` FROM drug WHERE drug_class = $1 ORDER BY name`, drugClass)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Drug
	for rows.Next() {
		d, err := scanDrug(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// =========== Interaction Repository ===========

type interactionRepoPG struct{ pool *pgxpool.Pool }

func NewInteractionRepoPG(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepoPG{pool: pool}
}

func (r *interactionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const interactionCols = `id, drug_a, drug_b, severity, description, mechanism, management,
	clinical_effects, source, refreshed_at, created_at, updated_at`

func scanInteraction(row pgx.Row) (*InteractionRecord, error) {
	var rec InteractionRecord
	err := row.Scan(&rec.ID, &rec.DrugA, &rec.DrugB, &rec.Severity, &rec.Description,
		&rec.Mechanism, &rec.Management, &rec.ClinicalEffects, &rec.Source,
		&rec.RefreshedAt, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

func (r *interactionRepoPG) Upsert(ctx context.Context, rec *InteractionRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.DrugA, rec.DrugB = PairKey(rec.DrugA, rec.DrugB)
	if rec.ClinicalEffects == nil {
		rec.ClinicalEffects = []string{}
	}
	// Concurrent resolutions of the same uncached pair race on this write;
	// the unique pair constraint plus ON CONFLICT makes the last writer win.
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO drug_interaction (id, drug_a, drug_b, severity, description, mechanism, management, clinical_effects, source, refreshed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		ON CONFLICT (drug_a, drug_b) DO UPDATE SET
			severity = EXCLUDED.severity,
			description = EXCLUDED.description,
			mechanism = EXCLUDED.mechanism,
			management = EXCLUDED.management,
			clinical_effects = EXCLUDED.clinical_effects,
			source = EXCLUDED.source,
			refreshed_at = NOW(),
			updated_at = NOW()`,
		rec.ID, rec.DrugA, rec.DrugB, rec.Severity, rec.Description, rec.Mechanism,
		rec.Management, rec.ClinicalEffects, rec.Source)
	return err
}

func (r *interactionRepoPG) GetByPair(ctx context.Context, drugA, drugB string) (*InteractionRecord, error) {
	a, b := PairKey(drugA, drugB)
	rec, err := scanInteraction(r.conn(ctx).QueryRow(ctx,
		`SELECT `+interactionCols+` FROM drug_interaction WHERE drug_a = $1 AND drug_b = $2`, a, b))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *interactionRepoPG) ListForDrug(ctx context.Context, name string) ([]*InteractionRecord, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+interactionCols+` FROM drug_interaction
		WHERE drug_a = $1 OR drug_b = $1 ORDER BY drug_a, drug_b`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*InteractionRecord
	for rows.Next() {
		rec, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, rows.Err()
}
