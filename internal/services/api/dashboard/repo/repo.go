// Package repo provides postgres access for dashboard aggregates
// all statement text is assembled from the attribute allow-list only,
// every user-derived value travels as a bound parameter
package repo

import (
	"context"
	"fmt"

	"paylens/internal/core/filterspec"
	"paylens/internal/modkit/repokit"
)

// Stats are nullable scalar statistics over a cohort
type Stats struct {
	Mean   *float64
	Min    *float64
	Max    *float64
	P25    *float64
	Median *float64
	P75    *float64
}

// GroupRow is one grouped aggregate row
type GroupRow struct {
	Key   *string
	Value *float64
	N     int64
}

// BucketCount is one width_bucket group, Bucket is 1-based and nullable
type BucketCount struct {
	Bucket *int32
	Count  int64
}

// Repo is the read-only persistence surface for dashboard aggregates
type Repo interface {
	Count(ctx context.Context, spec filterspec.Spec) (int64, error)
	ScalarStats(ctx context.Context, spec filterspec.Spec) (Stats, error)
	DistinctValues(ctx context.Context, attr filterspec.Attr, spec filterspec.Spec) ([]string, error)
	GroupedAggregate(
		ctx context.Context, attr filterspec.Attr, spec filterspec.Spec, medianMetric bool, limit int,
	) ([]GroupRow, error)
	MinMax(ctx context.Context, spec filterspec.Spec) (*float64, *float64, error)
	BucketCounts(ctx context.Context, spec filterspec.Spec, min, max float64, bins int) ([]BucketCount, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Count(ctx context.Context, spec filterspec.Spec) (int64, error) {
	where, args := spec.Where()
	sql := fmt.Sprintf(`SELECT COUNT(*) FROM salary_records r WHERE %s`, where)
	var n int64
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *queries) ScalarStats(ctx context.Context, spec filterspec.Spec) (Stats, error) {
	where, args := spec.Where()
	sql := fmt.Sprintf(`
SELECT
  AVG(r.salary_eur)::float8 AS mean,
  MIN(r.salary_eur)::float8 AS min,
  MAX(r.salary_eur)::float8 AS max,
  percentile_cont(0.25) WITHIN GROUP (ORDER BY r.salary_eur)::float8 AS p25,
  percentile_cont(0.50) WITHIN GROUP (ORDER BY r.salary_eur)::float8 AS median,
  percentile_cont(0.75) WITHIN GROUP (ORDER BY r.salary_eur)::float8 AS p75
FROM salary_records r
WHERE %s`, where)

	var s Stats
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&s.Mean, &s.Min, &s.Max, &s.P25, &s.Median, &s.P75); err != nil {
		return Stats{}, err
	}
	return s, nil
}

func (r *queries) DistinctValues(ctx context.Context, attr filterspec.Attr, spec filterspec.Spec) ([]string, error) {
	where, args := spec.Where()
	col := attr.Column()
	sql := fmt.Sprintf(
		`SELECT DISTINCT %s FROM salary_records r WHERE %s AND %s IS NOT NULL ORDER BY %s LIMIT 5000`,
		col, where, col, col,
	)
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *queries) GroupedAggregate(
	ctx context.Context, attr filterspec.Attr, spec filterspec.Spec, medianMetric bool, limit int,
) ([]GroupRow, error) {
	where, args := spec.Where()

	metricSQL := "AVG(r.salary_eur)::float8"
	if medianMetric {
		metricSQL = "percentile_cont(0.50) WITHIN GROUP (ORDER BY r.salary_eur)::float8"
	}

	sql := fmt.Sprintf(`
SELECT %s AS key,
       %s AS value,
       COUNT(*)::int8 AS n
FROM salary_records r
WHERE %s
GROUP BY %s
ORDER BY value DESC NULLS LAST
LIMIT $%d`, attr.Column(), metricSQL, where, attr.Column(), len(args)+1)

	rows, err := r.q.Query(ctx, sql, append(args, limit)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GroupRow
	for rows.Next() {
		var g GroupRow
		if err := rows.Scan(&g.Key, &g.Value, &g.N); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *queries) MinMax(ctx context.Context, spec filterspec.Spec) (*float64, *float64, error) {
	where, args := spec.Where()
	sql := fmt.Sprintf(
		`SELECT MIN(r.salary_eur)::float8, MAX(r.salary_eur)::float8 FROM salary_records r WHERE %s`, where,
	)
	var min, max *float64
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&min, &max); err != nil {
		return nil, nil, err
	}
	return min, max, nil
}

func (r *queries) BucketCounts(
	ctx context.Context, spec filterspec.Spec, min, max float64, bins int,
) ([]BucketCount, error) {
	// the bucket bounds bind $1..$3, filter values follow
	where, filterArgs := spec.WhereFrom(4)
	sql := fmt.Sprintf(`
SELECT bucket, COUNT(*)::int8
FROM (
  SELECT width_bucket(r.salary_eur, $1, $2, $3) AS bucket
  FROM salary_records r
  WHERE %s
) t
GROUP BY bucket
ORDER BY bucket`, where)

	args := append([]any{min, max, bins}, filterArgs...)
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BucketCount
	for rows.Next() {
		var b BucketCount
		if err := rows.Scan(&b.Bucket, &b.Count); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
