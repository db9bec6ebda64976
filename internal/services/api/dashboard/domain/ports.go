package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Summary(ctx context.Context, filters Filters) (SummaryOut, error)
	Options(ctx context.Context, filters Filters) (OptionsOut, error)
	Grouped(ctx context.Context, filters Filters, groupBy string, metric Metric, limit int) (GroupedOut, error)
	Distribution(ctx context.Context, filters Filters, bins int) (DistributionOut, error)
	Compare(ctx context.Context, a, b Filters) (CompareOut, error)
}
