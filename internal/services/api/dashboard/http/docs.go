package http

import "paylens/internal/modkit/swaggerkit"

func init() {
	swaggerkit.Register(func(spec map[string]any) {
		paths, ok := spec["paths"].(map[string]any)
		if !ok {
			return
		}
		get := func(summary string, params ...map[string]any) map[string]any {
			ps := make([]any, 0, len(params)+1)
			ps = append(ps, filterParamsRef)
			for _, p := range params {
				ps = append(ps, p)
			}
			return map[string]any{
				"get": map[string]any{
					"tags":       []any{"dashboard"},
					"summary":    summary,
					"parameters": ps,
					"responses": map[string]any{
						"200": map[string]any{"description": "OK"},
						"400": map[string]any{"description": "Invalid query"},
					},
				},
			}
		}

		paths["/dashboard/summary"] = get("Scalar salary statistics for one cohort")
		paths["/dashboard/options"] = get("Distinct filter values under the current cohort")
		paths["/dashboard/grouped"] = get(
			"Ranked metric per attribute value",
			queryParam("group_by", "attribute to group by, defaults to city"),
			queryParam("metric", "mean or median, defaults to median"),
			queryParam("limit", "max rows, defaults to 20"),
		)
		paths["/dashboard/distribution"] = get(
			"Equal-width salary histogram",
			queryParam("bins", "bucket count, defaults to 20"),
		)
		paths["/dashboard/compare"] = get(
			"Two cohort summaries with deltas, a_ and b_ prefixed filters",
		)
	})
}

// filterParamsRef documents the shared repeatable filter parameters
var filterParamsRef = map[string]any{
	"name":        "city",
	"in":          "query",
	"required":    false,
	"description": "repeatable cohort filter, also industry, occupation, major, university, experience_category",
	"schema":      map[string]any{"type": "string"},
}

func queryParam(name, desc string) map[string]any {
	return map[string]any{
		"name":        name,
		"in":          "query",
		"required":    false,
		"description": desc,
		"schema":      map[string]any{"type": "string"},
	}
}
