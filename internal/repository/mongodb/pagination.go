package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"todoapi/internal/repository"
)

// withFacet appends the $facet stage that computes the page slice and the
// total count in the same pass. There is no transactional isolation between
// the two facets, but a single pass avoids drift between two separate
// queries under concurrent writes.
func withFacet(pipeline mongo.Pipeline, opts repository.PageOptions) mongo.Pipeline {
	docsFacet := bson.A{}
	if opts.Unpaged {
		docsFacet = append(docsFacet, bson.D{{Key: "$skip", Value: 0}})
	} else {
		docsFacet = append(docsFacet,
			bson.D{{Key: "$skip", Value: int64(opts.Page-1) * int64(opts.Limit)}},
			bson.D{{Key: "$limit", Value: int64(opts.Limit)}},
		)
	}

	facet := bson.D{{Key: "$facet", Value: bson.D{
		{Key: "docs", Value: docsFacet},
		{Key: "totalCount", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
	}}}

	out := make(mongo.Pipeline, 0, len(pipeline)+1)
	out = append(out, pipeline...)
	return append(out, facet)
}

// parseFacet pulls the page slice and the total count out of the single
// facet output document.
func parseFacet(out []bson.M) ([]bson.M, int64) {
	if len(out) == 0 {
		return nil, 0
	}
	first := out[0]
	docs := sliceOfM(first["docs"])

	var total int64
	if counts := sliceOfM(first["totalCount"]); len(counts) > 0 {
		total = asInt64(counts[0]["count"])
	}
	return docs, total
}

// sliceOfM coerces the array shapes the driver may hand back for a facet
// output into []bson.M.
func sliceOfM(v any) []bson.M {
	appendDoc := func(out []bson.M, e any) []bson.M {
		switch m := e.(type) {
		case bson.M:
			return append(out, m)
		case bson.D:
			return append(out, m.Map())
		}
		return out
	}

	switch s := v.(type) {
	case []bson.M:
		return s
	case primitive.A:
		out := make([]bson.M, 0, len(s))
		for _, e := range s {
			out = appendDoc(out, e)
		}
		return out
	case []any:
		out := make([]bson.M, 0, len(s))
		for _, e := range s {
			out = appendDoc(out, e)
		}
		return out
	}
	return nil
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}
