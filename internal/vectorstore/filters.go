package vectorstore

import (
	"github.com/jonathan/expert-finder/internal/types"
)

// metadata keys targeted by filters.
const (
	fieldLocation        = "location"
	fieldIndustry        = "industry"
	fieldCurrentCompany  = "current_company"
	fieldEducationLevel  = "education_level"
	fieldCareerLevel     = "career_level"
	fieldYearsExperience = "years_experience"
)

// WhereFromFilters translates typed search filters into a Chroma where
// clause: values within a field are OR-ed, fields are AND-ed, and the years
// bound becomes a comparison operator. Returns nil when nothing is set.
func WhereFromFilters(f *types.SearchFilters) map[string]any {
	if f.IsZero() {
		return nil
	}

	var clauses []map[string]any

	addValues := func(field string, values []string) {
		switch len(values) {
		case 0:
		case 1:
			clauses = append(clauses, map[string]any{field: values[0]})
		default:
			or := make([]map[string]any, 0, len(values))
			for _, v := range values {
				or = append(or, map[string]any{field: v})
			}
			clauses = append(clauses, map[string]any{"$or": or})
		}
	}

	addValues(fieldLocation, f.Location)
	addValues(fieldIndustry, f.Industry)
	addValues(fieldCurrentCompany, f.CurrentCompany)
	addValues(fieldEducationLevel, f.EducationLevel)
	addValues(fieldCareerLevel, f.CareerLevel)

	if cmp := f.YearsExperience; cmp != nil {
		op := map[string]any{}
		if cmp.GTE != nil {
			op["$gte"] = *cmp.GTE
		}
		if cmp.LTE != nil {
			op["$lte"] = *cmp.LTE
		}
		if len(op) > 0 {
			clauses = append(clauses, map[string]any{fieldYearsExperience: op})
		}
	}

	switch len(clauses) {
	case 0:
		return nil
	case 1:
		return clauses[0]
	default:
		return map[string]any{"$and": clauses}
	}
}
