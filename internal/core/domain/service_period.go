package domain

// CalculateYearsInService returns the span between the earliest start year
// and the latest end year across periods. A period without an end year is
// treated as still running in currentYear. Overlaps and gaps are not
// treated specially: the result is a span, not a sum of tenures.
func CalculateYearsInService(periods []ServicePeriod, currentYear int) int {
	if len(periods) == 0 {
		return 0
	}

	oldest := periods[0].YearStart
	latest := periods[0].YearStart
	for _, p := range periods {
		end := currentYear
		if p.YearEnd != nil {
			end = *p.YearEnd
		}
		if p.YearStart < oldest {
			oldest = p.YearStart
		}
		if p.YearStart > latest {
			latest = p.YearStart
		}
		if end > latest {
			latest = end
		}
	}
	return latest - oldest
}
