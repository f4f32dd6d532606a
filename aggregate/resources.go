package aggregate

import "babycare/domain"

func FeedingDays(records []domain.Feeding) []domain.FeedingSummary {
	return Group(records,
		ByDay(feedingDate),
		func(key string) domain.FeedingSummary { return domain.FeedingSummary{Date: key} },
		(*domain.FeedingSummary).Add,
	)
}

// FeedingDay summarizes a record set already filtered to one day.
func FeedingDay(records []domain.Feeding) domain.FeedingSummary {
	return Fold(records, domain.FeedingSummary{}, (*domain.FeedingSummary).Add)
}

func FeedingPeriod(start, end string, records []domain.Feeding) domain.FeedingPeriodSummary {
	days := FeedingDays(records)
	totals := domain.FeedingSummary{}
	for _, f := range records {
		if _, ok := ByDay(feedingDate)(f); ok {
			totals.Add(f)
		}
	}
	return domain.FeedingPeriodSummary{StartDate: start, EndDate: end, Totals: totals, Days: days}
}

// feedingDate prefers the bucketing date and falls back to the timestamp
// written by older write paths.
func feedingDate(f domain.Feeding) string {
	if f.Date != "" {
		return f.Date
	}
	return f.Timestamp
}

func SleepDays(records []domain.Sleep) []domain.SleepSummary {
	return Group(records,
		ByDay(sleepDate),
		func(key string) domain.SleepSummary { return domain.SleepSummary{Date: key} },
		(*domain.SleepSummary).Add,
	)
}

func sleepDate(s domain.Sleep) string {
	return s.Date
}

func SleepPeriod(start, end string, records []domain.Sleep) domain.SleepPeriodSummary {
	days := SleepDays(records)
	totals := domain.SleepSummary{}
	for _, r := range records {
		if _, ok := ByDay(sleepDate)(r); ok {
			totals.Add(r)
		}
	}
	return domain.SleepPeriodSummary{StartDate: start, EndDate: end, Totals: totals, Days: days}
}

func GrowthDays(records []domain.Growth) []domain.GrowthDay {
	return Group(records,
		ByDay(func(g domain.Growth) string { return g.RecordDate }),
		func(key string) domain.GrowthDay { return domain.GrowthDay{Date: key} },
		(*domain.GrowthDay).Add,
	)
}

func VaccinationMonths(records []domain.Vaccination) []domain.VaccinationMonth {
	return Group(records,
		ByMonth(func(v domain.Vaccination) string { return v.ScheduledDate }),
		func(key string) domain.VaccinationMonth { return domain.VaccinationMonth{Month: key} },
		(*domain.VaccinationMonth).Add,
	)
}
