package domain

import "strings"

// DefaultLocale is the locale briefings are generated in. Other locales are
// translations and fall back to this one when a document is missing.
const DefaultLocale = "ko"

// ParseDateKey splits a date key into its bare date and period. A key is
// either a plain "YYYY-MM-DD" date (period empty) or a composite already
// suffixed with "-morning" or "-afternoon".
func ParseDateKey(key string) (date string, period Period) {
	switch {
	case strings.HasSuffix(key, "-"+string(PeriodMorning)):
		return strings.TrimSuffix(key, "-"+string(PeriodMorning)), PeriodMorning
	case strings.HasSuffix(key, "-"+string(PeriodAfternoon)):
		return strings.TrimSuffix(key, "-"+string(PeriodAfternoon)), PeriodAfternoon
	default:
		return key, ""
	}
}

// briefingPath returns the storage path for a briefing filename stem under
// the given locale. The default locale lives at the briefing root; other
// locales are nested one level down.
func briefingPath(locale, stem string) string {
	if locale == "" || locale == DefaultLocale {
		return "briefing/" + stem + ".json"
	}
	return "briefing/" + locale + "/" + stem + ".json"
}

// localized expands one filename stem into its locale-then-default path
// pair. For the default locale there is nothing to fall back to, so the
// result is a single path.
func localized(locale, stem string) []string {
	paths := []string{briefingPath(locale, stem)}
	if locale != "" && locale != DefaultLocale {
		paths = append(paths, briefingPath(DefaultLocale, stem))
	}
	return paths
}

// IndexCandidates returns the ordered paths to try for the briefing index
// of a locale.
func IndexCandidates(locale string) []string {
	return localized(locale, "index")
}

// LegacyCandidates returns the ordered paths for the legacy bare-date
// briefing document of a date.
func LegacyCandidates(date, locale string) []string {
	return localized(locale, date)
}

// BriefingCandidates returns the ordered storage paths to try when
// resolving a briefing document. The first path that yields a valid
// document wins; later paths exist only as fallbacks.
//
// A key that already carries a period suffix, or a call with an explicit
// period, names one exact file and never falls back to the legacy layout.
// Only the bare-date form widens the search: afternoon, then morning, then
// the legacy flat file.
func BriefingCandidates(dateOrKey string, period Period, locale string) []string {
	date, keyPeriod := ParseDateKey(dateOrKey)

	var stems []string
	switch {
	case keyPeriod != "":
		stems = []string{dateOrKey}
	case period != "" && period != PeriodFull:
		stems = []string{date + "-" + string(period)}
	case period == PeriodFull:
		stems = []string{date}
	default:
		stems = []string{
			date + "-" + string(PeriodAfternoon),
			date + "-" + string(PeriodMorning),
			date,
		}
	}

	var paths []string
	for _, stem := range stems {
		paths = append(paths, localized(locale, stem)...)
	}
	return paths
}
