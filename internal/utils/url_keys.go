package utils

const (
	// EntryIdKey is the key for the entry ID used in routing parameters.
	EntryIdKey = "id"

	// PageParamKey is the key for the 1-indexed page used in pagination query parameters.
	PageParamKey = "page"

	// LimitParamKey is the key for the page size used in pagination query parameters.
	LimitParamKey = "limit"

	// StartDateParamKey is the inclusive lower date bound of a filter.
	StartDateParamKey = "startDate"

	// EndDateParamKey is the inclusive upper date bound of a filter.
	EndDateParamKey = "endDate"

	// UnitParamKey filters entries by unit.
	UnitParamKey = "unit"

	// TypeParamKey filters activities by type.
	TypeParamKey = "type"

	// SearchParamKey is a case-insensitive substring matched against notes.
	SearchParamKey = "search"

	// GoalParamKey overrides the goal weight of the profile in the weight summary.
	GoalParamKey = "goal"

	// TimezoneParamKey selects the IANA zone used to cut days in the statistics.
	TimezoneParamKey = "tz"
)
