package baysearch

import "strings"

// ItemCondition classifies the physical condition of a listed item. The
// string value doubles as the canonical match name: condition text on the
// page (subtitles, facet labels) is matched by case-insensitive substring
// containment against it. The marketplace mixes German labels with the
// English "refurbished".
type ItemCondition string

// ItemCondition values, in matching priority order.
const (
	ConditionNew         ItemCondition = "brandneu"
	ConditionRefurbished ItemCondition = "refurbished"
	ConditionUsed        ItemCondition = "gebraucht"
	ConditionDefective   ItemCondition = "defekt"
	ConditionUnknown     ItemCondition = "unknown"
)

// itemConditions lists the matchable conditions in declaration order.
// ParseItemCondition returns the first match, so the order is part of the
// matching contract.
var itemConditions = []ItemCondition{
	ConditionNew,
	ConditionRefurbished,
	ConditionUsed,
	ConditionDefective,
}

// ParseItemCondition maps free condition text to an ItemCondition.
// Matching is case-insensitive substring containment, first match wins.
// Returns ConditionUnknown when no condition name occurs in the text.
func ParseItemCondition(text string) ItemCondition {
	text = strings.ToLower(text)
	for _, c := range itemConditions {
		if strings.Contains(text, string(c)) {
			return c
		}
	}
	return ConditionUnknown
}
