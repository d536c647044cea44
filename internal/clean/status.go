package clean

import "strings"

// canonicalStatuses maps lower-cased variants to their canonical label,
// covering the deal, execution, billing, closure-probability and invoice
// vocabularies seen on the boards.
var canonicalStatuses = map[string]string{
	// Deal statuses
	"open":        "Open",
	"closed":      "Closed",
	"closed won":  "Closed Won",
	"closed lost": "Closed Lost",
	"closedwon":   "Closed Won",
	"closedlost":  "Closed Lost",
	"won":         "Closed Won",
	"lost":        "Closed Lost",

	// Execution statuses
	"not started":                  "Not Started",
	"notstarted":                   "Not Started",
	"in progress":                  "In Progress",
	"inprogress":                   "In Progress",
	"in_progress":                  "In Progress",
	"wip":                          "In Progress",
	"completed":                    "Completed",
	"complete":                     "Completed",
	"done":                         "Completed",
	"executed until current month": "Executed Until Current Month",

	// Billing statuses
	"partially billed": "Partially Billed",
	"fully billed":     "Fully Billed",
	"not billed":       "Not Billed",
	"update required":  "Update Required",

	// Closure probability
	"high":      "High",
	"medium":    "Medium",
	"low":       "Low",
	"very high": "Very High",
	"very low":  "Very Low",

	// Invoice statuses
	"pending":   "Pending",
	"paid":      "Paid",
	"overdue":   "Overdue",
	"cancelled": "Cancelled",
	"canceled":  "Cancelled",
}

// NormalizeStatus canonicalizes a status value. Unknown statuses are
// preserved as the trimmed, title-cased original rather than rejected;
// canonical reports whether the value matched the known vocabulary.
func NormalizeStatus(raw string) (value string, canonical bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", false
	}
	if mapped, ok := canonicalStatuses[strings.ToLower(v)]; ok {
		return mapped, true
	}
	return titleCase(v), false
}
