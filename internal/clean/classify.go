package clean

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnClass selects which normalizer applies to a column.
type ColumnClass string

const (
	ClassDate         ColumnClass = "date"
	ClassCurrency     ColumnClass = "currency"
	ClassStatus       ColumnClass = "status"
	ClassText         ColumnClass = "text"
	ClassUnclassified ColumnClass = "unclassified"
)

// ColumnMap maps a lower-cased, trimmed column title to its class. Unknown
// titles classify as unclassified and pass through the cleaner untouched.
type ColumnMap map[string]ColumnClass

// Classify resolves a column title to its class. Classification is total:
// every title resolves, defaulting to unclassified.
func (m ColumnMap) Classify(title string) ColumnClass {
	if c, ok := m[strings.ToLower(strings.TrimSpace(title))]; ok {
		return c
	}
	return ClassUnclassified
}

// builtinColumnMap is curated from the two known board schemas.
var builtinColumnMap = ColumnMap{
	// Date columns
	"close date (a)":        ClassDate,
	"tentative close date":  ClassDate,
	"created date":          ClassDate,
	"data delivery date":    ClassDate,
	"date of po/loi":        ClassDate,
	"probable start date":   ClassDate,
	"probable end date":     ClassDate,
	"last invoice date":     ClassDate,
	"collection date":       ClassDate,

	// Currency / numeric columns
	"masked deal value": ClassCurrency,
	"amount in rupees (excl of gst) (masked)":           ClassCurrency,
	"amount in rupees (incl of gst) (masked)":           ClassCurrency,
	"billed value in rupees (excl of gst.) (masked)":    ClassCurrency,
	"billed value in rupees (incl of gst.) (masked)":    ClassCurrency,
	"collected amount in rupees (incl of gst.) (masked)": ClassCurrency,
	"amount to be billed in rs. (exl. of gst) (masked)":  ClassCurrency,
	"amount to be billed in rs. (incl. of gst) (masked)": ClassCurrency,
	"amount receivable (masked)":                         ClassCurrency,
	"quantity by ops":              ClassCurrency,
	"quantity billed (till date)":  ClassCurrency,
	"balance in quantity":          ClassCurrency,

	// Status columns
	"deal status":          ClassStatus,
	"deal stage":           ClassStatus,
	"closure probability":  ClassStatus,
	"execution status":     ClassStatus,
	"billing status":       ClassStatus,
	"invoice status":       ClassStatus,
	"wo status (billed)":   ClassStatus,
	"collection status":    ClassStatus,
	"nature of work":       ClassStatus,
	"document type":        ClassStatus,
	"type of work":         ClassStatus,
	"ar priority account":  ClassStatus,
	"product deal":         ClassStatus,
	"actual billing month": ClassStatus,
	"owner code":           ClassStatus,
	"bd/kam personnel code": ClassStatus,
	"is any skylark software platform part of the client deliverables in this deal?": ClassStatus,
	"last executed month of recurring project":                                       ClassStatus,

	// Free-text columns
	"sector/service":          ClassText,
	"sector":                  ClassText,
	"expected billing month":  ClassText,
	"actual collection month": ClassText,
}

// DefaultColumnMap returns a copy of the built-in classification map.
func DefaultColumnMap() ColumnMap {
	m := make(ColumnMap, len(builtinColumnMap))
	for k, v := range builtinColumnMap {
		m[k] = v
	}
	return m
}

// LoadColumnMap merges column->class entries from a YAML file over the
// built-in map, so new boards or renamed columns are handled by data
// rather than a code change. File shape: `Column Title: date|currency|status|text`.
func LoadColumnMap(path string) (ColumnMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read column map: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse column map yaml: %w", err)
	}

	m := DefaultColumnMap()
	for title, class := range raw {
		c := ColumnClass(strings.ToLower(strings.TrimSpace(class)))
		switch c {
		case ClassDate, ClassCurrency, ClassStatus, ClassText, ClassUnclassified:
			m[strings.ToLower(strings.TrimSpace(title))] = c
		default:
			return nil, fmt.Errorf("column %q: unknown class %q", title, class)
		}
	}
	return m, nil
}
