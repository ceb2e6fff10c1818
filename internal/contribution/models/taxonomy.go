package models

import "strings"

// Category is the scientific domain of a contribution.
type Category string

const (
	CategoryEnvironment Category = "environment"
	CategoryBiology     Category = "biology"
	CategoryAstronomy   Category = "astronomy"
	CategoryPhysics     Category = "physics"
)

var validCategories = map[Category]bool{
	CategoryEnvironment: true,
	CategoryBiology:     true,
	CategoryAstronomy:   true,
	CategoryPhysics:     true,
}

// IsValid reports whether c is one of the registered categories. Matching is
// exact; the ledger stores the string as submitted.
func (c Category) IsValid() bool {
	return validCategories[c]
}

// DataType is the kind of record being contributed.
type DataType string

const (
	DataTypeObservation DataType = "observation"
	DataTypeMeasurement DataType = "measurement"
	DataTypePhoto       DataType = "photo"
	DataTypeSample      DataType = "sample"
)

var validDataTypes = map[DataType]bool{
	DataTypeObservation: true,
	DataTypeMeasurement: true,
	DataTypePhoto:       true,
	DataTypeSample:      true,
}

func (d DataType) IsValid() bool {
	return validDataTypes[d]
}

// Categories lists the valid categories in a stable order.
func Categories() []Category {
	return []Category{CategoryEnvironment, CategoryBiology, CategoryAstronomy, CategoryPhysics}
}

// DataTypes lists the valid data types in a stable order.
func DataTypes() []DataType {
	return []DataType{DataTypeObservation, DataTypeMeasurement, DataTypePhoto, DataTypeSample}
}

func joinCategories() string {
	parts := make([]string, 0, len(validCategories))
	for _, c := range Categories() {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

func joinDataTypes() string {
	parts := make([]string, 0, len(validDataTypes))
	for _, d := range DataTypes() {
		parts = append(parts, string(d))
	}
	return strings.Join(parts, ", ")
}
