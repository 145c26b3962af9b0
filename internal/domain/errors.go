package domain

import "errors"

// Common import errors
var (
	// ErrFilenameFormat is returned when a spreadsheet filename does not match
	// the PlanName_Elevation_Foundation_OptionName grammar
	ErrFilenameFormat = errors.New("filename does not match expected format")

	// ErrEmptyWorkbook is returned when a spreadsheet has no data rows
	ErrEmptyWorkbook = errors.New("workbook contains no data rows")

	// ErrMissingItem is returned when a row has no item name
	ErrMissingItem = errors.New("row has no item name")

	// ErrMissingTakeoffID is returned when a row has no source takeoff identifier
	ErrMissingTakeoffID = errors.New("row has no takeoff identifier")

	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")
)
