// Package ingest parses uploaded spreadsheets into heritage site records.
//
// Parsing is all-or-nothing: every row is validated and either a complete
// record set or the full list of row errors comes back. Callers only
// replace the live dataset when the error list is empty.
package ingest

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heritageatlas/heritage-server/internal/domain"
	"github.com/heritageatlas/heritage-server/internal/geo"
	"github.com/heritageatlas/heritage-server/internal/validation"
)

// Spreadsheet column names, matching the UNESCO XLSX export layout.
const (
	colID            = "id_no"
	colName          = "name_en"
	colDescription   = "short_description_en"
	colJustification = "justification_en"
	colCountry       = "states_name_en"
	colRegion        = "region_en"
	colCategory      = "category"
	colYear          = "date_inscribed"
	colDanger        = "danger"
	colTransboundary = "transboundary"
	colArea          = "area_hectares"
	colLongitude     = "longitude"
	colLatitude      = "latitude"
)

// requiredColumns must be present in the header row.
var requiredColumns = []string{
	colID, colName, colCountry, colCategory, colYear,
}

// RowError describes one failed cell or row during ingestion.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %s: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// rowRecord carries the scalar cells through struct validation. JSON tags
// name the originating spreadsheet columns in error details.
type rowRecord struct {
	ID      string  `json:"id_no" validate:"required"`
	Name    string  `json:"name_en" validate:"required"`
	Country string  `json:"states_name_en" validate:"required"`
	Year    int     `json:"date_inscribed" validate:"required,gte=1000,lte=2100"`
	Area    float64 `json:"area_hectares" validate:"gte=0"`
}

// Parser converts workbooks into site records.
type Parser struct {
	validator *validation.Validator
}

// NewParser creates a spreadsheet parser.
func NewParser() *Parser {
	return &Parser{validator: validation.New()}
}

// ParseWorkbook reads an XLSX workbook and converts its first sheet into
// site records. Row errors cover every failed row; a non-nil error means
// the file itself could not be read as a workbook.
func (p *Parser) ParseWorkbook(r io.Reader) ([]*domain.Site, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := indexHeader(rows[0])
	if rowErrs := missingColumns(header); len(rowErrs) > 0 {
		return nil, rowErrs, nil
	}

	var (
		sites   []*domain.Site
		rowErrs []RowError
		seen    = map[string]int{}
	)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		if emptyRow(row) {
			continue
		}

		site, errs := p.parseRow(rowNum, row, header)
		if len(errs) > 0 {
			rowErrs = append(rowErrs, errs...)
			continue
		}

		if prev, dup := seen[site.ID]; dup {
			rowErrs = append(rowErrs, RowError{
				Row:     rowNum,
				Column:  colID,
				Value:   site.ID,
				Message: fmt.Sprintf("duplicate id, first used in row %d", prev),
			})
			continue
		}
		seen[site.ID] = rowNum

		sites = append(sites, site)
	}

	return sites, rowErrs, nil
}

// parseRow converts one data row, accumulating every cell failure instead
// of stopping at the first.
func (p *Parser) parseRow(rowNum int, row []string, header headerIndex) (*domain.Site, []RowError) {
	cell := func(col string) string {
		idx, ok := header[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var errs []RowError
	fail := func(col, msg string) {
		errs = append(errs, RowError{Row: rowNum, Column: col, Value: cell(col), Message: msg})
	}

	rec := rowRecord{
		ID:      cell(colID),
		Name:    cell(colName),
		Country: cell(colCountry),
	}

	if raw := cell(colYear); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			fail(colYear, "expected an integer year")
		} else {
			rec.Year = year
		}
	}
	if raw := cell(colArea); raw != "" {
		area, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fail(colArea, "expected a number")
		} else {
			rec.Area = area
		}
	}

	if err := p.validator.Validate(rec); err != nil {
		failed := map[string]bool{}
		for _, e := range errs {
			failed[e.Column] = true
		}
		fields := validation.FieldErrors(err)
		if fields == nil {
			errs = append(errs, RowError{Row: rowNum, Message: err.Error()})
		}
		// Sorted so row error output is deterministic.
		for _, col := range slices.Sorted(maps.Keys(fields)) {
			// Don't stack a validator message on a column that already
			// failed to parse.
			if failed[col] {
				continue
			}
			errs = append(errs, RowError{Row: rowNum, Column: col, Value: cell(col), Message: fields[col]})
		}
	}

	category, ok := domain.ParseCategory(cell(colCategory))
	if !ok {
		fail(colCategory, "must be Cultural, Natural, or Mixed")
	}

	criteria := parseCriteriaFlags(rowNum, row, header, &errs)
	if len(errs) == 0 && len(criteria) == 0 {
		errs = append(errs, RowError{Row: rowNum, Message: "at least one criterion flag must be set"})
	}

	danger, ok := parseFlag(cell(colDanger))
	if !ok {
		fail(colDanger, "expected 0, 1, true, or false")
	}
	transboundary, ok := parseFlag(cell(colTransboundary))
	if !ok {
		fail(colTransboundary, "expected 0, 1, true, or false")
	}

	geometry := parseGeometry(cell, fail)

	if len(errs) > 0 {
		return nil, errs
	}

	return &domain.Site{
		ID:            rec.ID,
		Name:          rec.Name,
		Description:   cell(colDescription),
		Justification: cell(colJustification),
		Country:       rec.Country,
		Region:        cell(colRegion),
		Category:      category,
		Criteria:      criteria,
		YearInscribed: rec.Year,
		Danger:        danger,
		Transboundary: transboundary,
		AreaHectares:  rec.Area,
		Geometry:      geometry,
	}, nil
}

// parseGeometry builds a Point from the longitude/latitude columns.
// Both empty means no geometry (legal); one empty or out of range fails.
func parseGeometry(cell func(string) string, fail func(col, msg string)) *geo.Geometry {
	rawLon, rawLat := cell(colLongitude), cell(colLatitude)
	if rawLon == "" && rawLat == "" {
		return nil
	}
	if rawLon == "" || rawLat == "" {
		fail(colLongitude, "longitude and latitude must both be set or both empty")
		return nil
	}

	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || lon < -180 || lon > 180 {
		fail(colLongitude, "expected a longitude between -180 and 180")
		return nil
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		fail(colLatitude, "expected a latitude between -90 and 90")
		return nil
	}

	return geo.Point(lon, lat)
}

// parseCriteriaFlags reads the ten c1..n10 flag columns in vocabulary
// order.
func parseCriteriaFlags(rowNum int, row []string, header headerIndex, errs *[]RowError) []domain.Criterion {
	var criteria []domain.Criterion
	for _, c := range domain.Criteria {
		idx, ok := header[string(c)]
		if !ok || idx >= len(row) {
			continue
		}
		raw := strings.TrimSpace(row[idx])
		set, ok := parseFlag(raw)
		if !ok {
			*errs = append(*errs, RowError{
				Row: rowNum, Column: string(c), Value: raw,
				Message: "expected 0, 1, true, or false",
			})
			continue
		}
		if set {
			criteria = append(criteria, c)
		}
	}
	return criteria
}

// parseFlag reads a spreadsheet boolean cell. Empty counts as false.
func parseFlag(raw string) (value, ok bool) {
	switch strings.ToLower(raw) {
	case "", "0", "false":
		return false, true
	case "1", "true":
		return true, true
	default:
		return false, false
	}
}

type headerIndex map[string]int

// indexHeader maps lowercased column names to their positions.
func indexHeader(row []string) headerIndex {
	idx := make(headerIndex, len(row))
	for i, name := range row {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func missingColumns(header headerIndex) []RowError {
	var errs []RowError
	for _, col := range requiredColumns {
		if _, ok := header[col]; !ok {
			errs = append(errs, RowError{Row: 1, Column: col, Message: "missing required column"})
		}
	}
	return errs
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
