// Package importer loads lessons from spreadsheet or CSV files.
//
// Both formats use the columns title, description, level, duration and
// content. Content entries are separated by newlines or "|", each written as
// "term = definition". A first row whose title cell reads "title" is treated
// as a header.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/vytor/lingualearn/internal/lesson"
	"github.com/vytor/lingualearn/internal/logger"
	"github.com/vytor/lingualearn/internal/models"
	"github.com/xuri/excelize/v2"
)

// PreferredSheet is read when present; otherwise the first sheet is used.
const PreferredSheet = "Lessons"

const (
	colTitle = iota
	colDescription
	colLevel
	colDuration
	colContent
)

// Result holds the outcome of an import.
type Result struct {
	Processed int      `json:"processed"`
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// LessonImporter persists parsed lessons.
type LessonImporter interface {
	ImportLessons(ctx context.Context, lessons []models.Lesson) (int, error)
}

type Importer struct {
	lessons LessonImporter
}

func New(lessons LessonImporter) *Importer {
	return &Importer{lessons: lessons}
}

// ImportFile parses path and imports every valid row. Invalid rows are
// skipped and reported in Result.Errors.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	log := logger.FromContext(ctx).WithPrefix("import")
	log.Info("importing lessons from %s", path)

	lessons, result, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	n, err := i.lessons.ImportLessons(ctx, lessons)
	if err != nil {
		return nil, err
	}
	result.Imported = n

	log.Info("import finished: processed=%d imported=%d skipped=%d", result.Processed, result.Imported, result.Skipped)
	for _, msg := range result.Errors {
		log.Warn("%s", msg)
	}
	return result, nil
}

// ReadFile parses lessons from an .xlsx or .csv file.
func ReadFile(path string) ([]models.Lesson, *Result, error) {
	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if err != nil {
		return nil, nil, err
	}

	lessons, result := parseRows(rows)
	return lessons, result, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	if slices.Contains(sheets, PreferredSheet) {
		sheet = PreferredSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func parseRows(rows [][]string) ([]models.Lesson, *Result) {
	result := &Result{Errors: []string{}}
	var lessons []models.Lesson

	for i, row := range rows {
		rowNum := i + 1
		if i == 0 && strings.EqualFold(cell(row, colTitle), "title") {
			continue
		}
		if isBlank(row) {
			continue
		}

		result.Processed++
		l, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		lessons = append(lessons, l)
	}
	return lessons, result
}

func parseRow(row []string) (models.Lesson, error) {
	l := models.Lesson{
		Title:       cell(row, colTitle),
		Description: cell(row, colDescription),
		Level:       strings.ToLower(cell(row, colLevel)),
	}
	if l.Title == "" {
		return l, fmt.Errorf("missing title")
	}
	if l.Level == "" {
		l.Level = models.LevelBeginner
	}
	if !models.ValidLevel(l.Level) {
		return l, fmt.Errorf("invalid level %q", l.Level)
	}

	if d := cell(row, colDuration); d != "" {
		minutes, err := strconv.Atoi(d)
		if err != nil || minutes < 0 {
			return l, fmt.Errorf("invalid duration %q", d)
		}
		l.Duration = minutes
	}

	entries := lesson.ParseEntries(strings.ReplaceAll(cell(row, colContent), "|", "\n"))
	if len(entries) == 0 {
		return l, fmt.Errorf("missing content")
	}
	l.Content = lesson.FormatEntries(entries)
	return l, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
