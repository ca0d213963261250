package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/selection-crew/selection-service/internal/errors"
	"github.com/selection-crew/selection-service/internal/models"
	"github.com/selection-crew/selection-service/internal/store"
)

// ImportExportService handles file import/export for questions and results.
type ImportExportService interface {
	// Import operations
	ImportQuestionsFromFile(ctx context.Context, reader io.Reader, filename string) (*ImportResult, error)
	ImportQuestionsFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error)
	ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error)

	// Export operations
	ExportResultsToExcel(ctx context.Context) ([]byte, error)
	ExportFinalSelectionToExcel(ctx context.Context) ([]byte, error)
}

// ImportResult summarizes one import run. Malformed rows are collected,
// never fatal; the valid remainder is stored.
type ImportResult struct {
	TotalRows    int                               `json:"total_rows"`
	SuccessCount int                               `json:"success_count"`
	ErrorCount   int                               `json:"error_count"`
	Errors       []*apperrors.MalformedRecordError `json:"errors,omitempty"`
	Questions    []models.QuizQuestion             `json:"questions,omitempty"`
}

type importExportService struct {
	store     store.RecordStore
	questions QuestionService
	logger    *slog.Logger
}

func NewImportExportService(recordStore store.RecordStore, questions QuestionService, logger *slog.Logger) ImportExportService {
	return &importExportService{
		store:     recordStore,
		questions: questions,
		logger:    logger,
	}
}

// ===== IMPORT OPERATIONS =====

func (s *importExportService) ImportQuestionsFromFile(ctx context.Context, reader io.Reader, filename string) (*ImportResult, error) {
	s.logger.Info("Starting question import", "filename", filename)

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return s.ImportQuestionsFromCSV(ctx, reader)
	case ".xlsx", ".xls":
		return s.ImportQuestionsFromExcel(ctx, reader)
	default:
		return nil, apperrors.NewValidationError("file", "unsupported file format", ext)
	}
}

func (s *importExportService) ImportQuestionsFromCSV(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, apperrors.NewValidationError("file", "CSV must have header row and at least one data row", len(records))
	}

	return s.storeImportedRows(ctx, records[1:])
}

func (s *importExportService) ImportQuestionsFromExcel(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("file", "Excel file has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read Excel rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, apperrors.NewValidationError("file", "Excel must have header row and at least one data row", len(rows))
	}

	return s.storeImportedRows(ctx, rows[1:])
}

func (s *importExportService) storeImportedRows(ctx context.Context, rows [][]string) (*ImportResult, error) {
	questions, skipped := store.ParseQuestionRows(rows)

	result := &ImportResult{
		TotalRows:    len(rows),
		SuccessCount: len(questions),
		ErrorCount:   len(skipped),
		Errors:       skipped,
		Questions:    questions,
	}

	if len(questions) == 0 {
		return result, ErrNoQuestions
	}

	if _, err := s.questions.StoreQuestions(ctx, questions); err != nil {
		return result, err
	}

	s.logger.Info("Question import completed",
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount)
	return result, nil
}

// ===== EXPORT OPERATIONS =====

func (s *importExportService) ExportResultsToExcel(ctx context.Context) ([]byte, error) {
	rows, err := s.store.Read(ctx, store.TableQuizResults, "A1:I")
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz results: %w", err)
	}
	return s.rowsToExcel("Results", rows)
}

func (s *importExportService) ExportFinalSelectionToExcel(ctx context.Context) ([]byte, error) {
	rows, err := s.store.Read(ctx, store.TableFinalSelection, "A1:M")
	if err != nil {
		return nil, fmt.Errorf("failed to read final selection: %w", err)
	}
	return s.rowsToExcel("Final Selection", rows)
}

func (s *importExportService) rowsToExcel(sheetName string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for rowIndex, row := range rows {
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+1)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
