package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/selection-crew/selection-service/internal/store"
	"github.com/selection-crew/selection-service/internal/utils"
)

func newImportExportService(memStore store.RecordStore) ImportExportService {
	questions := NewQuestionService(memStore, testLogger(), utils.NewValidator())
	return NewImportExportService(memStore, questions, testLogger())
}

func TestImportQuestionsFromCSV(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	svc := newImportExportService(memStore)

	csvData := strings.Join([]string{
		"Question,Option_A,Option_B,Option_C,Option_D,Correct_Answer,Points,Category",
		"What is overfitting?,memorizing,generalizing,,,A,2,ml",
		"Bad row,only-one-option,,,,0,2,ml",
		"Pick the even number,1,2,3,,1,1,basics",
	}, "\n")

	result, err := svc.ImportQuestionsFromCSV(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)

	rows, err := memStore.Read(ctx, store.TableQuizQuestions, "A2:H")
	require.NoError(t, err)
	questions, skipped := store.ParseQuestionRows(rows)
	require.Empty(t, skipped)
	require.Len(t, questions, 2)
	assert.Equal(t, 0, questions[0].CorrectAnswer)
}

func TestImportQuestionsFromFile_UnsupportedExtension(t *testing.T) {
	svc := newImportExportService(store.NewMemoryStore())

	_, err := svc.ImportQuestionsFromFile(context.Background(), strings.NewReader("x"), "questions.pdf")
	assert.Error(t, err)
}

func TestImportQuestionsFromExcel(t *testing.T) {
	ctx := context.Background()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, header := range store.QuestionsHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, f.SetCellValue(sheet, cell, header))
	}
	for i, value := range []string{"What is a tensor?", "a scalar", "an n-dimensional array", "", "", "B", "2", "ml"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		require.NoError(t, f.SetCellValue(sheet, cell, value))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	memStore := store.NewMemoryStore()
	svc := newImportExportService(memStore)

	result, err := svc.ImportQuestionsFromExcel(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, 1, result.Questions[0].CorrectAnswer)
}

func TestExportResultsToExcel(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	seedResults(t, memStore, sampleResults())

	svc := newImportExportService(memStore)

	data, err := svc.ExportResultsToExcel(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "STU001", rows[1][0])
}
