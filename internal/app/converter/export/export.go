package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/tealeg/xlsx"

	"audio2num/internal/app/model"
	"audio2num/internal/app/util/files"
)

// SheetName is the worksheet ToExcel writes.
const SheetName = "Results"

var header = []string{
	"ID", "File Name", "Source Path", "Outcome", "Number",
	"Transcript", "Audio Duration", "Error Message", "Processed At",
}

// ToExcel writes results to an xlsx workbook at outputFilePath.
func ToExcel(results []model.Result, outputFilePath string) error {
	if err := files.EnsureDir(filepath.Dir(outputFilePath)); err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, title := range header {
		headerRow.AddCell().Value = title
	}

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().SetInt64(r.ID)
		row.AddCell().Value = r.FileName
		row.AddCell().Value = r.SourcePath
		row.AddCell().Value = r.Outcome
		// numbers can exceed int64 and keep no leading zeros; store as text
		row.AddCell().Value = r.Number
		row.AddCell().Value = r.Transcript
		row.AddCell().Value = fmt.Sprintf("%.2f", r.AudioDuration)
		row.AddCell().Value = r.ErrorMessage
		row.AddCell().Value = r.ProcessedAt.Format(time.RFC3339)
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save %s: %w", outputFilePath, err)
	}
	return nil
}
