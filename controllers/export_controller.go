package controllers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/rllagas/csm-server/config"
	"github.com/rllagas/csm-server/models"
	"github.com/rllagas/csm-server/survey"
)

type exportReq struct {
	Format    string  `json:"format"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// CreateExport queues a CSV/XLSX export of the stored responses.
func CreateExport(c *gin.Context) {
	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if req.Format != "csv" && req.Format != "xlsx" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Format must be csv or xlsx"})
		return
	}

	var fromPtr, toPtr *time.Time
	if req.RangeFrom != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeFrom); err == nil {
			fromPtr = &t
		}
	}
	if req.RangeTo != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeTo); err == nil {
			toPtr = &t
		}
	}

	job := models.ExportJob{
		JobID:     uuid.New().String(),
		Format:    req.Format,
		RangeFrom: fromPtr,
		RangeTo:   toPtr,
		Status:    "queued",
	}
	if err := config.DB.Create(&job).Error; err != nil {
		log.Error().Err(err).Msg("could not queue export job")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not queue export"})
		return
	}

	go processExportJob(job.JobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.JobID,
		"status": "queued",
	})
}

// GetExport serves the finished file, or the job status while it runs.
func GetExport(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not read job"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

func failExport(job *models.ExportJob, err error) {
	em := err.Error()
	config.DB.Model(job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
	log.Error().Err(err).Str("job_id", job.JobID).Msg("export failed")
}

func processExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	fields, err := SchemaCache.Fields()
	if err != nil {
		failExport(&job, err)
		return
	}
	header, keys := exportColumns(fields)

	q := config.DB.Model(&models.Submission{})
	if job.RangeFrom != nil {
		q = q.Where("submitted_at >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("submitted_at <= ?", job.RangeTo)
	}
	var subs []models.Submission
	if err := q.Order("submitted_at ASC").Find(&subs).Error; err != nil {
		failExport(&job, err)
		return
	}

	outDir := "./exports"
	os.MkdirAll(outDir, 0755)
	outPath := path.Join(outDir, fmt.Sprintf("responses_%s.%s", job.JobID, job.Format))

	rows := make([][]string, 0, len(subs)+1)
	rows = append(rows, header)
	for _, s := range subs {
		rows = append(rows, exportRow(s, keys))
	}

	switch job.Format {
	case "xlsx":
		err = writeXLSX(outPath, rows)
	default:
		err = writeCSV(outPath, rows)
	}
	if err != nil {
		failExport(&job, err)
		return
	}

	config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": outPath})
}

// exportColumns flattens the schema into one column per answer key;
// matrix fields expand to one column per row, keyed "field.row".
func exportColumns(fields []survey.FieldDefinition) (header []string, keys []string) {
	header = []string{"response_id", "email", "submitted_at", "overall_score"}
	for _, f := range fields {
		if f.Type == survey.TypeMatrix {
			for _, row := range f.Rows {
				header = append(header, f.Name+"."+row.Name)
				keys = append(keys, f.Name+"."+row.Name)
			}
			continue
		}
		header = append(header, f.Name)
		keys = append(keys, f.Name)
		if f.Name == survey.ClientTypeField {
			companion := survey.OtherCompanion(f.Name)
			header = append(header, companion)
			keys = append(keys, companion)
		}
	}
	return header, keys
}

func exportRow(s models.Submission, keys []string) []string {
	email := ""
	if s.Email != nil {
		email = *s.Email
	}
	row := []string{
		fmt.Sprintf("%d", s.ID),
		email,
		s.SubmittedAt.Format(time.RFC3339),
		fmt.Sprintf("%.2f", s.OverallScore),
	}

	var answers map[string]any
	_ = json.Unmarshal([]byte(s.AnswersJSON), &answers)

	for _, key := range keys {
		row = append(row, answerCell(answers, key))
	}
	return row
}

func answerCell(answers map[string]any, key string) string {
	if v, ok := answers[key]; ok {
		return fmt.Sprint(v)
	}
	// matrix keys are "field.row"
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			if m, ok := answers[key[:i]].(map[string]any); ok {
				if v, ok := m[key[i+1:]]; ok {
					return fmt.Sprint(v)
				}
			}
			break
		}
	}
	return ""
}

func writeCSV(outPath string, rows [][]string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	return w.WriteAll(rows)
}

func writeXLSX(outPath string, rows [][]string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	sheet := "Responses"
	wb.SetSheetName("Sheet1", sheet)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := wb.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}
	return wb.SaveAs(outPath)
}
