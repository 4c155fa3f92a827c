package utils

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// WriteCSV streams the header and rows as an RFC 4180 attachment with the given file name.
func WriteCSV(ctx *gin.Context, filename string, header []string, rows [][]string) error {
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Status(http.StatusOK)

	writer := csv.NewWriter(ctx.Writer)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}

	LogMessageWithFields(ctx, "info", "Exported "+strconv.Itoa(len(rows))+" rows to "+filename)
	return nil
}

// FormatFloat renders a number without trailing zeros.
func FormatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// FormatTimestamp renders a time in UTC RFC 3339.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
