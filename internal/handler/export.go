package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler lets a user download their enrollment history,
// including soft-deleted memberships.
type ExportHandler struct {
	Programs *store.ProgramStore
}

func NewExportHandler(programs *store.ProgramStore) *ExportHandler {
	return &ExportHandler{Programs: programs}
}

// CSV exports the user's full enrollment history as CSV.
func (h *ExportHandler) CSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	programs, err := h.Programs.HistoryFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"programs_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"Program", "Price", "Joined", "Active"})
	for _, p := range programs {
		_ = writer.Write([]string{
			p.ProgramName,
			strconv.FormatInt(p.Price, 10),
			p.JoinedAt.Format("2006-01-02"),
			strconv.FormatBool(p.IsActive),
		})
	}
}

// XLSX exports the user's full enrollment history as a spreadsheet.
func (h *ExportHandler) XLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	programs, err := h.Programs.HistoryFor(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Programs"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Program", "Price", "Joined", "Active"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, hd)
	}
	for row, p := range programs {
		values := []interface{}{
			p.ProgramName,
			p.Price,
			p.JoinedAt.Format("2006-01-02"),
			p.IsActive,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"programs_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
