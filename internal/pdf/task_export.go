package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskpilot/internal/models"
)

// TaskReportGenerator рендерит список задач пользователя в PDF.
type TaskReportGenerator struct {
	title string
}

func NewTaskReportGenerator() *TaskReportGenerator {
	return &TaskReportGenerator{title: "Task report"}
}

func (g *TaskReportGenerator) Generate(username string, tasks []models.Task) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(g.title, false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, g.title, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 11)
	sub := fmt.Sprintf("%s — %s", username, time.Now().Format("02.01.2006"))
	doc.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(doc)
	doc.Ln(3)

	// шапка таблицы
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 7, "Task", "1", 0, "L", false, 0, "")
	doc.CellFormat(50, 7, "Scheduled for", "1", 0, "L", false, 0, "")
	doc.CellFormat(30, 7, "Status", "1", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, t := range tasks {
		status := "open"
		if t.Completed {
			status = "done"
		}
		doc.CellFormat(90, 7, t.Name, "1", 0, "L", false, 0, "")
		doc.CellFormat(50, 7, t.ScheduledFor.Format("02.01.2006 15:04"), "1", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, status, "1", 1, "L", false, 0, "")
	}
	if len(tasks) == 0 {
		doc.CellFormat(170, 7, "No tasks", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *TaskReportGenerator) hr(doc *gofpdf.Fpdf) {
	x, y := doc.GetXY()
	doc.SetDrawColor(120, 120, 120)
	doc.Line(20, y, 190, y)
	doc.SetXY(x, y+2)
}
