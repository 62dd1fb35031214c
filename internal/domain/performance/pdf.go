package performance

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

func RenderPDF(review Review, people Participants) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Performance Review %s", review.ReviewPeriod), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Performance Review")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Employee: %s", people.Employee)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Reviewer: %s", people.Reviewer)))
	pdf.Ln(7)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Period: %s", review.ReviewPeriod)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", review.Status))
	pdf.Ln(7)
	rating := "not rated"
	if review.Rating != nil {
		rating = fmt.Sprintf("%d / %d", *review.Rating, MaxRating)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Rating: %s", rating))
	pdf.Ln(7)
	if review.DueDate != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Due: %s", review.DueDate.Format("2006-01-02")))
		pdf.Ln(7)
	}
	if review.CompletedAt != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Completed: %s", review.CompletedAt.Format("2006-01-02")))
		pdf.Ln(7)
	}

	if len(review.Goals) > 0 {
		section(pdf, "Goals")
		for _, goal := range review.Goals {
			line := fmt.Sprintf("- %s (%s)", goal.Title, strings.ReplaceAll(goal.Status, "_", " "))
			if goal.Description != "" {
				line += ": " + goal.Description
			}
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}
	textSection(pdf, tr, "Achievements", review.Achievements)
	textSection(pdf, tr, "Areas for Improvement", review.AreasForImprovement)
	textSection(pdf, tr, "Feedback", review.Feedback)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func textSection(pdf *gofpdf.Fpdf, tr func(string) string, title string, body *string) {
	if body == nil || strings.TrimSpace(*body) == "" {
		return
	}
	section(pdf, title)
	pdf.MultiCell(0, 6, tr(*body), "", "L", false)
}
