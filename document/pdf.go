// Package document renders completed interviews into PDF files.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/adotepet/adotepet/interview"
)

const (
	titleText  = "Formulário de Entrevista para Adoção"
	pageMargin = 15.0
)

// PDFRenderer writes interview documents under a directory.
type PDFRenderer struct {
	dir string
}

// NewPDFRenderer creates a renderer that writes into dir, creating it if
// needed.
func NewPDFRenderer(dir string) (*PDFRenderer, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrapf(err, "failed to create document directory %s", dir)
	}
	return &PDFRenderer{dir: dir}, nil
}

// Render produces the interview PDF and returns its path. The document is
// written to a temporary file first and renamed on success, so a failure
// never leaves a partial file at the returned location.
func (r *PDFRenderer) Render(ctx context.Context, record *interview.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// Core fonts don't cover "ç"/"ã"; translate to the latin-1 code page.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(titleText), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Data: %s", record.CompletedAt.Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Candidato: %s", record.User.DisplayName())), "", 1, "L", false, 0, "")
	animalLine := fmt.Sprintf("Animal: %s", record.AnimalType)
	if record.AnimalName != "" {
		animalLine = fmt.Sprintf("Animal: %s (%s)", record.AnimalName, record.AnimalType)
	}
	pdf.CellFormat(0, 8, tr(animalLine), "", 1, "L", false, 0, "")
	if len(record.PhotoPaths) > 0 {
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Fotos anexadas: %d", len(record.PhotoPaths))), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, qa := range record.Answers {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, tr(qa.Question), "", "L", false)
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 7, tr(fmt.Sprintf("Resposta: %s", qa.Answer)), "", "L", false)
		pdf.Ln(4)
	}

	filename := fmt.Sprintf("adoption_interview_%s_%s.pdf", sanitizeID(record.User.ID), record.CompletedAt.Format("20060102_150405"))
	finalPath := filepath.Join(r.dir, filename)
	tmpPath := finalPath + ".tmp"

	if err := pdf.OutputFileAndClose(tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrap(err, "failed to render interview document")
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", errors.Wrap(err, "failed to finalize interview document")
	}
	return finalPath, nil
}

// sanitizeID reduces an externally supplied user ID to filename-safe
// characters so it cannot carry path separators or dot segments.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
