// Package artifact renders downloadable visitor pass documents.
package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/frontdesk/visitor-pass/internal/core/ports"
)

const (
	passesDir   = "passes"
	timeDisplay = "Mon, 02 Jan 2006 15:04 MST"
)

// PDFRenderer writes one A4 PDF per pass under <dir>/passes and returns
// its public URL under <baseURL>/uploads/passes.
type PDFRenderer struct {
	dir     string
	baseURL string
}

var _ ports.ArtifactRenderer = (*PDFRenderer)(nil)

func NewPDFRenderer(uploadDir, baseURL string) *PDFRenderer {
	return &PDFRenderer{dir: uploadDir, baseURL: strings.TrimRight(baseURL, "/")}
}

// FileName is the artifact file name for a pass id.
func FileName(passID string) string {
	return "pass-" + passID + ".pdf"
}

func (r *PDFRenderer) Render(ctx context.Context, in ports.ArtifactInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if in.Visitor == nil {
		return "", fmt.Errorf("render pass %s: visitor is required", in.PassID)
	}

	outDir := filepath.Join(r.dir, passesDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Visitor Pass "+in.PassID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, "VISITOR PASS", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 13)
	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(40, 9, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 13)
		pdf.CellFormat(0, 9, tr(value), "", 1, "L", false, 0, "")
	}
	row("Name:", in.Visitor.FullName)
	row("Email:", in.Visitor.Email)
	row("Phone:", in.Visitor.Phone)
	row("Host:", in.Visitor.Host)
	row("Purpose:", in.Visitor.Purpose)
	row("Valid from:", in.ValidFrom.Format(timeDisplay))
	row("Valid until:", in.ValidUntil.Format(timeDisplay))
	row("Pass ID:", in.PassID)

	if len(in.QRCode) > 0 {
		opt := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		name := "qr-" + in.PassID
		pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(in.QRCode))
		pdf.ImageOptions(name, 65, pdf.GetY()+10, 80, 80, false, opt, 0, "")
	}

	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 8, "Present this pass at the front desk.", "", 1, "C", false, 0, "")

	name := FileName(in.PassID)
	if err := pdf.OutputFileAndClose(filepath.Join(outDir, name)); err != nil {
		return "", fmt.Errorf("write pass pdf: %w", err)
	}

	return r.baseURL + "/uploads/" + passesDir + "/" + name, nil
}

func (r *PDFRenderer) Discard(_ context.Context, passID string) error {
	err := os.Remove(filepath.Join(r.dir, passesDir, FileName(passID)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("discard pass pdf: %w", err)
	}
	return nil
}
