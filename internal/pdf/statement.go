package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"telshop/internal/models"
)

// Generator renders printable documents for the shop.
type Generator interface {
	GenerateStatement(data StatementData) (string, error)
	GenerateWarrantySlip(data WarrantyData) (string, error)
}

type DocumentGenerator struct {
	RootDir  string // storage root, e.g. "./files"
	FontPath string // TTF path, e.g. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

// StatementData is a client account statement: balances plus the full
// payment history, newest first.
type StatementData struct {
	Client   *models.CreditClient
	Payments []*models.Payment
	Filename string // base name; generated from the client id when empty
}

type WarrantyData struct {
	Phone    *models.Phone
	Months   int
	Filename string
}

func NewDocumentGenerator(rootDir, fontPath string) *DocumentGenerator {
	return &DocumentGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *DocumentGenerator) GenerateStatement(data StatementData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("statement_%s.pdf", data.Client.ID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Relevé de compte — %s", data.Client.Name), false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "RELEVÉ DE COMPTE", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	pdf.CellFormat(0, 7, time.Now().Format("02/01/2006"), "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	g.sectionTitle(pdf, "Client")
	g.kvLine(pdf, "Nom", data.Client.Name)
	g.kvLine(pdf, "Téléphone", data.Client.Phone)
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Solde")
	g.kvLine(pdf, "Dette totale", fmt.Sprintf("%.2f DH", data.Client.TotalDebt))
	g.kvLine(pdf, "Montant payé", fmt.Sprintf("%.2f DH", data.Client.AmountPaid))
	g.kvLine(pdf, "Solde restant", fmt.Sprintf("%.2f DH", data.Client.RemainingBalance))
	if data.Client.PaymentDueDate != nil {
		g.kvLine(pdf, "Échéance", data.Client.PaymentDueDate.Format("02/01/2006"))
	}
	pdf.Ln(2)
	g.hr(pdf)

	g.sectionTitle(pdf, "Historique des paiements")
	if len(data.Payments) == 0 {
		pdf.SetFont(g.fontName, "", 11)
		pdf.CellFormat(0, 6, "Aucun paiement enregistré.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont(g.fontName, "B", 11)
		pdf.CellFormat(40, 7, "Date", "B", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, "Montant", "B", 0, "R", false, 0, "")
		pdf.CellFormat(0, 7, "Notes", "B", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 11)
		for _, p := range data.Payments {
			pdf.CellFormat(40, 6, p.Date.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, fmt.Sprintf("%.2f DH", p.Amount), "", 0, "R", false, 0, "")
			notes := p.Notes
			if notes == "" {
				notes = "-"
			}
			pdf.CellFormat(0, 6, notes, "", 1, "L", false, 0, "")
		}
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *DocumentGenerator) GenerateWarrantySlip(data WarrantyData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("warranty_%s.pdf", data.Phone.ID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	months := data.Months
	if months <= 0 {
		months = 3
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	g.addUTF8Font(pdf)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "BON DE GARANTIE", "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	g.kvLine(pdf, "Client", data.Phone.CustomerName)
	g.kvLine(pdf, "Appareil", fmt.Sprintf("%s %s", data.Phone.Brand, data.Phone.Name))
	if data.Phone.IMEI != "" {
		g.kvLine(pdf, "IMEI", data.Phone.IMEI)
	}
	if data.Phone.BatteryHealth > 0 {
		g.kvLine(pdf, "Batterie", fmt.Sprintf("%d%%", data.Phone.BatteryHealth))
	}
	g.kvLine(pdf, "Prix", fmt.Sprintf("%.2f DH", data.Phone.SellingPrice))
	g.kvLine(pdf, "Date de vente", data.Phone.SaleDate.Format("02/01/2006"))
	g.kvLine(pdf, "Garantie", fmt.Sprintf("%d mois (jusqu'au %s)",
		months, data.Phone.SaleDate.AddDate(0, months, 0).Format("02/01/2006")))

	pdf.Ln(4)
	pdf.SetFont(g.fontName, "", 10)
	pdf.MultiCell(0, 5,
		"La garantie couvre les défauts de fonctionnement hors casse, oxydation et mauvaise utilisation. "+
			"Présenter ce bon pour toute réclamation.",
		"", "L", false)

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *DocumentGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename)
	return filepath.Join(g.RootDir, filename), nil
}

func (g *DocumentGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
