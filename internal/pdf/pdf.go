// Package pdf renders the member registration receipt ("Bukti Pendaftaran Member").
package pdf

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"dealerpro/internal/domain"
)

const (
	title    = "DEALER PRO PREMIUM"
	subtitle = "Bukti Pendaftaran Member"
	qrImage  = "member-qr"
)

var (
	primary = [3]int{99, 102, 241}
	stripe  = [3]int{245, 245, 250}
)

// FileName is the download name: Bukti_Pendaftaran_Budi_Santoso.pdf.
func FileName(name string) string {
	return "Bukti_Pendaftaran_" + strings.Join(strings.Fields(name), "_") + ".pdf"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// birthLine renders "Bogor, 17/5/1990".
func birthLine(u domain.User) string {
	date := "-"
	if d, err := time.Parse("2006-01-02", u.BirthDay()); err == nil {
		date = d.Format("2/1/2006")
	}
	return dash(u.BirthPlace) + ", " + date
}

func rows(u domain.User) [][2]string {
	nationality := u.Nationality
	if nationality == domain.ForeignCitizen && u.NationalityName != "" {
		nationality += " (" + u.NationalityName + ")"
	}
	return [][2]string{
		{"Nama Lengkap", dash(u.Name)},
		{"Email", dash(u.Email)},
		{"Alamat KTP", dash(u.KTPAddress)},
		{"Alamat Domisili", dash(u.CurrentAddress)},
		{"Kecamatan", dash(u.Kecamatan)},
		{"Kabupaten", dash(u.Kabupaten)},
		{"Provinsi", dash(u.Provinsi)},
		{"Nomor Telepon", dash(u.PhoneNumber)},
		{"Nomor HP", dash(u.HPNumber)},
		{"Kewarganegaraan", dash(nationality)},
		{"Tempat, Tgl Lahir", birthLine(u)},
		{"Jenis Kelamin", dash(u.Gender)},
		{"Agama", dash(u.Religion)},
		{"Status Menikah", dash(u.MaritalStatus)},
	}
}

// ProfilePDF writes the A4 receipt for u to w.
func ProfilePDF(w io.Writer, u domain.User, printedAt time.Time) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(subtitle+" - "+u.Name, true)
	doc.SetCreator("dealerpro", true)
	doc.SetCreationDate(printedAt)
	doc.SetMargins(20, 15, 20)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(primary[0], primary[1], primary[2])
	doc.SetXY(20, 12)
	doc.CellFormat(170, 10, title, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 16)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(170, 9, subtitle, "", 1, "C", false, 0, "")

	doc.SetDrawColor(200, 200, 200)
	doc.Line(20, 35, 190, 35)

	// table
	const labelW, valueW, rowH = 50.0, 120.0, 8.0
	doc.SetXY(20, 45)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(primary[0], primary[1], primary[2])
	doc.SetTextColor(255, 255, 255)
	doc.CellFormat(labelW, rowH, "Field", "", 0, "L", true, 0, "")
	doc.CellFormat(valueW, rowH, "Informasi", "", 1, "L", true, 0, "")

	doc.SetTextColor(0, 0, 0)
	doc.SetFillColor(stripe[0], stripe[1], stripe[2])
	for i, r := range rows(u) {
		fill := i%2 == 1
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(labelW, rowH, tr(r[0]), "", 0, "L", fill, 0, "")
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(valueW, rowH, tr(r[1]), "", 1, "L", fill, 0, "")
	}

	// footer and signature
	y := doc.GetY() + 20
	doc.SetFont("Helvetica", "", 10)
	doc.Text(20, y, "Dicetak pada: "+printedAt.Format("2/1/2006, 15.04.05"))
	doc.Text(150, y, "Tertanda,")
	doc.Text(150, y+30, "Manajemen Dealer")

	if u.ID != "" {
		png, err := qrcode.Encode("member:"+u.ID, qrcode.Medium, 256)
		if err != nil {
			return errors.Wrap(err, "member qr")
		}
		opt := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader(qrImage, opt, bytes.NewReader(png))
		doc.ImageOptions(qrImage, 20, y+6, 30, 30, false, opt, 0, "")
	}

	if err := doc.Error(); err != nil {
		return errors.Wrap(err, "render pdf")
	}
	return doc.Output(w)
}
