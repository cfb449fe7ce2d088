package forms

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"dealerpro/internal/domain"
	"dealerpro/internal/validate"
)

type MotorValues struct {
	Name   string
	Brand  string
	Year   string
	Color  string
	Price  string
	Status string
}

type Motor struct {
	Values MotorValues
	Errors Errors
	// Image is the currently stored picture when editing.
	Image string
}

func NewMotor(year int) *Motor {
	return &Motor{
		Values: MotorValues{Year: strconv.Itoa(year), Status: domain.MotorAvailable},
		Errors: Errors{},
	}
}

func MotorFrom(m domain.Motor) *Motor {
	price := ""
	if m.Price > 0 {
		price = strconv.FormatInt(int64(m.Price), 10)
	}
	status := m.Status
	if status == "" {
		status = domain.MotorAvailable
	}
	return &Motor{
		Values: MotorValues{
			Name:   m.Name,
			Brand:  m.Brand,
			Year:   strconv.Itoa(m.Year),
			Color:  m.Color,
			Price:  price,
			Status: status,
		},
		Errors: Errors{},
		Image:  m.Image,
	}
}

// Validate checks the posted motor. A new motor needs an image; an edit may keep the old one.
func (f *Motor) Validate(create bool, img *multipart.FileHeader, maxBytes int64) bool {
	f.Errors = Errors{}
	v := f.Values
	if !validate.Required(v.Name) {
		f.Errors.Set("name", "Nama motor harus diisi")
	}
	if !validate.Required(v.Brand) {
		f.Errors.Set("brand", "Merek harus diisi")
	}
	if _, ok := validate.Year(v.Year); !ok {
		f.Errors.Set("year", "Tahun tidak valid")
	}
	if !validate.Required(v.Color) {
		f.Errors.Set("color", "Warna harus diisi")
	}
	if _, ok := validate.Price(v.Price); !ok {
		f.Errors.Set("price", "Harga harus berupa angka")
	}
	if v.Status != domain.MotorAvailable && v.Status != domain.MotorSold {
		f.Errors.Set("status", "Status tidak valid")
	}

	switch {
	case img == nil && create:
		f.Errors.Set("gambar", "Gambar motor wajib diupload")
	case img != nil && !strings.HasPrefix(img.Header.Get("Content-Type"), "image/"):
		f.Errors.Set("gambar", "File harus berupa gambar")
	case img != nil && maxBytes > 0 && img.Size > maxBytes:
		f.Errors.Set("gambar", fmt.Sprintf("Ukuran gambar maksimal %d MB", maxBytes>>20))
	}
	return f.Errors.Empty()
}

// Input assumes Validate passed.
func (f *Motor) Input() domain.MotorInput {
	year, _ := validate.Year(f.Values.Year)
	price, _ := validate.Price(f.Values.Price)
	return domain.MotorInput{
		Name:   strings.TrimSpace(f.Values.Name),
		Brand:  strings.TrimSpace(f.Values.Brand),
		Year:   year,
		Color:  strings.TrimSpace(f.Values.Color),
		Price:  price,
		Status: f.Values.Status,
	}
}
