package domain

import "strings"

const (
	RoleAdmin = "ADMIN"
	RoleSales = "SALES"
)

// User mirrors the API's user record. Address and identity fields keep the API's names.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	IsActive        bool   `json:"isActive"`
	KTPAddress      string `json:"ktpAddress,omitempty"`
	CurrentAddress  string `json:"currentAddress,omitempty"`
	Provinsi        string `json:"provinsi,omitempty"`
	Kabupaten       string `json:"kabupaten,omitempty"`
	Kecamatan       string `json:"kecamatan,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	HPNumber        string `json:"hpNumber,omitempty"`
	Nationality     string `json:"nationality,omitempty"`
	NationalityName string `json:"nationalityName,omitempty"`
	BirthDate       string `json:"birthDate,omitempty"`
	BirthPlace      string `json:"birthPlace,omitempty"`
	Gender          string `json:"gender,omitempty"`
	MaritalStatus   string `json:"maritalStatus,omitempty"`
	Religion        string `json:"religion,omitempty"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// BirthDay returns the date part of BirthDate ("2000-01-31T00:00:00Z" -> "2000-01-31").
func (u User) BirthDay() string {
	d, _, _ := strings.Cut(u.BirthDate, "T")
	return d
}

// UserInput is the payload for register, create and update. An empty Password means "no change".
type UserInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	Role            string `json:"role,omitempty"`
	IsActive        *bool  `json:"isActive,omitempty"`
	KTPAddress      string `json:"ktpAddress"`
	CurrentAddress  string `json:"currentAddress"`
	Provinsi        string `json:"provinsi"`
	Kabupaten       string `json:"kabupaten"`
	Kecamatan       string `json:"kecamatan"`
	PhoneNumber     string `json:"phoneNumber"`
	HPNumber        string `json:"hpNumber"`
	Nationality     string `json:"nationality"`
	NationalityName string `json:"nationalityName"`
	BirthDate       string `json:"birthDate,omitempty"`
	BirthPlace      string `json:"birthPlace"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"maritalStatus"`
	Religion        string `json:"religion"`
}
