package forms

import (
	"context"
	"strings"

	"dealerpro/internal/domain"
	"dealerpro/internal/location"
	"dealerpro/internal/validate"
)

// Mode decides which identity fields are required.
type Mode int

const (
	ModeRegister Mode = iota // password required, no role
	ModeCreate               // admin create: password required
	ModeEdit                 // admin edit and profile: empty password keeps the old one
)

func (m Mode) PasswordRequired() bool { return m != ModeEdit }

// Values is every field of the shared identity form, named as the API names them.
type Values struct {
	Name            string `json:"name" validate:"notblank"`
	Email           string `json:"email" validate:"required,simplemail"`
	Password        string `json:"-"`
	Role            string `json:"role,omitempty"`
	Active          string `json:"isActive,omitempty"`
	KTPAddress      string `json:"ktpAddress"`
	CurrentAddress  string `json:"currentAddress"`
	Provinsi        string `json:"provinsi"`
	Kabupaten       string `json:"kabupaten"`
	Kecamatan       string `json:"kecamatan"`
	PhoneNumber     string `json:"phoneNumber" validate:"omitempty,digits"`
	HPNumber        string `json:"hpNumber" validate:"required,digits"`
	Nationality     string `json:"nationality"`
	NationalityName string `json:"nationalityName" validate:"required_if=Nationality WNA"`
	BirthDate       string `json:"birthDate"`
	BirthPlace      string `json:"birthPlace"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"maritalStatus"`
	Religion        string `json:"religion"`
}

// fieldOrder is the order edits are replayed in. Location fields are handled by the selector.
var fieldOrder = []string{
	"name", "email", "role", "isActive", "ktpAddress", "currentAddress", "phoneNumber", "hpNumber",
	"nationality", "nationalityName", "birthDate", "birthPlace", "gender", "maritalStatus", "religion",
}

func (v *Values) field(name string) *string {
	switch name {
	case "name":
		return &v.Name
	case "email":
		return &v.Email
	case "role":
		return &v.Role
	case "isActive":
		return &v.Active
	case "ktpAddress":
		return &v.KTPAddress
	case "currentAddress":
		return &v.CurrentAddress
	case "provinsi":
		return &v.Provinsi
	case "kabupaten":
		return &v.Kabupaten
	case "kecamatan":
		return &v.Kecamatan
	case "phoneNumber":
		return &v.PhoneNumber
	case "hpNumber":
		return &v.HPNumber
	case "nationality":
		return &v.Nationality
	case "nationalityName":
		return &v.NationalityName
	case "birthDate":
		return &v.BirthDate
	case "birthPlace":
		return &v.BirthPlace
	case "gender":
		return &v.Gender
	case "maritalStatus":
		return &v.MaritalStatus
	case "religion":
		return &v.Religion
	}
	return nil
}

func (v Values) selection() location.Selection {
	return location.Selection{Province: v.Provinsi, Regency: v.Kabupaten, District: v.Kecamatan}
}

var messages = map[string]string{
	"name.notblank":               "Nama lengkap harus diisi",
	"email.required":              "Email harus diisi",
	"email.simplemail":            validate.MsgEmailFormat,
	"hpNumber.required":           "Nomor HP harus diisi",
	"hpNumber.digits":             validate.MsgDigitsOnly,
	"phoneNumber.digits":          validate.MsgDigitsOnly,
	"nationalityName.required_if": "Nama negara harus diisi",
}

const msgPasswordRequired = "Password harus diisi"

// Identity is the address-and-identity sub-form used by register, the admin user editor and
// the profile editor.
type Identity struct {
	Values   Values
	Errors   Errors
	Location *location.Selector

	// Notice is the one-shot message for a refused keystroke.
	Notice string
	// EmailHint is the non-blocking warning for the current email value.
	EmailHint string

	unsettled bool
}

func NewIdentity(sel *location.Selector) *Identity {
	return &Identity{Errors: Errors{}, Location: sel}
}

// FromUser pre-populates every field from u. The password stays empty.
func FromUser(ctx context.Context, u domain.User, sel *location.Selector) *Identity {
	f := NewIdentity(sel)
	f.Values = Values{
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		Active:          boolString(u.IsActive),
		KTPAddress:      u.KTPAddress,
		CurrentAddress:  u.CurrentAddress,
		Provinsi:        u.Provinsi,
		Kabupaten:       u.Kabupaten,
		Kecamatan:       u.Kecamatan,
		PhoneNumber:     u.PhoneNumber,
		HPNumber:        u.HPNumber,
		Nationality:     u.Nationality,
		NationalityName: u.NationalityName,
		BirthDate:       u.BirthDay(),
		BirthPlace:      u.BirthPlace,
		Gender:          u.Gender,
		MaritalStatus:   u.MaritalStatus,
		Religion:        u.Religion,
	}
	sel.Restore(ctx, f.Values.selection())
	f.syncLocation()
	return f
}

// Load prepares an empty form: province options only.
func (f *Identity) Load(ctx context.Context) {
	f.Location.Load(ctx)
}

// Change applies one edit the way the browser form reacts to typing: digits-only phone fields
// refuse anything else, the email gets a live hint, location fields drive the selector, and
// the edited field's error goes away.
func (f *Identity) Change(ctx context.Context, field, value string) {
	switch field {
	case "hpNumber", "phoneNumber":
		p := f.Values.field(field)
		next, ok := validate.AcceptDigits(*p, value)
		if !ok {
			f.Notice = validate.MsgDigitsOnly
			f.unsettled = true
			return
		}
		*p = next
	case "email":
		f.Values.Email = value
		f.EmailHint = validate.EmailWarning(value)
	case "provinsi":
		f.Location.SetProvince(ctx, value)
		f.syncLocation()
		f.Errors.Clear("kabupaten")
		f.Errors.Clear("kecamatan")
	case "kabupaten":
		f.Location.SetRegency(ctx, value)
		f.syncLocation()
		f.Errors.Clear("kecamatan")
	case "kecamatan":
		f.Location.SetDistrict(value)
		f.syncLocation()
	default:
		p := f.Values.field(field)
		if p == nil {
			return
		}
		*p = value
	}
	f.Errors.Clear(field)
}

// Replay rebuilds the form from its previous render and applies only the fields the user
// changed since then. Location changes go through the selector as one step, so a changed
// province drops whatever regency and district were posted with it.
func (f *Identity) Replay(ctx context.Context, prev State, posted Values) {
	f.Values = prev.Values
	f.Errors = prev.Errors.clone()

	before := prev.Values.selection()
	after := posted.selection()
	if f.Location.Apply(ctx, before, after) {
		f.unsettled = true
	}
	f.syncLocation()
	for _, name := range []string{"provinsi", "kabupaten", "kecamatan"} {
		if *prev.Values.field(name) != *posted.field(name) {
			f.Errors.Clear(name)
		}
	}

	for _, name := range fieldOrder {
		if next := *posted.field(name); next != *prev.Values.field(name) {
			f.Change(ctx, name, next)
		}
	}

	f.Values.Password = posted.Password
	if posted.Password != "" {
		f.Errors.Clear("password")
	}
	f.EmailHint = validate.EmailWarning(f.Values.Email)
}

// Fill takes posted values as they are, for a post that carries no previous state.
func (f *Identity) Fill(ctx context.Context, posted Values) {
	f.Values = posted
	f.Location.Restore(ctx, posted.selection())
	f.syncLocation()
	f.EmailHint = validate.EmailWarning(f.Values.Email)
}

// Settled reports whether the last Replay landed exactly what was posted. An unsettled form
// is shown again instead of being submitted.
func (f *Identity) Settled() bool { return !f.unsettled }

// Validate is the blocking submit check. It recomputes every field error.
func (f *Identity) Validate(mode Mode) bool {
	f.Errors = Errors{}
	for _, fe := range validate.Struct(f.Values) {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			f.Errors.Set(fe.Field(), msg)
		}
	}
	if mode.PasswordRequired() && f.Values.Password == "" {
		f.Errors.Set("password", msgPasswordRequired)
	}
	return f.Errors.Empty()
}

func (f *Identity) State() State {
	return State{Values: f.Values, Errors: f.Errors}
}

// Input is the API payload. role and isActive are only sent when the form carries them.
func (f *Identity) Input() domain.UserInput {
	v := f.Values
	in := domain.UserInput{
		Name:            strings.TrimSpace(v.Name),
		Email:           strings.TrimSpace(v.Email),
		Password:        v.Password,
		Role:            v.Role,
		KTPAddress:      v.KTPAddress,
		CurrentAddress:  v.CurrentAddress,
		Provinsi:        v.Provinsi,
		Kabupaten:       v.Kabupaten,
		Kecamatan:       v.Kecamatan,
		PhoneNumber:     v.PhoneNumber,
		HPNumber:        v.HPNumber,
		Nationality:     v.Nationality,
		NationalityName: v.NationalityName,
		BirthDate:       v.BirthDate,
		BirthPlace:      v.BirthPlace,
		Gender:          v.Gender,
		MaritalStatus:   v.MaritalStatus,
		Religion:        v.Religion,
	}
	if v.Nationality != domain.ForeignCitizen {
		in.NationalityName = ""
	}
	if v.Active != "" {
		active := v.Active == "true"
		in.IsActive = &active
	}
	return in
}

func (f *Identity) syncLocation() {
	s := f.Location.Selection()
	f.Values.Provinsi, f.Values.Kabupaten, f.Values.Kecamatan = s.Province, s.Regency, s.District
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
