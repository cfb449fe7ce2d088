package handlers

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"dealerpro/internal/domain"
	"dealerpro/internal/forms"
	"dealerpro/internal/location"
	applog "dealerpro/internal/log"
)

// identityView is what partials/identity renders.
type identityView struct {
	State            string
	Values           forms.Values
	Errors           forms.Errors
	EmailHint        string
	PasswordRequired bool
	Admin            bool
	Options          location.Options
	Unlisted         location.Selection
	Nationalities    []string
	Genders          []string
	Marital          []string
	Religions        []string
}

func (b *base) newIdentity(c *fiber.Ctx) *forms.Identity {
	return forms.NewIdentity(b.selector(c))
}

func (b *base) selector(c *fiber.Ctx) *location.Selector {
	return location.New(b.api(c), func(level location.Level, parentID string, err error) {
		applog.Warn(c, "reference.fetch.fail", err, map[string]any{"level": string(level), "parent": parentID})
	})
}

// postedIdentity reads the identity fields by their form names.
func postedIdentity(c *fiber.Ctx) forms.Values {
	return forms.Values{
		Name:            c.FormValue("name"),
		Email:           c.FormValue("email"),
		Password:        c.FormValue("password"),
		Role:            c.FormValue("role"),
		Active:          c.FormValue("isActive"),
		KTPAddress:      c.FormValue("ktpAddress"),
		CurrentAddress:  c.FormValue("currentAddress"),
		Provinsi:        c.FormValue("provinsi"),
		Kabupaten:       c.FormValue("kabupaten"),
		Kecamatan:       c.FormValue("kecamatan"),
		PhoneNumber:     c.FormValue("phoneNumber"),
		HPNumber:        c.FormValue("hpNumber"),
		Nationality:     c.FormValue("nationality"),
		NationalityName: c.FormValue("nationalityName"),
		BirthDate:       c.FormValue("birthDate"),
		BirthPlace:      c.FormValue("birthPlace"),
		Gender:          c.FormValue("gender"),
		MaritalStatus:   c.FormValue("maritalStatus"),
		Religion:        c.FormValue("religion"),
	}
}

// bindIdentity rebuilds the posted identity form and reports whether it should be submitted.
// A location refresh, a refused keystroke or a dropped location child shows the form again.
func (b *base) bindIdentity(c *fiber.Ctx) (*forms.Identity, bool) {
	f := b.newIdentity(c)
	posted := postedIdentity(c)
	if prev, ok := forms.DecodeState(c.FormValue("_state")); ok {
		f.Replay(c.UserContext(), prev, posted)
	} else {
		f.Fill(c.UserContext(), posted)
	}
	refresh := c.FormValue("_refresh") == "1" || c.FormValue("_reload") != ""
	return f, !refresh && f.Settled()
}

func (b *base) identityView(c *fiber.Ctx, f *forms.Identity, mode forms.Mode, admin bool) identityView {
	opts := f.Location.Options()
	return identityView{
		State:            f.State().Encode(),
		Values:           f.Values,
		Errors:           f.Errors,
		EmailHint:        f.EmailHint,
		PasswordRequired: mode.PasswordRequired(),
		Admin:            admin,
		Options:          opts,
		Unlisted:         opts.Unlisted(f.Location.Selection()),
		Nationalities:    domain.Nationalities,
		Genders:          domain.Genders,
		Marital:          domain.MaritalStatus,
		Religions:        b.religions(c),
	}
}

// religions offers the main religions the API knows, or the fixed list when it is unreachable.
func (b *base) religions(c *fiber.Ctx) []string {
	list, err := b.api(c).Religions(c.UserContext())
	if err != nil {
		applog.Warn(c, "reference.fetch.fail", err, map[string]any{"level": "religion"})
		return domain.MainReligions
	}
	var names []string
	for _, r := range list {
		if slices.Contains(domain.MainReligions, r.Name) {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return domain.MainReligions
	}
	return names
}
