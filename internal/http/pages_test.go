package handlers_test

import (
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCancelSendsNoRequest(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	page := b.get("/motors/m1/delete")
	require.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, readBody(t, page), "Hapus Motor?")

	for _, answer := range []string{"no", "", "YES"} {
		resp := b.post("/motors/m1/delete", url.Values{"confirm": {answer}})
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/motors", resp.Header.Get("Location"))
	}
	assert.Zero(t, fake.count("DELETE /motors/m1"))
}

func TestDeleteConfirmedRefetchesOnce(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	resp := b.post("/motors/m1/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, fake.count("DELETE /motors/m1"))

	before := fake.count("GET /motors")
	list := b.get(resp.Header.Get("Location"))
	require.Equal(t, http.StatusOK, list.StatusCode)
	assert.Contains(t, readBody(t, list), "Motor berhasil dihapus")
	assert.Equal(t, before+1, fake.count("GET /motors"))
}

func TestDeleteFailureFlashesServerMessage(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	resp := b.post("/motors/m2/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, 1, fake.count("DELETE /motors/m2"))

	body := readBody(t, b.get("/motors"))
	assert.Contains(t, body, "Motor sedang dipakai transaksi")
	assert.Contains(t, body, "Beat", "list is still shown")
}

func TestCreateMotorWithoutImageSendsNothing(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	resp := b.postMultipart("/motors", map[string]string{
		"name": "Scoopy", "brand": "Honda", "year": "2024", "color": "Merah", "price": "21.000.000", "status": "AVAILABLE",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Gambar motor wajib diupload")
	assert.Contains(t, body, `value="Scoopy"`, "typed values are kept")
	assert.Zero(t, fake.count("POST /motors"))
}

func TestCreateMotorForwardsImage(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	resp := b.postMultipart("/motors", map[string]string{
		"name": "Scoopy", "brand": "Honda", "year": "2024", "color": "Merah", "price": "21000000", "status": "AVAILABLE",
	}, &upload{field: "gambar", filename: "scoopy.png", contentType: "image/png", data: []byte("\x89PNG fake")})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/motors", resp.Header.Get("Location"))
	assert.Equal(t, 1, fake.count("POST /motors"))
	assert.Contains(t, fake.uploads, "gambar=scoopy.png")
	assert.Contains(t, readBody(t, b.get("/motors")), "Motor berhasil ditambahkan")
}

func TestMotorListEscapesUserContent(t *testing.T) {
	app, _ := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	body := readBody(t, b.get("/motors"))
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "18.500.000", "price in Indonesian grouping")
}

func TestVideoOfAnotherUserIsNotEditable(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	var resp *http.Response
	logs := captureLogs(t, func() { resp = b.get("/ads/v2/edit") })
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/ads", resp.Header.Get("Location"))
	_, ok := findLog(logs, "access.denied.video")
	assert.True(t, ok)

	b.post("/ads/v2/delete", url.Values{"confirm": {"yes"}})
	assert.Zero(t, fake.count("DELETE /videos/v2"))

	own := b.get("/ads/v1/edit")
	require.Equal(t, http.StatusOK, own.StatusCode)
	assert.Contains(t, readBody(t, own), "Promo Lebaran")
}

func TestCreateVideoRejectsWrongType(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	resp := b.postMultipart("/ads", map[string]string{"title": "Promo"},
		&upload{field: "video", filename: "promo.txt", contentType: "text/plain", data: []byte("hello")})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Format video tidak didukung")
	assert.Zero(t, fake.count("POST /videos"))

	resp = b.postMultipart("/ads", map[string]string{"title": "Promo"},
		&upload{field: "video", filename: "promo.mp4", contentType: "video/mp4", data: []byte("mp4")})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Contains(t, fake.uploads, "video=promo.mp4")
}

func TestUserEditPrepopulatesEveryField(t *testing.T) {
	app, _ := newTestApp(t)
	b := newBrowser(t, app)
	b.login("admin@dealer.test")

	resp := b.get("/users/u-sales/edit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `value="Sari Dewi"`)
	assert.Contains(t, body, `value="Jawa Barat" selected`)
	assert.Contains(t, body, `value="Kota Bandung" selected`)
	assert.Contains(t, body, `value="Sukasari" selected`)
	assert.Contains(t, body, `value="1995-04-02"`)
	assert.Contains(t, body, `name="password" type="password" value=""`)
	assert.NotContains(t, body, "Kepercayaan", "only the main religions are offered")
}

func TestProfilePDFDownload(t *testing.T) {
	app, _ := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	resp := b.get("/profile/pdf")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Bukti_Pendaftaran_Sari_Dewi.pdf")
	assert.True(t, strings.HasPrefix(readBody(t, resp), "%PDF"))
}

func TestDashboardStatsByRole(t *testing.T) {
	app, fake := newTestApp(t)

	sales := newBrowser(t, app)
	sales.login("sari@dealer.test")
	body := readBody(t, sales.get("/"))
	assert.NotContains(t, body, "Total User")
	assert.Zero(t, fake.count("GET /users"))

	admin := newBrowser(t, app)
	admin.login("admin@dealer.test")
	body = readBody(t, admin.get("/"))
	assert.Contains(t, body, "Total User")
	assert.Equal(t, 1, fake.count("GET /users"))
}

var (
	reState      = regexp.MustCompile(`name="_state" value="([^"]*)"`)
	reSelectOpen = regexp.MustCompile(`(?s)<select name="([a-zA-Z]+)"[^>]*>(.*?)</select>`)
	reSelected   = regexp.MustCompile(`<option value="([^"]*)" selected>`)
)

// selectedValues returns what a browser would post for every select on the page.
func selectedValues(body string) map[string]string {
	out := map[string]string{}
	for _, m := range reSelectOpen.FindAllStringSubmatch(body, -1) {
		v := ""
		if s := reSelected.FindStringSubmatch(m[2]); s != nil {
			v = html.UnescapeString(s[1])
		}
		out[m[1]] = v
	}
	return out
}

func TestUserEditKeepsLocationWhenProvincesFail(t *testing.T) {
	app, fake := newTestApp(t)
	fake.fail("/references/provinces")
	b := newBrowser(t, app)
	b.login("admin@dealer.test")

	var page *http.Response
	logs := captureLogs(t, func() { page = b.get("/users/u-sales/edit") })
	require.Equal(t, http.StatusOK, page.StatusCode)
	body := readBody(t, page)
	_, ok := findLog(logs, "reference.fetch.fail")
	assert.True(t, ok, "lookup failure is logged")

	sel := selectedValues(body)
	assert.Equal(t, "Jawa Barat", sel["provinsi"])
	assert.Equal(t, "Kota Bandung", sel["kabupaten"])
	assert.Equal(t, "Sukasari", sel["kecamatan"])

	state := reState.FindStringSubmatch(body)
	require.NotNil(t, state)
	form := url.Values{
		"_state": {state[1]}, "name": {"Sari Dewi Lestari"}, "email": {"sari@dealer.test"},
		"hpNumber": {"081234"}, "birthDate": {"1995-04-02"},
	}
	for name, v := range sel {
		form.Set(name, v)
	}
	resp := b.post("/users/u-sales", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	sent := fake.body("PUT /users/u-sales")
	assert.Equal(t, "Sari Dewi Lestari", sent["name"])
	assert.Equal(t, "Jawa Barat", sent["provinsi"])
	assert.Equal(t, "Kota Bandung", sent["kabupaten"])
	assert.Equal(t, "Sukasari", sent["kecamatan"])
}

func TestMotorEditFailureKeepsPreview(t *testing.T) {
	app, fake := newTestApp(t)
	b := newBrowser(t, app)
	b.login("sari@dealer.test")

	resp := b.postMultipart("/motors/m1", map[string]string{
		"name": "", "brand": "Honda", "year": "2023", "color": "Hitam", "price": "18500000", "status": "AVAILABLE",
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Nama motor harus diisi")
	assert.Contains(t, body, "uploads/beat.jpg")
	assert.Zero(t, fake.count("PUT /motors/m1"))
}

func TestConfirmedDeletesRefetchOnce(t *testing.T) {
	cases := []struct {
		login, path, del, list, notice string
	}{
		{"sari@dealer.test", "/ads/v1/delete", "DELETE /videos/v1", "GET /videos", "Video berhasil dihapus"},
		{"admin@dealer.test", "/users/u-sales/delete", "DELETE /users/u-sales", "GET /users", "User berhasil dihapus"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			app, fake := newTestApp(t)
			b := newBrowser(t, app)
			b.login(tc.login)

			resp := b.post(tc.path, url.Values{"confirm": {"yes"}})
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, 1, fake.count(tc.del))

			before := fake.count(tc.list)
			list := b.get(resp.Header.Get("Location"))
			require.Equal(t, http.StatusOK, list.StatusCode)
			assert.Contains(t, readBody(t, list), tc.notice)
			assert.Equal(t, before+1, fake.count(tc.list), "one refetch after the delete")
			assert.Equal(t, 1, fake.count(tc.del))
		})
	}
}
