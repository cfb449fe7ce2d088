package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"dealerpro/internal/apiclient"
	"dealerpro/internal/config"
	"dealerpro/internal/http/handlers"
	applog "dealerpro/internal/log"
	"dealerpro/internal/repos"
	"dealerpro/internal/services"
)

const testPassword = "Passw0rd!"

var accounts = map[string]struct{ token, user string }{
	"admin@dealer.test": {"tok-admin", `{"id":"u-admin","name":"Admin Dealer","email":"admin@dealer.test","role":"ADMIN","isActive":true}`},
	"sari@dealer.test":  {"tok-sales", `{"id":"u-sales","name":"Sari","email":"sari@dealer.test","role":"SALES","isActive":true}`},
}

// fakeAPI plays the dealer REST API and counts every request it sees.
type fakeAPI struct {
	mu      sync.Mutex
	hits    []string
	uploads []string
	bodies  map[string]string
	down    map[string]bool
	expired bool
}

// fail makes every request to path answer 500.
func (f *fakeAPI) fail(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down == nil {
		f.down = map[string]bool{}
	}
	f.down[path] = true
}

func (f *fakeAPI) body(hit string) map[string]any {
	f.mu.Lock()
	raw := f.bodies[hit]
	f.mu.Unlock()
	var m map[string]any
	_ = json.Unmarshal([]byte(raw), &m)
	return m
}

func (f *fakeAPI) count(hit string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.hits {
		if h == hit {
			n++
		}
	}
	return n
}

func (f *fakeAPI) expire() {
	f.mu.Lock()
	f.expired = true
	f.mu.Unlock()
}

func reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	hit := r.Method + " " + path
	f.mu.Lock()
	f.hits = append(f.hits, hit)
	expired, down := f.expired, f.down[path]
	f.mu.Unlock()
	if down {
		reply(w, http.StatusInternalServerError, `{"message":"upstream down"}`)
		return
	}
	if r.Method == http.MethodPut && strings.HasPrefix(path, "/users/") {
		raw, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		if f.bodies == nil {
			f.bodies = map[string]string{}
		}
		f.bodies[hit] = string(raw)
		f.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(raw))
	}

	switch {
	case hit == "POST /auth/login":
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		acc, ok := accounts[in["email"]]
		if !ok || in["password"] != testPassword {
			reply(w, http.StatusUnauthorized, `{"message":"Email atau password salah"}`)
			return
		}
		reply(w, http.StatusOK, `{"token":"`+acc.token+`","user":`+acc.user+`}`)
		return
	case hit == "POST /auth/register":
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["email"] == "sari@dealer.test" {
			reply(w, http.StatusBadRequest, `{"message":"Email sudah terdaftar"}`)
			return
		}
		reply(w, http.StatusCreated, `{"message":"ok"}`)
		return
	case strings.HasPrefix(path, "/references/"):
		f.references(w, path)
		return
	}

	auth := r.Header.Get("Authorization")
	if expired || (auth != "Bearer tok-admin" && auth != "Bearer tok-sales") {
		reply(w, http.StatusUnauthorized, `{"message":"Unauthorized"}`)
		return
	}

	switch hit {
	case "GET /motors":
		reply(w, http.StatusOK, `[
			{"id":"m1","name":"Beat","brand":"Honda","year":2023,"color":"Hitam","price":"18500000","status":"AVAILABLE","gambar":"uploads/beat.jpg","user":{"id":"u-sales","name":"Sari","role":"SALES"}},
			{"id":"m2","name":"<script>alert(1)</script>","brand":"Yamaha","year":2021,"color":"Biru","price":28500000,"status":"SOLD"}]`)
	case "POST /motors", "PUT /motors/m1", "POST /videos", "PUT /videos/v1":
		f.recordUpload(r)
		reply(w, http.StatusOK, `{"id":"new-1"}`)
	case "DELETE /motors/m1", "DELETE /videos/v1", "DELETE /users/u-sales":
		reply(w, http.StatusOK, `{"message":"deleted"}`)
	case "DELETE /motors/m2":
		reply(w, http.StatusConflict, `{"message":"Motor sedang dipakai transaksi"}`)
	case "GET /videos":
		reply(w, http.StatusOK, `[
			{"id":"v1","title":"Promo Lebaran","videoUrl":"uploads/promo.mp4","userId":"u-sales","user":{"id":"u-sales","name":"Sari","role":"SALES"}},
			{"id":"v2","title":"Servis Gratis","videoUrl":"uploads/servis.mp4","userId":"u-other"}]`)
	case "GET /users":
		reply(w, http.StatusOK, `[`+accounts["admin@dealer.test"].user+`,`+accounts["sari@dealer.test"].user+`]`)
	case "GET /users/u-sales":
		reply(w, http.StatusOK, `{"id":"u-sales","name":"Sari Dewi","email":"sari@dealer.test","role":"SALES","isActive":true,
			"provinsi":"Jawa Barat","kabupaten":"Kota Bandung","kecamatan":"Sukasari","hpNumber":"081234","religion":"Islam",
			"birthDate":"1995-04-02T00:00:00.000Z","nationality":"WNI Asli"}`)
	case "PUT /users/u-sales":
		reply(w, http.StatusOK, `{"id":"u-sales","name":"Sari Dewi","email":"sari@dealer.test","role":"SALES"}`)
	default:
		reply(w, http.StatusNotFound, `{"message":"not found"}`)
	}
}

func (f *fakeAPI) references(w http.ResponseWriter, path string) {
	switch path {
	case "/references/provinces":
		reply(w, http.StatusOK, `[{"id":"31","name":"DKI Jakarta"},{"id":"32","name":"Jawa Barat"}]`)
	case "/references/regencies/31":
		reply(w, http.StatusOK, `[{"id":"3171","name":"Jakarta Selatan","parentId":"31"}]`)
	case "/references/regencies/32":
		reply(w, http.StatusOK, `[{"id":"3273","name":"Kota Bandung","parentId":"32"}]`)
	case "/references/districts/3171":
		reply(w, http.StatusOK, `[{"id":"317101","name":"Tebet","parentId":"3171"}]`)
	case "/references/districts/3273":
		reply(w, http.StatusOK, `[{"id":"327301","name":"Sukasari","parentId":"3273"}]`)
	case "/references/religions":
		reply(w, http.StatusOK, `[{"id":"1","name":"Islam"},{"id":"2","name":"Kristen"},{"id":"9","name":"Kepercayaan"}]`)
	default:
		reply(w, http.StatusNotFound, `{"message":"not found"}`)
	}
}

// recordUpload notes "field=filename" for the file part of a multipart save.
func (f *fakeAPI) recordUpload(r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil || r.MultipartForm == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for field, files := range r.MultipartForm.File {
		for _, fh := range files {
			f.uploads = append(f.uploads, field+"="+fh.Filename)
		}
	}
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) (*fiber.App, *fakeAPI) {
	t.Helper()
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.DB.DSN = ":memory:"
	for _, m := range mutate {
		m(&cfg)
	}

	db, err := repos.OpenDB(cfg.DB.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auth := &services.AuthService{
		API:      apiclient.New(srv.URL+"/api", srv.URL, 5*time.Second),
		Sessions: repos.NewSessionRepo(db, cfg.Session.Secret),
	}
	return handlers.NewApp(cfg, auth), fake
}

// browser keeps cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	b := &browser{t: t, app: app, cookies: map[string]string{}}
	b.get("/login")
	require.NotEmpty(t, b.cookies["csrf_"], "csrf cookie missing")
	return b
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for name, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", b.cookies["csrf_"])
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

type upload struct {
	field, filename, contentType string
	data                         []byte
}

func (b *browser) postMultipart(path string, fields map[string]string, file *upload) *http.Response {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(b.t, mw.WriteField("csrf", b.cookies["csrf_"]))
	for k, v := range fields {
		require.NoError(b.t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(b.t, err)
		_, _ = part.Write(file.data)
	}
	require.NoError(b.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return b.do(req)
}

func (b *browser) login(email string) {
	b.t.Helper()
	resp := b.post("/login", url.Values{"email": {email}, "password": {testPassword}})
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(b.t, "/", resp.Header.Get("Location"))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu sync.Mutex
	w  bytes.Buffer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// captureLogs points the JSON logger at a buffer while fn runs.
func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	lw := &lockedWriter{}
	applog.Setup("debug", lw)
	defer applog.Setup("info", os.Stdout)

	fn()

	lw.mu.Lock()
	defer lw.mu.Unlock()
	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(lw.w.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func findLog(entries []logEntry, action string) (logEntry, bool) {
	for _, e := range entries {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
