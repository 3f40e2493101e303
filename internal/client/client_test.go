package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/macormexico/sistema-pnc/internal/apps"
	"github.com/macormexico/sistema-pnc/internal/apps/dae"
	"github.com/macormexico/sistema-pnc/internal/apps/pnc"
	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/metrics"
	"github.com/macormexico/sistema-pnc/internal/server"
	"github.com/macormexico/sistema-pnc/internal/services"
	"github.com/macormexico/sistema-pnc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessFalseIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"message":"Credenciales inválidas"}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).Login(context.Background(), "a@b.c", "x")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.Status)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)
}

func TestNonJSONBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).ListReports(context.Background())
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestErrorStatusIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"report not found"}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).GetReport(context.Background(), "nope")
	assert.True(t, client.IsStatus(err, http.StatusNotFound))
}

func TestRequestShape(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotAuth   string
		gotBody   map[string]string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotAuth = r.Method, r.URL.RequestURI(), r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"success":true,"catalog":{"id":"c1","categoria":"area","valor":"CNC"}}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/api/", client.WithToken("tok"))
	item, err := c.CreateCatalogItem(context.Background(), "area", "CNC")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/dae/catalogs", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, map[string]string{"categoria": "area", "valor": "CNC"}, gotBody)
	assert.Equal(t, "c1", item.ID)
}

func TestDownloadUsesContentDisposition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="PNC_F-9.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.3 fake"))
	}))
	defer srv.Close()

	d, err := client.New(srv.URL).DownloadReportPDF(context.Background(), "id-9")
	require.NoError(t, err)
	assert.Equal(t, "PNC_F-9.pdf", d.Name)
	assert.Equal(t, "application/pdf", d.ContentType)
	assert.True(t, bytes.HasPrefix(d.Data, []byte("%PDF-")))
}

func TestDownloadNameStaysInDirectory(t *testing.T) {
	cases := map[string]string{
		`attachment; filename="../../etc/evil.pdf"`: "evil.pdf",
		`attachment; filename="/tmp/abs.pdf"`:        "abs.pdf",
		`attachment; filename=".."`:                  "PNC_id-9.pdf",
		`attachment; filename=""`:                    "PNC_id-9.pdf",
		`inline`:                                     "PNC_id-9.pdf",
	}
	for disposition, want := range cases {
		t.Run(disposition, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				w.Header().Set("Content-Disposition", disposition)
				_, _ = w.Write([]byte("%PDF-1.3 fake"))
			}))
			defer srv.Close()

			d, err := client.New(srv.URL).DownloadReportPDF(context.Background(), "id-9")
			require.NoError(t, err)
			assert.Equal(t, want, d.Name)
		})
	}
}

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     "client-test",
		JWTExpiry:     time.Hour,
		AdminName:     "Administrador DAE",
		AdminEmail:    "admin@dae.com",
		AdminPassword: "dae123",
		CORSOrigins:   "*",
	}
	db := testutil.NewDB(t, &pnc.Report{}, &dae.CatalogItem{})
	auth := services.NewAuthService(db, cfg)
	require.NoError(t, auth.EnsureAdmin())

	app := server.New(cfg, db, auth, []apps.Plugin{pnc.New(nil), dae.New(auth)})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return srv
}

func TestAgainstServer(t *testing.T) {
	srv := newAPI(t)
	ctx := context.Background()
	c := client.New(srv.URL + "/api")

	_, err := c.ListReports(ctx)
	require.True(t, client.IsStatus(err, http.StatusUnauthorized), err)

	login, err := c.Login(ctx, "admin@dae.com", "dae123")
	require.NoError(t, err)
	assert.True(t, login.Success)
	assert.Equal(t, "admin", login.User.Rol)
	assert.NotEmpty(t, c.Token())

	created, err := c.CreateReport(ctx, pnc.ReportFields{
		Folio:   "F-1",
		Cliente: "ACME",
		Fecha:   time.Now().UTC().Format("2006-01-02"),
		Roles:   pnc.Roles{Defecto: "Rebaba", Area: "CNC"},
	})
	require.NoError(t, err)

	fields := created.ReportFields
	fields.Dictamen = "Rechazado"
	updated, err := c.UpdateReport(ctx, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "Rechazado", updated.Dictamen)

	pdf, err := c.DownloadReportPDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PNC_F-1.pdf", pdf.Name)

	m, err := c.Metrics(ctx, metrics.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Total)

	item, err := c.CreateCatalogItem(ctx, "defecto", "Rebaba")
	require.NoError(t, err)
	_, err = c.CreateCatalogItem(ctx, "area", "CNC")
	require.NoError(t, err)
	require.NoError(t, c.DeleteCatalogItem(ctx, item.ID))
	items, err := c.ListCatalogs(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "area", items[0].Categoria)

	user, err := c.CreateUser(ctx, dto.CreateUserRequest{Nombre: "Ana", Email: "ana@dae.com", Password: "ana123"})
	require.NoError(t, err)
	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	require.NoError(t, c.DeleteUser(ctx, user.ID))

	require.NoError(t, c.DeleteReport(ctx, created.ID))
	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())
}
