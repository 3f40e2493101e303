package legacy

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/macormexico/sistema-pnc/internal/apps/pnc"
	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/macormexico/sistema-pnc/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersJSON = `[
 {"id":"1700000000000","name":"Ana","email":"ana@dae.com","role":"Administrador","phone":"555","createdAt":"2024-01-02T10:00:00.000Z"},
 {"id":"1700000000001","name":"Luis","email":"luis@dae.com","role":"Usuario","phone":""}
]`

const documentsJSON = `[
 {"id":"1700000000100","title":"ACME","folio":"F-7","cliente":"ACME","detectedIn":{"recepcion":true},"disposicion":{"scrap":true,"otro":""},"status":"Activo"},
 {"id":"1700000000101","title":"Sin Cliente","folio":"F-8","cliente":""}
]`

type fakeAPI struct {
	users   []dto.CreateUserRequest
	reports []pnc.ReportFields
	taken   map[string]bool
}

func (f *fakeAPI) CreateUser(_ context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if f.taken[req.Email] {
		return nil, &client.APIError{Status: http.StatusConflict, Message: "email already registered"}
	}
	f.users = append(f.users, req)
	return &models.User{Nombre: req.Nombre, Email: req.Email, Rol: req.Rol}, nil
}

func (f *fakeAPI) CreateReport(_ context.Context, fields pnc.ReportFields) (*pnc.Report, error) {
	if fields.Cliente == "" {
		return nil, &client.APIError{Status: http.StatusBadRequest, Message: "validation failed: cliente is required"}
	}
	f.reports = append(f.reports, fields)
	return &pnc.Report{ReportFields: fields}, nil
}

func TestRole(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, Role("Administrador"))
	assert.Equal(t, models.RoleModerador, Role("Supervisor"))
	assert.Equal(t, models.RoleUsuario, Role("Usuario"))
	assert.Equal(t, models.RoleUsuario, Role(""))
}

func TestParseAcceptsStringEncodedLists(t *testing.T) {
	quoted := `"[{\"id\":\"1\",\"name\":\"Ana\",\"email\":\"ana@dae.com\"}]"`

	snap, err := Parse([]byte(quoted), nil)
	require.NoError(t, err)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "Ana", snap.Users[0].Name)
	assert.Empty(t, snap.Documents)

	_, err = Parse([]byte("{"), nil)
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	snap, err := Parse([]byte(usersJSON), []byte(documentsJSON))
	require.NoError(t, err)
	require.Len(t, snap.Documents, 2)
	assert.True(t, snap.Documents[0].DetectedIn.Recepcion)

	api := &fakeAPI{taken: map[string]bool{"luis@dae.com": true}}
	res, err := Migrate(context.Background(), api, snap, "cambiar123")
	require.NoError(t, err)

	assert.Equal(t, 1, res.UsersCreated)
	assert.Equal(t, 1, res.UsersSkipped)
	assert.Equal(t, 1, res.ReportsCreated)
	assert.False(t, res.Complete())
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "report", res.Failures[0].Kind)
	assert.Equal(t, "1700000000101", res.Failures[0].ID)

	require.Len(t, api.users, 1)
	assert.Equal(t, dto.CreateUserRequest{
		Nombre: "Ana", Email: "ana@dae.com", Password: "cambiar123", Rol: models.RoleAdmin, Telefono: "555",
	}, api.users[0])
	assert.True(t, api.reports[0].Disposicion.Scrap)
}

func TestMigrateRequiresPasswordForUsers(t *testing.T) {
	snap, err := Parse([]byte(usersJSON), nil)
	require.NoError(t, err)

	_, err = Migrate(context.Background(), &fakeAPI{}, snap, "")
	assert.ErrorIs(t, err, ErrNoPassword)
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := session.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(map[string]string{
		session.KeyUsers:     usersJSON,
		session.KeyDocuments: documentsJSON,
	}))

	snap, err := LoadStore(store)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 2)
	assert.Len(t, snap.Documents, 2)

	require.NoError(t, ClearStore(store))
	snap, err = LoadStore(store)
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	export := `{"users":` + usersJSON + `,"documents":"[]","isAuthenticated":"true"}`
	require.NoError(t, os.WriteFile(path, []byte(export), 0o600))

	snap, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, snap.Users, 2)
	assert.Empty(t, snap.Documents)
}

func TestMigrateAgainOnRemainingCreatesNothingTwice(t *testing.T) {
	snap, err := Parse([]byte(usersJSON), []byte(documentsJSON))
	require.NoError(t, err)
	api := &fakeAPI{}

	first, err := Migrate(context.Background(), api, snap, "cambiar123")
	require.NoError(t, err)
	assert.False(t, first.Complete())
	assert.Equal(t, []string{"1700000000100"}, first.Migrated)
	assert.Empty(t, first.Remaining.Users)
	require.Len(t, first.Remaining.Documents, 1)
	assert.Equal(t, "1700000000101", first.Remaining.Documents[0].ID)

	second, err := Migrate(context.Background(), api, first.Remaining, "cambiar123")
	require.NoError(t, err)
	assert.Equal(t, 0, second.ReportsCreated)

	require.Len(t, api.reports, 1)
	assert.Equal(t, "F-7", api.reports[0].Folio)
	assert.Len(t, api.users, 2)
}

func TestMigrateWithoutPasswordKeepsEverything(t *testing.T) {
	snap, err := Parse([]byte(usersJSON), []byte(documentsJSON))
	require.NoError(t, err)

	res, err := Migrate(context.Background(), &fakeAPI{}, snap, "")
	require.ErrorIs(t, err, ErrNoPassword)
	assert.Equal(t, snap, res.Remaining)
}

func TestSaveStoreKeepsOnlyRemaining(t *testing.T) {
	store, err := session.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	snap, err := Parse([]byte(usersJSON), []byte(documentsJSON))
	require.NoError(t, err)
	res, err := Migrate(context.Background(), &fakeAPI{}, snap, "cambiar123")
	require.NoError(t, err)
	require.NoError(t, SaveStore(store, res.Remaining))

	left, err := LoadStore(store)
	require.NoError(t, err)
	assert.Empty(t, left.Users)
	require.Len(t, left.Documents, 1)
	assert.Equal(t, "F-8", left.Documents[0].Folio)

	require.NoError(t, SaveStore(store, Snapshot{}))
	_, ok, err := store.Get(session.KeyDocuments)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMigratedIDsSkipExportedDocuments(t *testing.T) {
	store, err := session.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, MarkMigrated(store, []string{"1700000000100"}))
	require.NoError(t, MarkMigrated(store, []string{"1700000000100", "x"}))

	done, err := MigratedIDs(store)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"1700000000100": true, "x": true}, done)

	snap, err := Parse(nil, []byte(documentsJSON))
	require.NoError(t, err)
	rest := snap.Without(done)
	require.Len(t, rest.Documents, 1)
	assert.Equal(t, "F-8", rest.Documents[0].Folio)
}
