package dae

import (
	"testing"

	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/macormexico/sistema-pnc/internal/services"
	"github.com/macormexico/sistema-pnc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type revokeRecorder struct {
	ids []string
}

func (r *revokeRecorder) RevokeUserSessions(id string) error {
	r.ids = append(r.ids, id)
	return nil
}

func valores(items []CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Valor
	}
	return out
}

func TestCatalogDeleteLeavesOtherCategories(t *testing.T) {
	svc := NewCatalogService(testutil.NewDB(t, &CatalogItem{}))

	rebaba, err := svc.Create(CatalogRequest{Categoria: CategoriaDefecto, Valor: "Rebaba"})
	require.NoError(t, err)
	_, err = svc.Create(CatalogRequest{Categoria: CategoriaDefecto, Valor: "Golpe"})
	require.NoError(t, err)
	_, err = svc.Create(CatalogRequest{Categoria: CategoriaArea, Valor: "CNC"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(rebaba.ID))

	defects, err := svc.List(CategoriaDefecto)
	require.NoError(t, err)
	assert.Equal(t, []string{"Golpe"}, valores(defects))

	areas, err := svc.List(CategoriaArea)
	require.NoError(t, err)
	assert.Equal(t, []string{"CNC"}, valores(areas))

	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, svc.Delete(rebaba.ID), ErrCatalogNotFound)
}

func TestCatalogCreateValidation(t *testing.T) {
	svc := NewCatalogService(testutil.NewDB(t, &CatalogItem{}))

	_, err := svc.Create(CatalogRequest{Categoria: "defecto", Valor: "  "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(CatalogRequest{Valor: "Rebaba"})
	assert.ErrorIs(t, err, ErrValidation)

	item, err := svc.Create(CatalogRequest{Categoria: "maquina", Valor: " Haas VF-2 "})
	require.NoError(t, err)
	assert.Equal(t, "maquina", item.Categoria)
	assert.Equal(t, "Haas VF-2", item.Valor)
}

func TestUserCreate(t *testing.T) {
	svc := NewUserService(testutil.NewDB(t), nil)

	user, err := svc.Create(dto.CreateUserRequest{
		Nombre:   "Ana López",
		Email:    " Ana@DAE.com ",
		Password: "secreta",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@dae.com", user.Email)
	assert.Equal(t, models.RoleUsuario, user.Rol)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secreta")))

	_, err = svc.Create(dto.CreateUserRequest{Nombre: "Otra", Email: "ana@dae.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Create(dto.CreateUserRequest{Nombre: "Sin clave", Email: "b@dae.com"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(dto.CreateUserRequest{Nombre: "Rol", Email: "c@dae.com", Password: "x", Rol: "root"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUserUpdateKeepsPasswordWhenEmpty(t *testing.T) {
	rec := &revokeRecorder{}
	svc := NewUserService(testutil.NewDB(t), rec)

	user, err := svc.Create(dto.CreateUserRequest{Nombre: "Luis", Email: "luis@dae.com", Password: "uno"})
	require.NoError(t, err)

	updated, err := svc.Update(user.ID, dto.UpdateUserRequest{Nombre: "Luis M.", Email: "luis@dae.com", Rol: models.RoleModerador})
	require.NoError(t, err)
	assert.Equal(t, "Luis M.", updated.Nombre)
	assert.Equal(t, models.RoleModerador, updated.Rol)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("uno")))
	assert.Empty(t, rec.ids)

	updated, err = svc.Update(user.ID, dto.UpdateUserRequest{Nombre: "Luis M.", Email: "luis@dae.com", Password: "dos"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("dos")))
	assert.Equal(t, []string{user.ID}, rec.ids)

	_, err = svc.Update("missing", dto.UpdateUserRequest{Nombre: "x", Email: "x@dae.com"})
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUserUpdateRejectsTakenEmail(t *testing.T) {
	svc := NewUserService(testutil.NewDB(t), nil)
	a, err := svc.Create(dto.CreateUserRequest{Nombre: "A", Email: "a@dae.com", Password: "x"})
	require.NoError(t, err)
	_, err = svc.Create(dto.CreateUserRequest{Nombre: "B", Email: "b@dae.com", Password: "x"})
	require.NoError(t, err)

	_, err = svc.Update(a.ID, dto.UpdateUserRequest{Nombre: "A", Email: "B@dae.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserDeleteProtectsLastAdmin(t *testing.T) {
	rec := &revokeRecorder{}
	svc := NewUserService(testutil.NewDB(t), rec)

	admin, err := svc.Create(dto.CreateUserRequest{Nombre: "Admin", Email: "admin@dae.com", Password: "x", Rol: models.RoleAdmin})
	require.NoError(t, err)
	user, err := svc.Create(dto.CreateUserRequest{Nombre: "User", Email: "user@dae.com", Password: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(admin.ID), ErrLastAdmin)
	_, err = svc.Update(admin.ID, dto.UpdateUserRequest{Nombre: "Admin", Email: "admin@dae.com", Rol: models.RoleUsuario})
	assert.ErrorIs(t, err, ErrLastAdmin)

	require.NoError(t, svc.Delete(user.ID))
	assert.Equal(t, []string{user.ID}, rec.ids)
	assert.ErrorIs(t, svc.Delete(user.ID), services.ErrUserNotFound)

	users, err := svc.List()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)
}
