// Package legacy moves the local-only "users" and "documents" snapshots of
// the old dashboard into the API, which is the single source of truth.
package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/macormexico/sistema-pnc/internal/apps/pnc"
	"github.com/macormexico/sistema-pnc/internal/client"
	"github.com/macormexico/sistema-pnc/internal/dto"
	"github.com/macormexico/sistema-pnc/internal/models"
	"github.com/macormexico/sistema-pnc/internal/session"
)

var ErrNoPassword = errors.New("a default password is required to migrate users")

// User is a row of the legacy Users screen.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

// Document is a report saved by the legacy Documents screen.
type Document struct {
	ID string `json:"id"`
	pnc.ReportFields
}

type Snapshot struct {
	Users     []User
	Documents []Document
}

func (s Snapshot) Empty() bool {
	return len(s.Users) == 0 && len(s.Documents) == 0
}

// Without drops the documents whose legacy id is in ids.
func (s Snapshot) Without(ids map[string]bool) Snapshot {
	out := Snapshot{Users: s.Users}
	for _, d := range s.Documents {
		if d.ID != "" && ids[d.ID] {
			continue
		}
		out.Documents = append(out.Documents, d)
	}
	return out
}

// Role maps the legacy role labels onto API roles.
func Role(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "administrador", "admin":
		return models.RoleAdmin
	case "supervisor", "moderador":
		return models.RoleModerador
	}
	return models.RoleUsuario
}

// decodeList accepts a JSON array or a JSON string holding one, the way
// browser storage exports values.
func decodeList(raw []byte, out any) error {
	raw = []byte(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return err
		}
		if strings.TrimSpace(inner) == "" {
			return nil
		}
		raw = []byte(inner)
	}
	return json.Unmarshal(raw, out)
}

// Parse decodes the two snapshot values.
func Parse(users, documents []byte) (Snapshot, error) {
	var snap Snapshot
	if err := decodeList(users, &snap.Users); err != nil {
		return Snapshot{}, fmt.Errorf("decode users snapshot: %w", err)
	}
	if err := decodeList(documents, &snap.Documents); err != nil {
		return Snapshot{}, fmt.Errorf("decode documents snapshot: %w", err)
	}
	return snap, nil
}

// LoadFile reads a browser storage export: a JSON object with "users" and
// "documents" keys.
func LoadFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var export map[string]json.RawMessage
	if err := json.Unmarshal(data, &export); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return Parse(export[session.KeyUsers], export[session.KeyDocuments])
}

// LoadStore reads the snapshots kept in the local store.
func LoadStore(store *session.Store) (Snapshot, error) {
	users, _, err := store.Get(session.KeyUsers)
	if err != nil {
		return Snapshot{}, err
	}
	docs, _, err := store.Get(session.KeyDocuments)
	if err != nil {
		return Snapshot{}, err
	}
	return Parse([]byte(users), []byte(docs))
}

// ClearStore drops the snapshots once they live in the API.
func ClearStore(store *session.Store) error {
	return store.Delete(session.KeyUsers, session.KeyDocuments)
}

// SaveStore replaces the stored snapshots with snap, or clears them when
// snap is empty.
func SaveStore(store *session.Store, snap Snapshot) error {
	if snap.Empty() {
		return ClearStore(store)
	}
	users, err := json.Marshal(nonNil(snap.Users))
	if err != nil {
		return fmt.Errorf("encode users snapshot: %w", err)
	}
	docs, err := json.Marshal(nonNil(snap.Documents))
	if err != nil {
		return fmt.Errorf("encode documents snapshot: %w", err)
	}
	return store.Set(map[string]string{
		session.KeyUsers:     string(users),
		session.KeyDocuments: string(docs),
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// MigratedIDs returns the legacy document ids already created through the
// API from an export file.
func MigratedIDs(store *session.Store) (map[string]bool, error) {
	raw, ok, err := store.Get(session.KeyMigrated)
	if err != nil || !ok {
		return map[string]bool{}, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode migrated ids: %w", err)
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// MarkMigrated adds ids to the set returned by MigratedIDs.
func MarkMigrated(store *session.Store, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	known, err := MigratedIDs(store)
	if err != nil {
		return err
	}
	all := make([]string, 0, len(known)+len(ids))
	for id := range known {
		all = append(all, id)
	}
	for _, id := range ids {
		if !known[id] {
			known[id] = true
			all = append(all, id)
		}
	}
	sort.Strings(all)
	raw, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode migrated ids: %w", err)
	}
	return store.Set(map[string]string{session.KeyMigrated: string(raw)})
}

// API is the part of the client the migration needs.
type API interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	CreateReport(ctx context.Context, fields pnc.ReportFields) (*pnc.Report, error)
}

type Failure struct {
	Kind string
	ID   string
	Err  error
}

type Result struct {
	UsersCreated   int
	UsersSkipped   int
	ReportsCreated int
	Failures       []Failure

	// Migrated holds the legacy ids of the documents created.
	Migrated []string
	// Remaining is what still has to be migrated: failed records plus
	// anything not attempted.
	Remaining Snapshot
}

// Complete reports whether every record reached the API.
func (r Result) Complete() bool {
	return len(r.Failures) == 0
}

// Migrate creates every legacy record through api. Users whose email is
// already registered are skipped. Legacy users never had a password, so
// each one gets defaultPassword. Running Migrate again on res.Remaining
// creates nothing twice.
func Migrate(ctx context.Context, api API, snap Snapshot, defaultPassword string) (Result, error) {
	res := Result{Remaining: snap}
	if len(snap.Users) > 0 && defaultPassword == "" {
		return res, ErrNoPassword
	}
	res.Remaining = Snapshot{}

	for i, u := range snap.Users {
		if err := ctx.Err(); err != nil {
			res.Remaining.Users = append(res.Remaining.Users, snap.Users[i:]...)
			res.Remaining.Documents = append(res.Remaining.Documents, snap.Documents...)
			return res, err
		}
		_, err := api.CreateUser(ctx, dto.CreateUserRequest{
			Nombre:   u.Name,
			Email:    u.Email,
			Password: defaultPassword,
			Rol:      Role(u.Role),
			Telefono: u.Phone,
		})
		switch {
		case err == nil:
			res.UsersCreated++
		case client.IsStatus(err, http.StatusConflict):
			res.UsersSkipped++
		default:
			res.Failures = append(res.Failures, Failure{Kind: "user", ID: u.Email, Err: err})
			res.Remaining.Users = append(res.Remaining.Users, u)
		}
	}

	for i, d := range snap.Documents {
		if err := ctx.Err(); err != nil {
			res.Remaining.Documents = append(res.Remaining.Documents, snap.Documents[i:]...)
			return res, err
		}
		if _, err := api.CreateReport(ctx, d.ReportFields); err != nil {
			res.Failures = append(res.Failures, Failure{Kind: "report", ID: d.ID, Err: err})
			res.Remaining.Documents = append(res.Remaining.Documents, d)
			continue
		}
		res.ReportsCreated++
		if d.ID != "" {
			res.Migrated = append(res.Migrated, d.ID)
		}
	}
	return res, nil
}
