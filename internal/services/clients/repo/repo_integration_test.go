//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clientele/internal/platform/logger"
	"clientele/internal/platform/store"
	"clientele/internal/services/clients/domain"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
create table clients (
  id uuid primary key,
  name text not null,
  phone text not null,
  birthday date,
  notes text,
  referrer_id uuid,
  whatsapp_link text,
  facebook_link text,
  instagram_link text,
  tiktok_link text,
  total_spent numeric not null default 0,
  total_visits int not null default 0,
  last_visit_date date,
  created_by_user_id uuid,
  created_at timestamptz not null default now()
);
create table client_tag_assignments (
  client_id uuid not null,
  tag_id uuid not null,
  primary key (client_id, tag_id)
);
`

func openRepo(t *testing.T) (Repo, func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())

	st, err := store.Open(ctx, store.Config{
		AppName: "clientele-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(*logger.Get()))
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("store.Open: %v", err)
	}
	if _, err := st.PG.Exec(ctx, schema); err != nil {
		t.Fatalf("schema: %v", err)
	}

	stop := func() {
		_ = st.Close(context.Background())
		_ = c.Terminate(context.Background())
		cancel()
	}
	return NewPG().Bind(st.PG), stop
}

func TestCheckDuplicatePhone_Integration(t *testing.T) {
	r, stop := openRepo(t)
	defer stop()
	ctx := context.Background()

	ana, err := r.Create(ctx, domain.CreateClientInput{Name: "Ana", Phone: "11999990001"})
	if err != nil {
		t.Fatalf("create ana: %v", err)
	}
	if _, err := r.Create(ctx, domain.CreateClientInput{Name: "Beto", Phone: "11999990002"}); err != nil {
		t.Fatalf("create beto: %v", err)
	}

	// no exclusion: the owner surfaces
	got, err := r.CheckDuplicatePhone(ctx, "11999990001", "")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if got == nil || got.ID != ana.ID {
		t.Fatalf("owner lookup = %+v, want ana", got)
	}

	// the owner itself is excluded on update paths
	got, err = r.CheckDuplicatePhone(ctx, "11999990001", ana.ID)
	if err != nil {
		t.Fatalf("check with exclude: %v", err)
	}
	if got != nil {
		t.Fatalf("self exclusion failed, got %+v", got)
	}

	// free phone, empty exclude
	got, err = r.CheckDuplicatePhone(ctx, "11888880000", "")
	if err != nil {
		t.Fatalf("check free phone: %v", err)
	}
	if got != nil {
		t.Fatalf("free phone reported taken: %+v", got)
	}
}

func TestDuplicateClient_Integration(t *testing.T) {
	r, stop := openRepo(t)
	defer stop()
	ctx := context.Background()

	src, err := r.Create(ctx, domain.CreateClientInput{Name: "Ana", Phone: "11999990001"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dup, err := r.DuplicateClient(ctx, src.ID)
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	if dup.ID == src.ID || dup.Name != "Ana (copy)" {
		t.Fatalf("copy = %+v", dup)
	}
	if dup.TotalVisits != 0 || dup.SpentAmount() != 0 {
		t.Fatalf("copy carries activity: %+v", dup)
	}
}
