package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/onedrop-app/onedrop-api/internal/config"
	"github.com/onedrop-app/onedrop-api/internal/db"
	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/pkg/jwthelper"
	"github.com/onedrop-app/onedrop-api/internal/repository"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "sweep", "token"}, names)
}

// useSQLiteFile points the commands at a fresh sqlite file and returns a
// repository over it for seeding.
func useSQLiteFile(t *testing.T) *repository.ParticipantRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "onedrop.db")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ONEDROP_DATABASE_DRIVER", "sqlite")
	t.Setenv("ONEDROP_SQLITE_PATH", path)

	gdb, err := db.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return repository.NewParticipantRepository(dao.NewParticipantDAO(gdb))
}

func TestTokenCommand(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	participants := useSQLiteFile(t)
	donor, err := participants.CreateDonor(context.Background(), domain.Donor{Name: "Luis", BloodType: domain.ONeg})
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "absent.yml")
	id := strconv.FormatUint(uint64(donor.ID), 10)

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--config", missing, "--role", "donor", "--id", id})
	require.NoError(t, root.Execute())

	conf, err := config.Load(missing)
	require.NoError(t, err)

	actor, err := jwthelper.ParseToken([]byte(conf.API.JWTSigningKey), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{Role: domain.RoleDonor, ID: donor.ID}, actor)
}

func TestTokenCommand_UnknownParticipant(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	participants := useSQLiteFile(t)
	donor, err := participants.CreateDonor(context.Background(), domain.Donor{Name: "Luis", BloodType: domain.ONeg})
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "absent.yml")
	id := strconv.FormatUint(uint64(donor.ID), 10)

	tests := []struct {
		name string
		args []string
	}{
		{"no such donor", []string{"token", "--config", missing, "--role", "donor", "--id", "999"}},
		{"donor id under another role", []string{"token", "--config", missing, "--role", "hospital", "--id", id}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			root.SetArgs(tt.args)

			err := root.Execute()
			assert.ErrorIs(t, err, domain.ErrNotFound)
			assert.Empty(t, out.String(), "no token is printed")
		})
	}
}

func TestTokenCommand_Rejects(t *testing.T) {
	tests := [][]string{
		{"token", "--role", "system", "--id", "1"},
		{"token", "--role", "admin", "--id", "1"},
		{"token", "--role", "hospital"},
	}
	for _, args := range tests {
		root := newRootCommand()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		assert.Error(t, root.Execute(), strings.Join(args, " "))
	}
}

func TestSweepCommand_InvalidDate(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"sweep", "--as-of", "yesterday"})
	assert.ErrorContains(t, root.Execute(), "--as-of")
}
