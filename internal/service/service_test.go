package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/onedrop-app/onedrop-api/internal/db"
	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/repository"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
	"github.com/onedrop-app/onedrop-api/internal/store"
)

type services struct {
	participants *ParticipantService
	campaigns    *CampaignService
	enrollments  *EnrollmentService
}

func newServices(t *testing.T) services {
	t.Helper()

	gdb, err := db.OpenSQLiteMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	participantRepo := repository.NewParticipantRepository(dao.NewParticipantDAO(gdb))
	campaignRepo := repository.NewCampaignRepository(dao.NewCampaignDAO(gdb))
	enrollmentRepo := repository.NewEnrollmentRepository(dao.NewEnrollmentDAO(gdb))

	campaigns := NewCampaignService(campaignRepo, participantRepo, nil)
	campaigns.now = clock
	enrollments := NewEnrollmentService(enrollmentRepo, campaignRepo, participantRepo, nil)
	enrollments.now = clock

	return services{
		participants: NewParticipantService(participantRepo),
		campaigns:    campaigns,
		enrollments:  enrollments,
	}
}

// testNow sits inside the February 2026 windows most tests schedule.
var testNow = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func date(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func hospitalActor(h domain.Hospital) domain.Actor {
	return domain.Actor{Role: domain.RoleHospital, ID: h.ID}
}

func donorActor(d domain.Donor) domain.Actor {
	return domain.Actor{Role: domain.RoleDonor, ID: d.ID}
}

func beneficiaryActor(b domain.Beneficiary) domain.Actor {
	return domain.Actor{Role: domain.RoleBeneficiary, ID: b.ID}
}

func campaignIDs(cs []domain.Campaign) []uint {
	ids := make([]uint, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}

// fakeKV is an in-memory store.KV with TTL and optional failures.
type fakeKV struct {
	mu     sync.Mutex
	data   map[string]fakeKVItem
	failed error
}

type fakeKVItem struct {
	value   string
	expires time.Time
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]fakeKVItem)}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failed != nil {
		return "", f.failed
	}
	item, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	if !item.expires.IsZero() && time.Now().After(item.expires) {
		delete(f.data, key)
		return "", store.ErrMiss
	}
	return item.value, nil
}

func (f *fakeKV) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failed != nil {
		return f.failed
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	f.data[key] = fakeKVItem{value: value, expires: exp}
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failed != nil {
		return f.failed
	}
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeKV) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed = err
}

func (f *fakeKV) peek(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.data[key]
	return item.value, ok
}

var errRedisDown = errors.New("redis: connection refused")
