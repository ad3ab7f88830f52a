package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onedrop-app/onedrop-api/internal/config"
	"github.com/onedrop-app/onedrop-api/internal/db"
	"github.com/onedrop-app/onedrop-api/internal/domain"
	"github.com/onedrop-app/onedrop-api/internal/repository/dao"
)

type testServer struct {
	t      *testing.T
	server *Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conf, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	conf.Gin.Mode = "test"

	gdb, err := db.OpenSQLiteMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testServer{t: t, server: NewServer(conf, gdb)}
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.server.Router.ServeHTTP(rec, req)

	return rec
}

type registered struct {
	Participant struct {
		ID uint `json:"id"`
	} `json:"participant"`
	Token string `json:"token"`
}

func (ts *testServer) register(path string, body map[string]string) registered {
	ts.t.Helper()

	rec := ts.do(http.MethodPost, "/api/v1"+path, "", body)
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	var r registered
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &r))
	require.NotEmpty(ts.t, r.Token)

	return r
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errBody struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

func TestCampaignFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	hospital := ts.register("/hospitals", map[string]string{"name": "Hospital Central"})
	stranger := ts.register("/hospitals", map[string]string{"name": "Hospital Norte"})
	beneficiary := ts.register("/beneficiaries", map[string]string{"name": "Ana", "required_blood_type": "A+", "urgency": "high"})
	oNeg := ts.register("/donors", map[string]string{"name": "Luis", "blood_type": "O-"})
	bPos := ts.register("/donors", map[string]string{"name": "Pedro", "blood_type": "B+"})

	rec := ts.do(http.MethodPost, "/api/v1/campaigns/requests", beneficiary.Token, map[string]any{
		"hospital_id": hospital.Participant.ID,
		"name":        "Ana needs A+",
		"start_date":  "2099-02-01",
		"end_date":    "2099-02-28",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	campaign := decode[domain.Campaign](t, rec)
	assert.Equal(t, domain.StatePendingApproval, campaign.State)
	campaignPath := fmt.Sprintf("/api/v1/campaigns/%d", campaign.ID)

	rec = ts.do(http.MethodPost, "/api/v1/campaigns/requests", beneficiary.Token, map[string]any{
		"hospital_id": hospital.Participant.ID,
		"name":        "Again",
		"start_date":  "2099-02-01",
		"end_date":    "2099-02-28",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate_active_campaign", decode[errBody](t, rec).Kind)

	rec = ts.do(http.MethodPost, campaignPath+"/approve", stranger.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(http.MethodPost, campaignPath+"/approve", oNeg.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = ts.do(http.MethodPost, campaignPath+"/finalize", hospital.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", decode[errBody](t, rec).Kind)

	rec = ts.do(http.MethodPost, campaignPath+"/approve", hospital.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.StateActive, decode[domain.Campaign](t, rec).State)

	rec = ts.do(http.MethodGet, "/api/v1/campaigns/eligible?as_of=2099-02-10", oNeg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Campaign](t, rec), 1)
	rec = ts.do(http.MethodGet, "/api/v1/campaigns/eligible?as_of=2099-02-10", bPos.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Campaign](t, rec))

	rec = ts.do(http.MethodPost, campaignPath+"/enrollments", oNeg.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = ts.do(http.MethodPost, campaignPath+"/enrollments", oNeg.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_enrolled", decode[errBody](t, rec).Kind)
	rec = ts.do(http.MethodPost, campaignPath+"/enrollments", bPos.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodGet, campaignPath+"/enrollments/count", hospital.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"campaign_id":%d,"count":1}`, campaign.ID), rec.Body.String())

	rec = ts.do(http.MethodGet, "/api/v1/enrollments/mine", oNeg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Enrollment](t, rec), 1)

	rec = ts.do(http.MethodGet, "/api/v1/campaigns/mine", hospital.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Campaign](t, rec), 1)
	rec = ts.do(http.MethodGet, "/api/v1/campaigns/mine", oNeg.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPost, campaignPath+"/finalize", hospital.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StateFinalized, decode[domain.Campaign](t, rec).State)

	rec = ts.do(http.MethodGet, "/api/v1/campaigns/eligible?as_of=2099-02-10", oNeg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Campaign](t, rec))
}

func TestDriveOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	hospital := ts.register("/hospitals", map[string]string{"name": "Hospital Central"})
	donor := ts.register("/donors", map[string]string{"name": "Pedro", "blood_type": "AB+"})

	rec := ts.do(http.MethodPost, "/api/v1/campaigns/drives", hospital.Token, map[string]any{
		"name":                "Spring drive",
		"emphasis_blood_type": "O-",
		"units_needed":        40,
		"start_date":          "2099-03-01",
		"end_date":            "2099-03-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	drive := decode[domain.Campaign](t, rec)
	assert.Equal(t, domain.StateActive, drive.State)
	assert.Equal(t, domain.Universal, drive.RequiredBloodType)

	rec = ts.do(http.MethodGet, "/api/v1/campaigns/eligible?as_of=2099-03-15", donor.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	eligible := decode[[]domain.Campaign](t, rec)
	require.Len(t, eligible, 1)
	assert.Equal(t, drive.ID, eligible[0].ID)

	rec = ts.do(http.MethodPost, campaignURL(drive.ID)+"/enrollments", donor.Token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodPost, "/api/v1/campaigns/drives", hospital.Token, map[string]any{
		"name":       "Last winter",
		"start_date": "2020-01-01",
		"end_date":   "2020-01-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ended := decode[domain.Campaign](t, rec)
	require.Equal(t, domain.StateActive, ended.State)

	rec = ts.do(http.MethodPost, campaignURL(ended.ID)+"/enrollments", donor.Token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", decode[errBody](t, rec).Kind)
	rec = ts.do(http.MethodGet, campaignURL(ended.ID), donor.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(http.MethodGet, campaignURL(ended.ID)+"/enrollments/count", hospital.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"campaign_id":%d,"count":0}`, ended.ID), rec.Body.String())

	rec = ts.do(http.MethodPost, "/api/v1/campaigns/drives", donor.Token, map[string]any{
		"name":       "Not mine to run",
		"start_date": "2099-03-01",
		"end_date":   "2099-03-31",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func campaignURL(id uint) string {
	return fmt.Sprintf("/api/v1/campaigns/%d", id)
}

func TestCampaignVisibilityOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	hospital := ts.register("/hospitals", map[string]string{"name": "Hospital Central"})
	stranger := ts.register("/hospitals", map[string]string{"name": "Hospital Norte"})
	ana := ts.register("/beneficiaries", map[string]string{"name": "Ana", "required_blood_type": "A+"})
	bea := ts.register("/beneficiaries", map[string]string{"name": "Bea", "required_blood_type": "A+"})
	oNeg := ts.register("/donors", map[string]string{"name": "Luis", "blood_type": "O-"})
	bPos := ts.register("/donors", map[string]string{"name": "Pedro", "blood_type": "B+"})

	request := func(token string) string {
		rec := ts.do(http.MethodPost, "/api/v1/campaigns/requests", token, map[string]any{
			"hospital_id": hospital.Participant.ID,
			"name":        "Needs A+",
			"start_date":  "2099-02-01",
			"end_date":    "2099-02-28",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return campaignURL(decode[domain.Campaign](t, rec).ID)
	}
	pending := request(ana.Token)
	rejected := request(bea.Token)
	rec := ts.do(http.MethodPost, rejected+"/reject", hospital.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"owner hospital on pending", pending, hospital.Token, http.StatusOK},
		{"owner hospital on rejected", rejected, hospital.Token, http.StatusOK},
		{"other hospital", pending, stranger.Token, http.StatusNotFound},
		{"requesting beneficiary", pending, ana.Token, http.StatusOK},
		{"other beneficiary", pending, bea.Token, http.StatusNotFound},
		{"compatible donor on pending", pending, oNeg.Token, http.StatusNotFound},
		{"incompatible donor on pending", pending, bPos.Token, http.StatusNotFound},
		{"incompatible donor on rejected", rejected, bPos.Token, http.StatusNotFound},
		{"compatible donor on rejected", rejected, oNeg.Token, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.want == http.StatusNotFound {
				assert.Equal(t, "not_found", decode[errBody](t, rec).Kind)
			}
		})
	}

	rec = ts.do(http.MethodPost, pending+"/approve", hospital.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodGet, pending, oNeg.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.StateActive, decode[domain.Campaign](t, rec).State)
	rec = ts.do(http.MethodGet, pending, bPos.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestValidationOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	hospital := ts.register("/hospitals", map[string]string{"name": "Hospital Central"})
	beneficiary := ts.register("/beneficiaries", map[string]string{"name": "Ana", "required_blood_type": "A+"})
	donor := ts.register("/donors", map[string]string{"name": "Luis", "blood_type": "O-"})

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		want   int
	}{
		{"no token", http.MethodGet, "/api/v1/campaigns/eligible", "", nil, http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/v1/campaigns/eligible", "not-a-jwt", nil, http.StatusUnauthorized},
		{"end before start", http.MethodPost, "/api/v1/campaigns/requests", beneficiary.Token, map[string]any{
			"hospital_id": hospital.Participant.ID, "name": "x", "start_date": "2099-02-10", "end_date": "2099-02-01",
		}, http.StatusBadRequest},
		{"malformed date", http.MethodPost, "/api/v1/campaigns/requests", beneficiary.Token, map[string]any{
			"hospital_id": hospital.Participant.ID, "name": "x", "start_date": "10/02/2026", "end_date": "2099-02-01",
		}, http.StatusBadRequest},
		{"unknown hospital", http.MethodPost, "/api/v1/campaigns/requests", beneficiary.Token, map[string]any{
			"hospital_id": hospital.Participant.ID + 100, "name": "x", "start_date": "2099-02-01", "end_date": "2099-02-10",
		}, http.StatusNotFound},
		{"unknown blood type", http.MethodPost, "/api/v1/donors", "", map[string]string{"name": "Luis", "blood_type": "C+"}, http.StatusBadRequest},
		{"bad campaign id", http.MethodGet, "/api/v1/campaigns/abc", donor.Token, nil, http.StatusBadRequest},
		{"missing campaign", http.MethodGet, "/api/v1/campaigns/999", donor.Token, nil, http.StatusNotFound},
		{"missing campaign count", http.MethodGet, "/api/v1/campaigns/999/enrollments/count", donor.Token, nil, http.StatusNotFound},
		{"bad as_of", http.MethodGet, "/api/v1/campaigns/eligible?as_of=tomorrow", donor.Token, nil, http.StatusBadRequest},
		{"eligible as hospital", http.MethodGet, "/api/v1/campaigns/eligible", hospital.Token, nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestOperationalEndpoints(t *testing.T) {
	ts := newTestServer(t)

	donor := ts.register("/donors", map[string]string{"name": "Luis", "blood_type": "O-"})
	rec := ts.do(http.MethodPost, "/api/v1/campaigns/1/enrollments", donor.Token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = ts.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `onedrop_enrollments_total{outcome="not_found"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
