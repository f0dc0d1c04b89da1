package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/muster/internal/app"
	"github.com/alexanderramin/muster/internal/metrics"
	"github.com/alexanderramin/muster/internal/repository"
	"github.com/alexanderramin/muster/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReports struct {
	got  app.EligibilityRequest
	resp *app.EligibilityResponse
	err  error
}

func (s *stubReports) Report(_ context.Context, req app.EligibilityRequest) (*app.EligibilityResponse, error) {
	s.got = req
	return s.resp, s.err
}

func sampleResponse() *app.EligibilityResponse {
	return &app.EligibilityResponse{
		Summary: app.EligibilitySummary{Members: 1, Eligible: 1, Promotable: 1, TotalSessions: 4},
		Verdicts: []app.VerdictView{{
			MemberKey: "anna", Name: "Anna", Rank: "Gefreiter", NextRank: "Obergefreiter",
			Percent: 75, Eligible: true, Reasons: []app.ReasonView{},
		}},
	}
}

func do(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	h := New(&stubReports{}, nil, nil).Router()

	rec := do(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEligibility_PassesFilters(t *testing.T) {
	stub := &stubReports{resp: sampleResponse()}
	h := New(stub, nil, nil).Router()

	rec := do(t, h, "/eligibility?member=anna&rank=Gefreiter&officers=true&eligible=1&now=2025-06-15")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	assert.Equal(t, "anna", stub.got.MemberKey)
	assert.Equal(t, "Gefreiter", stub.got.Rank)
	assert.True(t, stub.got.OfficersOnly)
	assert.True(t, stub.got.EligibleOnly)
	require.NotNil(t, stub.got.Now)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), *stub.got.Now)

	var body app.EligibilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Verdicts, 1)
	assert.Equal(t, "Obergefreiter", body.Verdicts[0].NextRank)
	assert.Equal(t, 75, body.Verdicts[0].Percent)
}

func TestEligibility_BadQuery(t *testing.T) {
	h := New(&stubReports{resp: sampleResponse()}, nil, nil).Router()

	for _, target := range []string{"/eligibility?officers=maybe", "/eligibility?eligible=x", "/eligibility?now=15.06.2025"} {
		rec := do(t, h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), `"error"`, target)
	}
}

func TestEligibility_ErrorMapping(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("member %q: %w", "ghost", repository.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w %q", service.ErrUnknownRank, "Admiral"), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		h := New(&stubReports{err: tc.err}, logger, nil).Router()
		rec := do(t, h, "/eligibility")
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
	assert.Contains(t, logs.String(), "eligibility report failed")
	assert.Contains(t, logs.String(), "msg=http_request")
}

func TestMetricsEndpoint(t *testing.T) {
	recorder := metrics.New()
	h := New(&stubReports{resp: sampleResponse()}, nil, recorder).Router()

	require.Equal(t, http.StatusOK, do(t, h, "/eligibility").Code)

	rec := do(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "muster_sessions_total 4")
}

func TestMetricsEndpoint_AbsentWithoutRecorder(t *testing.T) {
	h := New(&stubReports{}, nil, nil).Router()
	assert.Equal(t, http.StatusNotFound, do(t, h, "/metrics").Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, New(&stubReports{}, nil, nil).Router(), slog.New(slog.DiscardHandler))
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
