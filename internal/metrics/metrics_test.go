package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/excelchat/login-e2e/internal/loginflow"
)

func TestObserveScenario(t *testing.T) {
	m := New()
	m.ObserveScenario(loginflow.Result{Scenario: "sign_up", Passed: true, Duration: 2 * time.Second})
	m.ObserveScenario(loginflow.Result{Scenario: "sign_up", Err: errors.New("timeout"), Duration: 20 * time.Second})
	m.ObserveScenario(loginflow.Result{Scenario: "forgot_password", Passed: true, Duration: time.Second})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("sign_up", "pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues("sign_up", "fail")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.lastRun.WithLabelValues("sign_up")), "last result wins")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.lastRun.WithLabelValues("forgot_password")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveScenario(loginflow.Result{Scenario: "no_email_no_password", Passed: true, Duration: 1500 * time.Millisecond})

	path := filepath.Join(t.TempDir(), "login_e2e.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `login_e2e_scenario_runs_total{result="pass",scenario="no_email_no_password"} 1`)
	assert.Contains(t, string(data), "login_e2e_scenario_duration_seconds_bucket")
}

func TestWriteTextfileBadPath(t *testing.T) {
	m := New()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.Error(t, err)
}
