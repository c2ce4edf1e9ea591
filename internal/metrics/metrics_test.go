package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveStoreOp(t *testing.T) {
	m := New()
	m.ObserveStoreOp("file", "get", "ok", 2*time.Millisecond)
	m.ObserveStoreOp("file", "get", "ok", time.Millisecond)
	m.ObserveStoreOp("file", "set", "error", time.Millisecond)

	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("file", "get", "ok")); got != 2 {
		t.Errorf("get ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.storeOps.WithLabelValues("file", "set", "error")); got != 1 {
		t.Errorf("set error count = %v, want 1", got)
	}
}

func TestIncMutationAndSkillCounts(t *testing.T) {
	m := New()
	m.IncMutation("create")
	m.IncMutation("create")
	m.SetSkillCounts(map[string]int{"completed": 3, "in-progress": 1})

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("create")); got != 2 {
		t.Errorf("create mutations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.skills.WithLabelValues("completed")); got != 3 {
		t.Errorf("completed gauge = %v, want 3", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.IncMutation("toggle")

	path := filepath.Join(t.TempDir(), "skilltrack.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(raw), `skilltrack_skill_mutations_total{op="toggle"} 1`) {
		t.Errorf("textfile missing mutation counter:\n%s", raw)
	}
}
