package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cobby8/allowance-manager-web/internal/auth"
	"github.com/cobby8/allowance-manager-web/internal/mask"
	"github.com/cobby8/allowance-manager-web/internal/models"
)

const rosterCSV = `성명,주민등록번호,연락처,은행명,계좌번호
김민수,900101-1234567,01011112222,국민,123456789012
이영희,800101-2345678,010-3333-4444,신한,110123456789
박철수,,,,
`

const activityCSV = `10월 11일
구분,이름,주민등록번호,연락처,지급액,사업/기타소득세(B),지방소득세(C),실수령액
심판,김민수,900101-1234567,,100000,3000,300,96700
심판,이영희,,,50000,1500,150,48350
진행,최지훈,,,30000,900,90,29010
`

type testEnv struct {
	env
	stdout *bytes.Buffer
	vars   map[string]string
}

func newTestEnv(stdin string, vars map[string]string) *testEnv {
	te := &testEnv{stdout: &bytes.Buffer{}, vars: vars}
	te.env = env{
		stdin:  strings.NewReader(stdin),
		stdout: te.stdout,
		stderr: &bytes.Buffer{},
		getenv: func(k string) string { return te.vars[k] },
	}
	return te
}

func writeInputs(t *testing.T) (dir, roster, activity string) {
	t.Helper()
	dir = t.TempDir()
	roster = filepath.Join(dir, "roster.csv")
	activity = filepath.Join(dir, "activity.csv")
	if err := os.WriteFile(roster, []byte(rosterCSV), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	if err := os.WriteFile(activity, []byte(activityCSV), 0o600); err != nil {
		t.Fatalf("write activity: %v", err)
	}
	return dir, roster, activity
}

func TestRun_NoCommand(t *testing.T) {
	te := newTestEnv("", nil)
	if err := run(context.Background(), nil, te.env); err == nil {
		t.Error("expected error without a command")
	}
	if err := run(context.Background(), []string{"frobnicate"}, te.env); err == nil {
		t.Error("expected error for an unknown command")
	}
}

func TestReconcile_JSON(t *testing.T) {
	_, roster, activity := writeInputs(t)
	te := newTestEnv("", nil)

	err := run(context.Background(), []string{
		"reconcile", "--roster", roster, "--activity", activity, "--format", "json", "--orphans",
	}, te.env)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	var got struct {
		Settlements []struct {
			Name       string `json:"name"`
			ResidentID string `json:"resident_id"`
			Status     string `json:"status"`
			TotalNet   string `json:"total_net"`
		} `json:"settlements"`
		Orphans []struct {
			Name string `json:"name"`
		} `json:"orphans"`
	}
	if err := json.Unmarshal(te.stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, te.stdout)
	}

	want := []struct{ name, status, net string }{
		{"김민수", "matched", "96700"},
		{"이영희", "partial", "48350"},
		{"박철수", "unmatched", "0"},
	}
	if len(got.Settlements) != len(want) {
		t.Fatalf("expected %d settlements, got %d", len(want), len(got.Settlements))
	}
	for i, w := range want {
		s := got.Settlements[i]
		if s.Name != w.name || s.Status != w.status || s.TotalNet != w.net {
			t.Errorf("settlement %d = %s/%s/%s, want %s/%s/%s", i, s.Name, s.Status, s.TotalNet, w.name, w.status, w.net)
		}
	}
	if got.Settlements[0].ResidentID != "900101-1******" {
		t.Errorf("expected masked resident ID, got %s", got.Settlements[0].ResidentID)
	}
	if len(got.Orphans) != 1 || got.Orphans[0].Name != "최지훈" {
		t.Errorf("expected 최지훈 as the only orphan, got %+v", got.Orphans)
	}
}

func TestReconcile_RevealRequiresPassphrase(t *testing.T) {
	dir, roster, activity := writeInputs(t)
	hash, err := auth.HashPassphrase("정산 비밀번호")
	if err != nil {
		t.Fatalf("HashPassphrase failed: %v", err)
	}
	configPath := filepath.Join(dir, "settle.yaml")
	os.WriteFile(configPath, []byte("security:\n  passphrase_hash: \""+hash+"\"\n"), 0o600)

	args := []string{"reconcile", "--config", configPath, "--roster", roster, "--activity", activity, "--format", "csv", "--reveal"}

	t.Run("wrong passphrase", func(t *testing.T) {
		te := newTestEnv("틀린 비밀번호\n", nil)
		err := run(context.Background(), args, te.env)
		if err == nil {
			t.Fatal("expected error for a wrong passphrase")
		}
		if te.stdout.Len() != 0 {
			t.Errorf("nothing should be rendered on a failed reveal, got %q", te.stdout)
		}
	})

	t.Run("passphrase from env", func(t *testing.T) {
		te := newTestEnv("", map[string]string{passphraseEnv: "정산 비밀번호"})
		if err := run(context.Background(), args, te.env); err != nil {
			t.Fatalf("reconcile failed: %v", err)
		}
		if !strings.Contains(te.stdout.String(), "900101-1234567") {
			t.Errorf("expected unmasked resident ID in:\n%s", te.stdout)
		}
	})
}

func TestReconcile_ArchiveMetricsAndOutput(t *testing.T) {
	dir, roster, activity := writeInputs(t)
	archive := filepath.Join(dir, "runs", "archive.db")
	metricsFile := filepath.Join(dir, "settle.prom")
	out := filepath.Join(dir, "payslips.html")

	te := newTestEnv("", nil)
	err := run(context.Background(), []string{
		"reconcile", "--roster", roster, "--activity", activity,
		"--format", "html", "--out", out,
		"--archive", archive, "--metrics-file", metricsFile,
	}, te.env)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	html, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Count(string(html), "<section>") != 3 {
		t.Errorf("expected one section per person")
	}

	prom, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(prom), `settle_people{status="matched"} 1`) {
		t.Errorf("metrics file missing matched gauge:\n%s", prom)
	}

	runs := newTestEnv("", nil)
	if err := run(context.Background(), []string{"runs", "--archive", archive}, runs.env); err != nil {
		t.Fatalf("runs failed: %v", err)
	}
	listing := runs.stdout.String()
	if strings.Count(listing, "\n") != 1 {
		t.Fatalf("expected one archived run, got:\n%s", listing)
	}
	if !strings.Contains(listing, "people=3 orphans=1") || !strings.Contains(listing, "net=145,050") {
		t.Errorf("unexpected run listing: %s", listing)
	}
}

func TestReconcile_MissingFlags(t *testing.T) {
	te := newTestEnv("", nil)
	err := run(context.Background(), []string{"reconcile", "--roster", "a.csv"}, te.env)
	if err == nil || !strings.Contains(err.Error(), "--activity") {
		t.Errorf("expected missing --activity error, got %v", err)
	}
}

func TestReconcile_UnsupportedFile(t *testing.T) {
	te := newTestEnv("", nil)
	err := run(context.Background(), []string{"reconcile", "--roster", "roster.pdf", "--activity", "activity.csv"}, te.env)
	if err == nil || !strings.Contains(err.Error(), "roster load failed") {
		t.Errorf("expected roster load error, got %v", err)
	}
}

func TestHashPassphrase(t *testing.T) {
	te := newTestEnv("가나다라\n", nil)
	if err := run(context.Background(), []string{"hash-passphrase"}, te.env); err != nil {
		t.Fatalf("hash-passphrase failed: %v", err)
	}
	hash := strings.TrimSpace(te.stdout.String())
	if err := auth.VerifyPassphrase(hash, "가나다라"); err != nil {
		t.Errorf("printed hash does not verify: %v", err)
	}

	weak := newTestEnv("abc\n", nil)
	if err := run(context.Background(), []string{"hash-passphrase"}, weak.env); err == nil {
		t.Error("expected error for a weak passphrase")
	}
}

func TestUnseal(t *testing.T) {
	sealer, err := mask.NewSealer("정산 비밀번호", 10)
	if err != nil {
		t.Fatalf("NewSealer failed: %v", err)
	}
	sealed, err := sealer.Seal("900101-1234567")
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	te := newTestEnv(sealed+"\n", map[string]string{passphraseEnv: "정산 비밀번호"})
	if err := run(context.Background(), []string{"unseal"}, te.env); err != nil {
		t.Fatalf("unseal failed: %v", err)
	}
	if got := strings.TrimSpace(te.stdout.String()); got != "900101-1234567" {
		t.Errorf("unseal = %q, want the original value", got)
	}

	noPass := newTestEnv("", nil)
	if err := run(context.Background(), []string{"unseal", sealed}, noPass.env); err == nil {
		t.Error("expected error without a passphrase")
	}
}

func TestProtector_Activities(t *testing.T) {
	acts := []models.ActivityRecord{{Name: "김민수", ResidentID: "900101-1234567", AccountNumber: "123456789012"}}

	masked, err := newProtector("", 0)
	if err != nil {
		t.Fatalf("newProtector failed: %v", err)
	}
	got, err := masked.activities(acts)
	if err != nil {
		t.Fatalf("activities failed: %v", err)
	}
	if got[0].AccountNumber != mask.AccountNumber("123456789012") || got[0].ResidentID != "900101-1******" {
		t.Errorf("expected masked values, got %+v", got[0])
	}

	sealing, err := newProtector("정산 비밀번호", 10)
	if err != nil {
		t.Fatalf("newProtector failed: %v", err)
	}
	got, err = sealing.activities(acts)
	if err != nil {
		t.Fatalf("activities failed: %v", err)
	}
	opener, err := mask.NewSealer("정산 비밀번호", 0)
	if err != nil {
		t.Fatalf("NewSealer failed: %v", err)
	}
	account, err := opener.Open(got[0].AccountNumber)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if account != "123456789012" {
		t.Errorf("unsealed account = %q", account)
	}
	if acts[0].AccountNumber != "123456789012" {
		t.Error("input records must not be modified")
	}
}
