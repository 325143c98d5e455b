package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReferenceCommand(t *testing.T) {
	out, err := execute(t, "reference", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("reference failed: %v", err)
	}
	if !strings.Contains(out, "Shoulder Torque = 24.277 Nm") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestReachCommand(t *testing.T) {
	out, err := execute(t, "reach", "--data", t.TempDir(), "--workers", "2")
	if err != nil {
		t.Fatalf("reach failed: %v", err)
	}
	if !strings.Contains(out, "X = 551.5 mm") || !strings.Contains(out, "feasible=43") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = execute(t, "reach", "--data", t.TempDir(), "--shoulder-limit", "0")
	if err != nil {
		t.Fatalf("reach failed: %v", err)
	}
	if !strings.Contains(out, "no feasible pose") {
		t.Errorf("expected no feasible pose:\n%s", out)
	}
}

func TestReachListAll(t *testing.T) {
	out, err := execute(t, "reach", "--data", t.TempDir(), "--all")
	if err != nil {
		t.Fatalf("reach failed: %v", err)
	}
	if !strings.Contains(out, "THETA1") || !strings.Contains(out, "551.5") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestReportJSON(t *testing.T) {
	out, err := execute(t, "report", "--json", "--data", t.TempDir(), "--payload", "1")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["masses"].(map[string]any)["payload"] != 1.0 {
		t.Errorf("payload override not applied: %v", decoded["masses"])
	}
}

func TestSaveAndList(t *testing.T) {
	dir := t.TempDir()

	id, err := execute(t, "save", "--data", dir)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	id = strings.TrimSpace(id)

	out, err := execute(t, "list", "--data", dir)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, id) || !strings.Contains(out, "(40.0°, 97.0°)") {
		t.Errorf("snapshot missing from list:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	out, err := execute(t, "list", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "no snapshots found") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRenderCommand(t *testing.T) {
	out, err := execute(t, "render", "reference", "--format", "svg", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "E (400.0mm, 0.0mm)") {
		t.Errorf("unexpected svg:\n%s", out)
	}

	out, err = execute(t, "render", "reach", "--data", t.TempDir())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "E (551.5mm") {
		t.Errorf("unexpected terminal render:\n%s", out)
	}

	if _, err := execute(t, "render", "reach", "--format", "png", "--data", t.TempDir()); err == nil {
		t.Error("png without --out should fail")
	}
	if _, err := execute(t, "render", "reach", "--format", "gif", "--data", t.TempDir()); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestSweepCommand(t *testing.T) {
	png := filepath.Join(t.TempDir(), "sweep.png")
	out, err := execute(t, "sweep", "shoulder", "--from", "0", "--to", "60", "--n", "4", "--png", png, "--data", t.TempDir())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if !strings.Contains(out, "SHOULDER LIMIT") {
		t.Errorf("unexpected output:\n%s", out)
	}

	if _, err := execute(t, "sweep", "wrist", "--data", t.TempDir()); err == nil {
		t.Error("unknown sweep target should fail")
	}
}

func TestPresetsAndConfig(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	for _, name := range []string{"default", "light-payload", "heavy-payload", "strong-motors", "fine-grid"} {
		if !strings.Contains(out, name) {
			t.Errorf("missing preset %s", name)
		}
	}

	if _, err := execute(t, "reach", "--preset", "nope"); err == nil {
		t.Error("unknown preset should fail")
	}

	path := filepath.Join(t.TempDir(), "arm.toml")
	if _, err := execute(t, "init", path, "--preset", "heavy-payload"); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out, err = execute(t, "report", "--json", "--config", path, "--data", t.TempDir())
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, `"payload": 8`) {
		t.Errorf("config file not applied:\n%s", out)
	}
}
