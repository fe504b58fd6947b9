package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/scenectl/internal/asset"
	"github.com/danmuck/scenectl/internal/report"
	"github.com/danmuck/scenectl/internal/resolver"
	"github.com/danmuck/scenectl/internal/server"
	"github.com/danmuck/scenectl/internal/storage"
	"github.com/danmuck/scenectl/internal/testutil/fixtures"
	"github.com/danmuck/scenectl/internal/testutil/testlog"
	"gopkg.in/yaml.v3"
)

func scenarioRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fs, err := storage.NewOS(dir)
	if err != nil {
		t.Fatalf("os fs: %v", err)
	}
	fixtures.Write(t, fs, map[string]string{
		"level1.toml":      fixtures.Level1,
		"gameobject1.toml": fixtures.GameObject1,
		"gameobject2.toml": fixtures.GameObject2,
		"mesh2.bin":        fixtures.TriangleGLTF,
	})
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestResolvePrintsSummary(t *testing.T) {
	testlog.Start(t)
	root := scenarioRoot(t)

	out, err := run(t, "--root", root, "resolve", "level1.toml")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !strings.HasPrefix(out, "level1: 2 game objects, 1 meshes, 3 vertices") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "mesh=mesh2.bin") {
		t.Fatalf("expected mesh path in output:\n%s", out)
	}
	testlog.Logf("scenectl/resolve:\n%s", out)
}

func TestInspectFormats(t *testing.T) {
	testlog.Start(t)
	root := scenarioRoot(t)

	out, err := run(t, "--root", root, "--workers", "3", "inspect", "level1.toml")
	if err != nil {
		t.Fatalf("inspect json: %v", err)
	}
	var level report.Level
	if err := json.Unmarshal([]byte(out), &level); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if level.Title != "level1" || len(level.GameObjects) != 2 {
		t.Fatalf("unexpected level: %+v", level)
	}

	out, err = run(t, "--root", root, "inspect", "--format", "yaml", "--kind", "descriptions", "level1.toml")
	if err != nil {
		t.Fatalf("inspect yaml: %v", err)
	}
	var descs report.Descriptions
	if err := yaml.Unmarshal([]byte(out), &descs); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if len(descs.GameObjects) != 2 || descs.GameObjects[1].Mesh == nil {
		t.Fatalf("unexpected descriptions: %+v", descs)
	}

	if _, err := run(t, "--root", root, "inspect", "--format", "xml", "level1.toml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if _, err := run(t, "--root", root, "inspect", "--kind", "mesh", "level1.toml"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestValidateReportsFailures(t *testing.T) {
	testlog.Start(t)
	root := scenarioRoot(t)
	bad := "title = \"bad\"\ngameobjects = [\"gameobject1.toml\", \"p2.toml\"]\n"
	if err := os.WriteFile(filepath.Join(root, "bad.toml"), []byte(bad), 0o600); err != nil {
		t.Fatalf("write bad level: %v", err)
	}

	out, err := run(t, "--root", root, "validate", "level1.toml", "bad.toml")
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out, "ok   level1.toml") || !strings.Contains(out, "FAIL bad.toml") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, `path="p2.toml"`) {
		t.Fatalf("failure should name p2.toml:\n%s", out)
	}
}

func TestNewWritesTemplates(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()

	if _, err := run(t, "--root", root, "new", "gameobject", "objects/go.toml"); err != nil {
		t.Fatalf("new gameobject: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "objects", "go.toml")); err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if _, err := run(t, "--root", root, "new", "gameobject", "objects/go.toml"); err == nil {
		t.Fatalf("expected exists error without --force")
	}
	if _, err := run(t, "--root", root, "new", "--force", "level", "objects/go.toml"); err != nil {
		t.Fatalf("new --force: %v", err)
	}
	out, err := run(t, "--root", root, "new", "level", "levels/intro")
	if err != nil {
		t.Fatalf("new level: %v", err)
	}
	if !strings.Contains(out, "levels/intro.toml") {
		t.Fatalf("expected .toml extension to be added: %s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "levels", "intro.toml")); err != nil {
		t.Fatalf("level template not written: %v", err)
	}
}

func TestSaveWritesCanonicalCopy(t *testing.T) {
	testlog.Start(t)
	root := scenarioRoot(t)
	dest := t.TempDir()

	out, err := run(t, "--root", root, "save", "--out", dest, "level1.toml")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(out, "saved level1 (2 game objects)") {
		t.Fatalf("unexpected output: %s", out)
	}
	for _, name := range []string{"level1", "gameobject1", "gameobject2"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("expected %s in output root: %v", name, err)
		}
	}

	fs, err := storage.NewOS(dest)
	if err != nil {
		t.Fatalf("os fs: %v", err)
	}
	_, objects, err := resolver.New(fs, asset.GLTFDecoder{}, resolver.Config{}).LoadLevelDescriptions("level1")
	if err != nil {
		t.Fatalf("reload saved level: %v", err)
	}
	if len(objects) != 2 || objects[1].Mesh == nil || objects[1].Mesh.Path != "mesh2.bin" {
		t.Fatalf("unexpected saved objects: %+v", objects)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	testlog.Start(t)
	fs, err := storage.NewOS(scenarioRoot(t))
	if err != nil {
		t.Fatalf("os fs: %v", err)
	}
	s := server.Appear("scenectl-test", "127.0.0.1:0", nil, resolver.New(fs, asset.GLTFDecoder{}, resolver.Config{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := serve(ctx, s); err != nil {
		t.Fatalf("serve: %v", err)
	}
}
