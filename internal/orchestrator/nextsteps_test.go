package orchestrator

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/daydemir/herbie/internal/registry"
	"github.com/daydemir/herbie/internal/types"
)

func TestNextSteps(t *testing.T) {
	reg := registry.Default()

	tests := []struct {
		framework types.FrameworkID
		remote    string
		want      []string
	}{
		{
			framework: types.FrameworkReact,
			want:      []string{"cd shop", "npm start", "open http://localhost:3000", "edit src/App.js"},
		},
		{
			framework: types.FrameworkDjango,
			remote:    "https://github.com/octocat/shop",
			want: []string{
				"cd shop",
				"python manage.py runserver",
				"open http://localhost:8000",
				"edit shop/settings.py",
				"view the repository at https://github.com/octocat/shop",
			},
		},
		{
			framework: types.FrameworkFlutter,
			want: []string{
				"cd shop",
				"flutter run",
				"connect a device or start an emulator before running",
				"edit lib/main.dart",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.framework.String(), func(t *testing.T) {
			desc, ok := reg.Lookup(tt.framework)
			if !ok {
				t.Fatalf("Expected %s in registry", tt.framework)
			}
			got := NextSteps(desc, &ExecutionContext{ProjectName: "shop", RemoteURL: tt.remote})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		".gitignore":              "dist/\n*.tmp\n",
		"main.go":                 "package main\n",
		"pkg/util.go":             "package pkg\n",
		"pkg/.gitignore":          "generated.go\n",
		"pkg/generated.go":        "package pkg\n",
		"dist/app":                "binary",
		"scratch.tmp":             "x",
		".git/HEAD":               "ref: refs/heads/main\n",
		"node_modules/a/index.js": "x",
		"big.bin":                 string(make([]byte, maxUploadSize+1)),
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, tooLarge, err := collectFiles(root)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []string{".gitignore", "main.go", "pkg/.gitignore", "pkg/util.go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(tooLarge, []string{"big.bin"}) {
		t.Errorf("Expected big.bin to be skipped as too large, got %v", tooLarge)
	}
}

func TestCollectFilesMissingRoot(t *testing.T) {
	_, _, err := collectFiles(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("Expected error for missing root")
	}
}
