package shell

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/victor23k/shush/pkg/edit"
	"github.com/victor23k/shush/pkg/must"
	"github.com/victor23k/shush/pkg/testutil"
)

func TestLoadConfig(t *testing.T) {
	dir := testutil.TempDir(t)
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		must.WriteFile(path, content)
		return path
	}

	tests := []struct {
		name    string
		path    string
		want    Config
		wantErr bool
	}{
		{"no path", "", Config{Prompt: edit.DefaultPrompt}, false},
		{"missing file", filepath.Join(dir, "nope.yaml"), Config{Prompt: edit.DefaultPrompt}, false},
		{"empty file", write("empty.yaml", ""), Config{Prompt: edit.DefaultPrompt}, false},
		{"full file",
			write("full.yaml", "prompt: '$ '\nhistory: /tmp/h.bolt\n"),
			Config{Prompt: "$ ", History: "/tmp/h.bolt"}, false},
		{"partial file",
			write("partial.yaml", "history: h.bolt\n"),
			Config{Prompt: edit.DefaultPrompt, History: "h.bolt"}, false},
		{"unknown key",
			write("unknown.yaml", "colour: red\n"),
			Config{Prompt: edit.DefaultPrompt}, true},
		{"bad yaml",
			write("bad.yaml", "prompt: [\n"),
			Config{Prompt: edit.DefaultPrompt}, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := LoadConfig(test.path)
			if (err != nil) != test.wantErr {
				t.Errorf("LoadConfig -> error %v, want error: %v", err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("LoadConfig (-want +got):\n%s", diff)
			}
		})
	}
}
