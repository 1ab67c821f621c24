package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeEvents(t *testing.T) {
	tests := map[string]string{
		"array": `[{"id":1,"action":"linode_boot","status":"finished","created":"2024-01-01T00:00:01"}]`,
		"page":  `{"data":[{"id":1,"action":"linode_boot","status":"finished","created":"2024-01-01T00:00:01"}],"page":1,"pages":1,"results":1}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			list, err := decodeEvents([]byte(input))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(list) != 1 || list[0].ID != 1 {
				t.Errorf("unexpected events %+v", list)
			}
		})
	}

	if _, err := decodeEvents([]byte("nope")); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestRenderCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	input := `[
		{"id":2,"action":"linode_reboot","status":"scheduled","created":"2024-01-01T00:00:02","entity":null},
		{"id":1,"action":"__unknown__","status":"started","created":"2024-01-01T00:00:01"}
	]`
	if err := os.WriteFile(path, []byte(input), 0o600); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"render", "--file", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := "2\t\n1\t__unknown__\n"
	if out.String() != want {
		t.Errorf("unexpected output %q, want %q", out.String(), want)
	}
}
