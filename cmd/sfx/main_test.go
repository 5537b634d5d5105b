package main

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("CLUSTER_LOCAL_URL", "http://localhost:19080")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file=testdata/empty.env"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestConnect_PrintsEndpoint(t *testing.T) {
	out, _, err := run(t, "connect", "HTTPS://Cluster.example.com:19080/Explorer")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if strings.TrimSpace(out) != "https://cluster.example.com:19080" {
		t.Errorf("stdout: %q", out)
	}
}

func TestConnect_Local(t *testing.T) {
	out, _, err := run(t, "connect", "--local")
	if err != nil {
		t.Fatalf("connect --local: %v", err)
	}
	if strings.TrimSpace(out) != "http://localhost:19080" {
		t.Errorf("stdout: %q", out)
	}
}

func TestConnect_RejectsProtocol(t *testing.T) {
	out, stderr, err := run(t, "connect", "ftp://cluster")
	if err == nil {
		t.Fatal("expected an error")
	}
	if out != "" {
		t.Errorf("stdout should be empty, got %q", out)
	}
	if !strings.Contains(stderr, "Only HTTP and HTTPS are supported") {
		t.Errorf("stderr: %q", stderr)
	}
}

func TestConnect_RequiresURL(t *testing.T) {
	if _, _, err := run(t, "connect"); err == nil {
		t.Error("expected an error without url or --local")
	}
}

func TestBindings_ListsKeys(t *testing.T) {
	out, _, err := run(t, "bindings")
	if err != nil {
		t.Fatalf("bindings: %v", err)
	}
	for _, key := range []string{"config", "container", "logger", "prompt.connect-cluster", "router"} {
		if !strings.Contains(out, key+"\n") {
			t.Errorf("missing %q in:\n%s", key, out)
		}
	}
}
