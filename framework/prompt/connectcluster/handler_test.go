package connectcluster_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/km-arc/sfx-di/framework/prompt"
	"github.com/km-arc/sfx-di/framework/prompt/connectcluster"
	"github.com/km-arc/sfx-di/framework/routing"
)

func newServer(t *testing.T) (*routing.Router, *prompt.Session) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := prompt.NewSession()
	r := routing.New(logger)
	connectcluster.NewHandler(connectcluster.NewPrompt(s, nil, logger)).Routes(r)
	return r, s
}

func post(r http.Handler, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Connect(t *testing.T) {
	r, s := newServer(t)

	rec := post(r, "/prompt/connect-cluster", "application/json", `{"url":"https://Cluster:19080/x"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
	var body struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.URL != "https://cluster:19080" {
		t.Errorf("url: got %q", body.Data.URL)
	}
	if !s.Settled() {
		t.Error("session should be finished")
	}
}

func TestHandler_ConnectLocalForm(t *testing.T) {
	r, _ := newServer(t)

	rec := post(r, "/prompt/connect-cluster", "application/x-www-form-urlencoded", "local=on")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"url":"http://localhost:19080"`) {
		t.Errorf("body: %s", rec.Body)
	}
}

func TestHandler_ConnectValidation(t *testing.T) {
	r, s := newServer(t)

	rec := post(r, "/prompt/connect-cluster", "application/json", `{"url":"ftp://cluster"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", rec.Code)
	}
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if msgs := body.Errors["url"]; len(msgs) != 1 || !strings.Contains(msgs[0], "Only HTTP and HTTPS") {
		t.Errorf("errors: %v", body.Errors)
	}
	if s.Settled() {
		t.Error("session should stay open")
	}
}

func TestHandler_ConnectBadBody(t *testing.T) {
	r, _ := newServer(t)

	rec := post(r, "/prompt/connect-cluster", "application/json", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestHandler_ExitThenConnect(t *testing.T) {
	r, s := newServer(t)

	if rec := post(r, "/prompt/exit", "", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("exit status: got %d", rec.Code)
	}
	if !s.Settled() {
		t.Fatal("exit should close the session")
	}

	rec := post(r, "/prompt/connect-cluster", "application/json", `{"url":"http://cluster"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("status after exit: got %d", rec.Code)
	}
}

func TestHandler_ConnectBodyTooLarge(t *testing.T) {
	r, s := newServer(t)

	body := `{"url":"` + strings.Repeat("x", 2<<20) + `"}`
	rec := post(r, "/prompt/connect-cluster", "application/json", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
	if s.Settled() {
		t.Error("session should stay open")
	}
}
