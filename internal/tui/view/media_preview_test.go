package view

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestChafaArgs(t *testing.T) {
	got := chafaArgs(60, 0)
	want := []string{"--size", "60x14", "--view-size", "60x14", "--align", "top,center", "--format", "symbols", "-"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected chafa args: %v", got)
	}
}

func TestMediaPreviewer_RequiresChafa(t *testing.T) {
	p := NewMediaPreviewer(nil)
	p.LookPath = func(string) (string, error) { return "", errors.New("not found") }

	_, err := p.Render(context.Background(), "https://cdn.example.com/a.jpg", 60)
	if err == nil || !strings.Contains(err.Error(), "chafa is not installed") {
		t.Fatalf("expected missing chafa error, got %v", err)
	}
}

func TestMediaPreviewer_RejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewMediaPreviewer(srv.Client())
	p.LookPath = func(string) (string, error) { return "/usr/bin/chafa", nil }

	_, err := p.Render(context.Background(), srv.URL+"/a.jpg", 60)
	if err == nil || !strings.Contains(err.Error(), "status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}
