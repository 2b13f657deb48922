package service

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"timesketch/internal/models"
)

func TestTemplateService_Export(t *testing.T) {
	repo := &mockTemplateRepo{templates: []models.SearchTemplate{
		{
			Name:        "Suspicious logins",
			QueryString: `event_identifier:4625`,
			Labels:      []string{"supported_os:Windows", "remote_template"},
		},
		{
			Name:     "Shell history",
			QueryDSL: `{"query": {"match_all": {}}}`,
			Labels:   []string{"supported_os:Linux", "supported_os:Darwin"},
		},
	}}
	svc := NewTemplateService(repo)

	var buf bytes.Buffer
	if err := svc.Export(context.Background(), &buf); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	var out []templateExport
	if err := yaml.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("exported %d templates, want 2", len(out))
	}
	if out[0].Name != "Suspicious logins" || !reflect.DeepEqual(out[0].SupportedOS, []string{"Windows"}) {
		t.Fatalf("unexpected first template: %+v", out[0])
	}
	// The remote_template label must not leak into supported_os.
	if !reflect.DeepEqual(out[1].SupportedOS, []string{"Linux", "Darwin"}) {
		t.Fatalf("supported_os = %v", out[1].SupportedOS)
	}
}

func TestTemplateService_Import(t *testing.T) {
	repo := &mockTemplateRepo{templates: []models.SearchTemplate{
		{Name: "Already here", QueryString: "old"},
	}}
	svc := NewTemplateService(repo)

	doc := `
- name: Already here
  query_string: replaced
- name: Suspicious logins
  query_string: event_identifier:4625
  supported_os:
    - Windows
`
	if err := svc.Import(context.Background(), strings.NewReader(doc)); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	// The existing template is skipped, only the new one gets created.
	if len(repo.created) != 1 {
		t.Fatalf("created %d templates, want 1", len(repo.created))
	}
	got := repo.created[0]
	if got.Name != "Suspicious logins" || got.QueryString != "event_identifier:4625" {
		t.Fatalf("unexpected template: %+v", got)
	}
	wantLabels := []string{"supported_os:Windows", "remote_template"}
	if !reflect.DeepEqual(got.Labels, wantLabels) {
		t.Fatalf("labels = %v, want %v", got.Labels, wantLabels)
	}
}

func TestTemplateService_Import_BadYAML(t *testing.T) {
	svc := NewTemplateService(&mockTemplateRepo{})
	if err := svc.Import(context.Background(), strings.NewReader("{not yaml")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestTemplateService_RoundTrip(t *testing.T) {
	src := &mockTemplateRepo{templates: []models.SearchTemplate{
		{Name: "One", QueryString: "q1", Labels: []string{"supported_os:Windows"}},
		{Name: "Two", QueryString: "q2"},
	}}

	var buf bytes.Buffer
	if err := NewTemplateService(src).Export(context.Background(), &buf); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	dst := &mockTemplateRepo{}
	if err := NewTemplateService(dst).Import(context.Background(), &buf); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if len(dst.created) != 2 {
		t.Fatalf("created %d templates, want 2", len(dst.created))
	}
	if dst.created[0].QueryString != "q1" || dst.created[1].QueryString != "q2" {
		t.Fatalf("query strings lost in round trip: %+v", dst.created)
	}
}
