package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"timesketch/internal/models"
	"timesketch/internal/repository"
)

// Template label conventions: supported_os labels carry an OS name suffix,
// imported templates get flagged so they can be told apart from local ones.
const (
	supportedOSPrefix   = "supported_os:"
	remoteTemplateLabel = "remote_template"
)

// templateExport is the YAML document shape used by import/export.
type templateExport struct {
	Name        string   `yaml:"name"`
	QueryString string   `yaml:"query_string"`
	QueryDSL    string   `yaml:"query_dsl"`
	SupportedOS []string `yaml:"supported_os"`
}

// TemplateService imports and exports search templates as YAML.
type TemplateService struct {
	templates repository.SearchTemplateRepo
}

func NewTemplateService(templates repository.SearchTemplateRepo) *TemplateService {
	return &TemplateService{templates: templates}
}

// Export writes all templates as a YAML list. Only supported_os labels are
// exported, with their prefix stripped.
func (s *TemplateService) Export(ctx context.Context, w io.Writer) error {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return err
	}

	out := make([]templateExport, 0, len(templates))
	for _, tmpl := range templates {
		var supportedOS []string
		for _, label := range tmpl.Labels {
			if strings.HasPrefix(label, supportedOSPrefix) {
				supportedOS = append(supportedOS, strings.TrimPrefix(label, supportedOSPrefix))
			}
		}
		out = append(out, templateExport{
			Name:        tmpl.Name,
			QueryString: tmpl.QueryString,
			QueryDSL:    tmpl.QueryDSL,
			SupportedOS: supportedOS,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}
	return nil
}

// Import reads a YAML list of templates and creates the ones whose names
// are not taken yet. Imported templates get supported_os labels and the
// remote_template flag.
func (s *TemplateService) Import(ctx context.Context, r io.Reader) error {
	var in []templateExport
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("decode templates: %w", err)
	}

	for _, tmpl := range in {
		existing, err := s.templates.GetByName(ctx, tmpl.Name)
		if err != nil {
			return err
		}
		// Skip templates that already exist.
		if existing != nil {
			continue
		}

		labels := make([]string, 0, len(tmpl.SupportedOS)+1)
		for _, os := range tmpl.SupportedOS {
			labels = append(labels, supportedOSPrefix+os)
		}
		labels = append(labels, remoteTemplateLabel)

		if _, err := s.templates.Create(ctx, models.SearchTemplate{
			Name:        tmpl.Name,
			QueryString: tmpl.QueryString,
			QueryDSL:    tmpl.QueryDSL,
			Labels:      labels,
		}); err != nil {
			return err
		}
	}
	return nil
}
