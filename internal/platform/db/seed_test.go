package db

import (
	"strings"
	"testing"
)

func TestEmbeddedTemplateSeedsAreValid(t *testing.T) {
	templates, err := loadTemplateSeeds(templatesYAML)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(templates) == 0 {
		t.Fatal("expected embedded templates")
	}
	employment := map[string]bool{"full_time": true, "part_time": true, "contract": true, "internship": true}
	experience := map[string]bool{"entry": true, "mid": true, "senior": true, "lead": true, "executive": true}
	seen := map[string]bool{}
	for _, tmpl := range templates {
		if seen[tmpl.Name] {
			t.Fatalf("duplicate template name %q", tmpl.Name)
		}
		seen[tmpl.Name] = true
		if !employment[tmpl.EmploymentType] {
			t.Fatalf("template %q has invalid employment type %q", tmpl.Name, tmpl.EmploymentType)
		}
		if !experience[tmpl.ExperienceLevel] {
			t.Fatalf("template %q has invalid experience level %q", tmpl.Name, tmpl.ExperienceLevel)
		}
	}
}

func TestLoadTemplateSeedsRejectsIncomplete(t *testing.T) {
	raw := []byte("templates:\n  - name: Only Name\n")
	if _, err := loadTemplateSeeds(raw); err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("expected required field error, got %v", err)
	}
}

func TestLoadTemplateSeedsDefaultsArrays(t *testing.T) {
	raw := []byte("templates:\n  - name: A\n    title: A\n    department: Ops\n")
	templates, err := loadTemplateSeeds(raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if templates[0].Skills == nil || templates[0].Benefits == nil {
		t.Fatal("expected non-nil skills and benefits")
	}
}
