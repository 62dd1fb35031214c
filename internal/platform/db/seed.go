package db

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"hrflow/internal/platform/config"
)

//go:embed templates.yaml
var templatesYAML []byte

type PasswordHasher func(password string) (string, error)

type templateSeed struct {
	Name             string   `yaml:"name"`
	Title            string   `yaml:"title"`
	Department       string   `yaml:"department"`
	Description      string   `yaml:"description"`
	Requirements     string   `yaml:"requirements"`
	Responsibilities string   `yaml:"responsibilities"`
	EmploymentType   string   `yaml:"employmentType"`
	ExperienceLevel  string   `yaml:"experienceLevel"`
	Skills           []string `yaml:"skills"`
	Benefits         []string `yaml:"benefits"`
}

func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, hash PasswordHasher) error {
	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName, hash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	templates, err := loadTemplateSeeds(templatesYAML)
	if err != nil {
		return err
	}
	if err := ensureJobTemplates(ctx, pool, templates); err != nil {
		return fmt.Errorf("seed job templates: %w", err)
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, email, password, name string, hash PasswordHasher) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hashed, err := hash(password)
	if err != nil {
		return err
	}

	err = pool.QueryRow(ctx, "INSERT INTO users (email, password_hash, name, role) VALUES ($1, $2, $3, 'admin') RETURNING id", email, hashed, name).Scan(&id)
	if err != nil {
		return err
	}
	slog.Info("seeded admin user", "userId", id)
	return nil
}

func loadTemplateSeeds(raw []byte) ([]templateSeed, error) {
	var doc struct {
		Templates []templateSeed `yaml:"templates"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse template seed: %w", err)
	}
	for i, t := range doc.Templates {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Title) == "" || strings.TrimSpace(t.Department) == "" {
			return nil, fmt.Errorf("template seed %d: name, title and department are required", i)
		}
		if t.EmploymentType == "" {
			doc.Templates[i].EmploymentType = "full_time"
		}
		if t.ExperienceLevel == "" {
			doc.Templates[i].ExperienceLevel = "mid"
		}
		if doc.Templates[i].Skills == nil {
			doc.Templates[i].Skills = []string{}
		}
		if doc.Templates[i].Benefits == nil {
			doc.Templates[i].Benefits = []string{}
		}
	}
	return doc.Templates, nil
}

func ensureJobTemplates(ctx context.Context, pool *pgxpool.Pool, templates []templateSeed) error {
	for _, t := range templates {
		_, err := pool.Exec(ctx, `
      INSERT INTO job_templates (name, title, department, description, requirements, responsibilities, employment_type, experience_level, skills, benefits)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
      ON CONFLICT (name) DO NOTHING
    `, t.Name, t.Title, t.Department, t.Description, t.Requirements, t.Responsibilities, t.EmploymentType, t.ExperienceLevel, t.Skills, t.Benefits)
		if err != nil {
			return err
		}
	}
	return nil
}
