// ABOUTME: TOML seed packs for bootstrapping a fresh office
// ABOUTME: Apply is idempotent, keyed by employee name and meeting title

package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/officehq/office-gateway/internal/office"
	"github.com/officehq/office-gateway/internal/store"
)

// Pack is a parsed seed file: a starter roster and, optionally, meetings
// convening it. Meetings reference employees by name, not id, so packs
// stay portable across databases.
type Pack struct {
	Employees []Employee `toml:"employees"`
	Meetings  []Meeting  `toml:"meetings"`
}

// Employee is one seeded roster entry.
type Employee struct {
	Name         string   `toml:"name"`
	Role         string   `toml:"role"`
	Personality  string   `toml:"personality"`
	Expertise    []string `toml:"expertise"`
	LLMProvider  string   `toml:"llm_provider"`
	LLMModel     string   `toml:"llm_model"`
	SystemPrompt string   `toml:"system_prompt"`
}

// Meeting is one seeded meeting, referencing employees by name.
type Meeting struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Employees   []string `toml:"employees"`
}

// Load parses and validates a seed pack from path.
func Load(path string) (*Pack, error) {
	var pack Pack
	if _, err := toml.DecodeFile(path, &pack); err != nil {
		return nil, fmt.Errorf("parsing seed pack: %w", err)
	}
	if err := pack.validate(); err != nil {
		return nil, fmt.Errorf("validating seed pack: %w", err)
	}
	return &pack, nil
}

func (p *Pack) validate() error {
	for i, emp := range p.Employees {
		if emp.Name == "" || emp.Role == "" {
			return fmt.Errorf("employee %d: name and role are required", i)
		}
		switch emp.LLMProvider {
		case office.ProviderOpenAI, office.ProviderAnthropic:
		default:
			return fmt.Errorf("employee %q: unsupported llm_provider %q", emp.Name, emp.LLMProvider)
		}
	}

	names := lo.Map(p.Employees, func(e Employee, _ int) string { return e.Name })
	for _, mtg := range p.Meetings {
		if mtg.Title == "" {
			return fmt.Errorf("meeting title is required")
		}
		if len(mtg.Employees) < 2 {
			return fmt.Errorf("meeting %q: at least two employees required", mtg.Title)
		}
		for _, name := range mtg.Employees {
			if !lo.Contains(names, name) {
				return fmt.Errorf("meeting %q: unknown employee %q", mtg.Title, name)
			}
		}
	}
	return nil
}

// Apply inserts the pack's employees and meetings that do not exist yet.
// Existing entries (matched by employee name / meeting title) are left
// alone, so running Apply repeatedly is safe.
func Apply(ctx context.Context, pack *Pack, st store.Store, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "seed")

	existing, err := st.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("listing employees: %w", err)
	}
	idByName := make(map[string]string, len(existing))
	for _, emp := range existing {
		idByName[emp.Name] = emp.ID
	}

	created := 0
	for _, e := range pack.Employees {
		if _, ok := idByName[e.Name]; ok {
			continue
		}
		emp := &office.Employee{
			ID:           uuid.New().String(),
			Name:         e.Name,
			Role:         e.Role,
			Personality:  e.Personality,
			Expertise:    append([]string{}, e.Expertise...),
			LLMProvider:  e.LLMProvider,
			LLMModel:     e.LLMModel,
			SystemPrompt: e.SystemPrompt,
			CreatedAt:    time.Now().UTC(),
			IsActive:     true,
		}
		if err := st.CreateEmployee(ctx, emp); err != nil {
			return fmt.Errorf("seeding employee %q: %w", e.Name, err)
		}
		idByName[e.Name] = emp.ID
		created++
	}

	meetings, err := st.ListMeetings(ctx)
	if err != nil {
		return fmt.Errorf("listing meetings: %w", err)
	}
	haveTitle := make(map[string]bool, len(meetings))
	for _, m := range meetings {
		haveTitle[m.Title] = true
	}

	seededMeetings := 0
	for _, m := range pack.Meetings {
		if haveTitle[m.Title] {
			continue
		}
		ids := lo.Map(m.Employees, func(name string, _ int) string {
			return idByName[name]
		})
		mtg := &office.Meeting{
			ID:          uuid.New().String(),
			Title:       m.Title,
			Description: m.Description,
			EmployeeIDs: ids,
			CreatedAt:   time.Now().UTC(),
			IsActive:    true,
		}
		if err := st.CreateMeeting(ctx, mtg); err != nil {
			return fmt.Errorf("seeding meeting %q: %w", m.Title, err)
		}
		seededMeetings++
	}

	logger.Info("seed pack applied",
		"employees_created", created,
		"meetings_created", seededMeetings)
	return nil
}
