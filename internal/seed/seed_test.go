// ABOUTME: Tests for seed pack parsing, validation, and idempotent application
// ABOUTME: Applies a pack twice and expects no duplicates

package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/officehq/office-gateway/internal/store"
)

const samplePack = `
[[employees]]
name = "Ada"
role = "Engineer"
personality = "pragmatic, direct"
expertise = ["go", "distributed systems"]
llm_provider = "anthropic"
llm_model = "claude-3-5-sonnet"

[[employees]]
name = "Bea"
role = "Designer"
personality = "visual thinker"
expertise = ["ux"]
llm_provider = "openai"
llm_model = "gpt-4o"

[[meetings]]
title = "Weekly Sync"
description = "Status and blockers"
employees = ["Ada", "Bea"]
`

func writePack(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func createTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_ParsesPack(t *testing.T) {
	pack, err := Load(writePack(t, samplePack))
	require.NoError(t, err)

	require.Len(t, pack.Employees, 2)
	assert.Equal(t, "Ada", pack.Employees[0].Name)
	assert.Equal(t, []string{"go", "distributed systems"}, pack.Employees[0].Expertise)
	require.Len(t, pack.Meetings, 1)
	assert.Equal(t, []string{"Ada", "Bea"}, pack.Meetings[0].Employees)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unsupported provider",
			content: `
[[employees]]
name = "Ada"
role = "Engineer"
llm_provider = "cohere"
llm_model = "m"
`,
		},
		{
			name: "meeting references unknown employee",
			content: `
[[employees]]
name = "Ada"
role = "Engineer"
llm_provider = "openai"
llm_model = "m"

[[meetings]]
title = "Sync"
employees = ["Ada", "Ghost"]
`,
		},
		{
			name: "meeting with one employee",
			content: `
[[employees]]
name = "Ada"
role = "Engineer"
llm_provider = "openai"
llm_model = "m"

[[meetings]]
title = "Solo"
employees = ["Ada"]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writePack(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	st := createTestStore(t)
	ctx := context.Background()

	pack, err := Load(writePack(t, samplePack))
	require.NoError(t, err)

	require.NoError(t, Apply(ctx, pack, st, nil))
	require.NoError(t, Apply(ctx, pack, st, nil))

	employees, err := st.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 2)

	meetings, err := st.ListMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Len(t, meetings[0].EmployeeIDs, 2)
}
