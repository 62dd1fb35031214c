package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "hrflow", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "seed"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestFlags(t *testing.T) {
	cmd := NewRootCommand()

	envFlag := cmd.PersistentFlags().Lookup("env-file")
	require.NotNil(t, envFlag)
	assert.Equal(t, ".env", envFlag.DefValue)

	serve, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)
	require.NotNil(t, serve.Flags().Lookup("addr"))

	migrate, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)
	require.NotNil(t, migrate.Flags().Lookup("dir"))
}

func TestLoadEnvFileMissingIsIgnored(t *testing.T) {
	require.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	require.NoError(t, loadEnvFile(""))
}

func TestLoadEnvFileKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HRFLOW_CLI_TEST_A=from-file\nHRFLOW_CLI_TEST_B=from-file\n"), 0o600))
	t.Setenv("HRFLOW_CLI_TEST_A", "from-env")
	t.Setenv("HRFLOW_CLI_TEST_B", "")
	require.NoError(t, os.Unsetenv("HRFLOW_CLI_TEST_B"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-env", os.Getenv("HRFLOW_CLI_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("HRFLOW_CLI_TEST_B"))
}

func TestMigrateRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"migrate", "--env-file", ""})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestServeValidatesConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hrflow")
	t.Setenv("SESSION_SECRET", "")
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"serve", "--env-file", ""})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}
