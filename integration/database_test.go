//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestAnalyserWithMySQL tests the protein-analyser CLI with a MySQL results store.
func TestAnalyserWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "protein_analyser",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/protein_analyser?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("PROTEIN_ANALYSER_STORE_BACKEND", "mysql")
	_ = os.Setenv("PROTEIN_ANALYSER_STORE_CONN", connStr)
	defer func() { _ = os.Unsetenv("PROTEIN_ANALYSER_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("PROTEIN_ANALYSER_STORE_CONN") }()

	runStoreLifecycle(t)
}

// TestAnalyserWithPostgres tests the protein-analyser CLI with a PostgreSQL results store.
func TestAnalyserWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("PROTEIN_ANALYSER_STORE_BACKEND", "postgresql")
	_ = os.Setenv("PROTEIN_ANALYSER_STORE_CONN", connStr)
	defer func() { _ = os.Unsetenv("PROTEIN_ANALYSER_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("PROTEIN_ANALYSER_STORE_CONN") }()

	runStoreLifecycle(t)
}

// runStoreLifecycle exercises a recorded scoring run plus the results admin
// commands against whichever backend the environment points at.
func runStoreLifecycle(t *testing.T) {
	recordDir := writeRecordFixtures(t)

	// Run results clear
	err := runAnalyserCommand(t, "results", "clear")
	require.NoError(t, err)

	// Score the fixture batch with run recording on
	err = runAnalyserCommand(t, "score", recordDir, "--record", "--limit", "5")
	require.NoError(t, err)

	// Run a recorded leaderboard on the same batch
	err = runAnalyserCommand(t, "leaderboard", recordDir, "--record", "--mode", "bulk")
	require.NoError(t, err)

	// Run results status
	err = runAnalyserCommand(t, "results", "status")
	require.NoError(t, err)

	// Run results clear again to leave the store empty
	err = runAnalyserCommand(t, "results", "clear")
	require.NoError(t, err)
}

func runAnalyserCommand(t *testing.T, args ...string) error {
	binaryPath := getAnalyserBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
