package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/NgocTV11/kids-memories-backend/data"
	"github.com/NgocTV11/kids-memories-backend/internal/config"
	"github.com/NgocTV11/kids-memories-backend/internal/models"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mysqlImage        = "mysql:8.4"
	mysqlRootPassword = "root_test_password"
	mysqlDatabase     = "kids_memories"
)

// TestMySQLIntegration spins up a throwaway MySQL container, applies the
// privileges init script, auto-migrates the schema and runs a small CRUD
// round trip through GORM. Gated behind DB_INTEGRATION=1 so the default
// test run needs no Docker daemon.
func TestMySQLIntegration(t *testing.T) {
	if os.Getenv("DB_INTEGRATION") != "1" {
		t.Skip("set DB_INTEGRATION=1 to run container-backed database tests")
	}

	ctx := context.Background()

	tcpPort, err := nat.NewPort("tcp", "3306")
	require.NoError(t, err)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        mysqlImage,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": mysqlRootPassword,
				"MYSQL_DATABASE":      mysqlDatabase,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(120 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate MySQL container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, tcpPort)
	require.NoError(t, err)

	rootDSN := fmt.Sprintf("root:%s@tcp(%s:%s)/", mysqlRootPassword, host, port.Port())
	rootDB, err := sql.Open("mysql", rootDSN)
	require.NoError(t, err)
	defer rootDB.Close()

	// The listening port can come up before the server accepts credentials
	for i := 0; i < 30; i++ {
		if err = rootDB.Ping(); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "MySQL not ready")

	require.NoError(t, executeSQL(rootDB, data.InitdbMySQLPrivileges))

	cfg := &config.Config{
		DBType:            "mysql",
		DBHost:            host,
		DBPort:            port.Port(),
		DBDatabase:        mysqlDatabase,
		DBUser:            "kids_memories",
		DBPassword:        "kids_memories_password",
		DBConnectionLimit: 5,
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, AutoMigrate(db))

	// CRUD round trip on the migrated schema
	user := models.User{
		Email:       "integration@example.com",
		DisplayName: "Integration",
		Role:        models.RoleFamilyMember,
		Language:    "vi",
	}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEmpty(t, user.ID)

	family := models.Family{Name: "Gia đình", OwnerID: user.ID}
	require.NoError(t, db.Create(&family).Error)

	kid := models.Kid{
		CreatedBy:   user.ID,
		FamilyID:    &family.ID,
		Name:        "Bé An",
		DateOfBirth: time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&kid).Error)

	var loaded models.Kid
	require.NoError(t, db.Preload("Family").First(&loaded, "id = ?", kid.ID).Error)
	assert.Equal(t, "Bé An", loaded.Name)
	require.NotNil(t, loaded.Family)
	assert.Equal(t, "Gia đình", loaded.Family.Name)

	require.NoError(t, db.Delete(&kid).Error)
	var count int64
	db.Model(&models.Kid{}).Where("id = ?", kid.ID).Count(&count)
	assert.Zero(t, count)
}

// executeSQL runs a multi-statement script, one statement at a time; the
// driver does not accept batched statements on a single Exec.
func executeSQL(db *sql.DB, script string) error {
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%w: when executing %q", err, stmt)
		}
	}
	return nil
}
