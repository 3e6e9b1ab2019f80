package catalog_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/aicatalog/pkg/catalogapi"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * End-to-end tests run the real binary in a container and drive it through
 * the catalogapi client.
 */

const (
	testImageName = "aicatalog-test:latest"

	ownerEmail    = "owner@example.com"
	ownerPassword = "Owner-Password-123"
	userPassword  = "User-Password-123"
	sessionSecret = "e2e-session-secret-0123456789abcdef"
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stdout, "skipping end-to-end tests in -short mode")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building catalog Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up catalog Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/catalog/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

type catalogContainer struct {
	testcontainers.Container
	BaseURL string
}

// baseEnv boots with an owner and log-only delivery, so codes end up in the
// container output.
func baseEnv() map[string]string {
	return map[string]string{
		"ENV":                              "test",
		"LOG_LEVEL":                        "info",
		"LOG_FORMAT":                       "json",
		"CATALOG_SESSION_SECRET":           sessionSecret,
		"CATALOG_BOOTSTRAP_OWNER_EMAIL":    ownerEmail,
		"CATALOG_BOOTSTRAP_OWNER_PASSWORD": ownerPassword,
	}
}

// relaxedLimits keeps tests that make many quick requests off the
// production limits.
func relaxedLimits(env map[string]string) map[string]string {
	for _, p := range []string{"STRICT", "MODERATE", "LENIENT"} {
		env["RATELIMIT_"+p+"_REQUESTS"] = "1000"
		env["RATELIMIT_"+p+"_WINDOW_SEC"] = "60"
		env["RATELIMIT_"+p+"_BURST"] = "1000"
	}
	return env
}

func startCatalog(t *testing.T, env map[string]string) *catalogContainer {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &catalogContainer{
		Container: container,
		BaseURL:   fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}
}

// setupCatalog starts the service with relaxed rate limits.
func setupCatalog(t *testing.T) *catalogContainer {
	return startCatalog(t, relaxedLimits(baseEnv()))
}

// setupCatalogWithDefaultRateLimits is for tests that need the limiter to
// actually trip.
func setupCatalogWithDefaultRateLimits(t *testing.T) *catalogContainer {
	return startCatalog(t, baseEnv())
}

func (c *catalogContainer) client() *catalogapi.Client {
	return catalogapi.NewClient(c.BaseURL)
}

func (c *catalogContainer) loginOwner(t *testing.T) *catalogapi.Client {
	t.Helper()
	cl := c.client()
	res, err := cl.Login(t.Context(), catalogapi.LoginRequest{Email: ownerEmail, Password: ownerPassword})
	require.NoError(t, err)
	require.True(t, res.Success)
	return cl
}

// registerApproved signs a user up, has the owner approve them and returns
// their logged-in client.
func (c *catalogContainer) registerApproved(t *testing.T, owner *catalogapi.Client, name, email, role string) *catalogapi.Client {
	t.Helper()
	ctx := t.Context()

	cl := c.client()
	res, err := cl.Register(ctx, catalogapi.RegisterRequest{
		Name:                 name,
		Email:                email,
		Password:             userPassword,
		PasswordConfirmation: userPassword,
		Role:                 role,
	})
	require.NoError(t, err)

	_, err = owner.SetUserStatus(ctx, res.User.ID, "approved")
	require.NoError(t, err)

	_, err = cl.Login(ctx, catalogapi.LoginRequest{Email: email, Password: userPassword})
	require.NoError(t, err)
	return cl
}

var logCodePattern = regexp.MustCompile(`\b(\d{6})\b`)

// lastLoggedCode finds the newest code the log sender wrote for recipient.
func (c *catalogContainer) lastLoggedCode(t *testing.T, recipient string) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		rc, err := c.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		sc := bufio.NewScanner(rc)
		for sc.Scan() {
			var line struct {
				Msg  string `json:"msg"`
				To   string `json:"to"`
				Body string `json:"body"`
			}
			// Docker prefixes multiplexed output with a header; skip to the JSON.
			raw := sc.Bytes()
			if i := bytes.IndexByte(raw, '{'); i >= 0 {
				raw = raw[i:]
			}
			if json.Unmarshal(raw, &line) != nil || line.Msg != "email (log sender)" || line.To != recipient {
				continue
			}
			if m := logCodePattern.FindStringSubmatch(line.Body); m != nil {
				code = m[1]
			}
		}
		return code != ""
	}, 10*time.Second, 200*time.Millisecond, "no code logged for %s", recipient)

	return code
}

func assertHealthy(t *testing.T, health *catalogapi.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
