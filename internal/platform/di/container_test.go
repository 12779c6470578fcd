// internal/platform/di/container_test.go
package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MTalha250/Varzan/internal/adapters/out/memory"
	appcfg "github.com/MTalha250/Varzan/internal/infra/config"
)

func memoryConfig() *appcfg.Config {
	return &appcfg.Config{
		Port:        "8080",
		StoreDriver: appcfg.DriverMemory,
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
	}
}

func TestNewContainer_MemoryDriver(t *testing.T) {
	c, err := NewContainer(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer c.Close(context.Background())

	assert.Nil(t, c.Infra.Firestore)
	assert.Nil(t, c.Infra.Mongo)
	assert.Nil(t, c.MediaUC, "uploads stay disabled without a bucket")
	assert.NotNil(t, c.ProductUC)
	assert.NotNil(t, c.AuthUC)

	srv := httptest.NewServer(c.Router())
	defer srv.Close()

	for _, path := range []string{"/healthz", "/api/product", "/api/category", "/api/testimonial/all", "/metrics"} {
		res, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, path)
	}

	res, err := http.Get(srv.URL + "/api/dashboard")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestNewContainer_RequiresJWTSecret(t *testing.T) {
	cfg := memoryConfig()
	cfg.JWTSecret = ""
	_, err := NewContainerWithRepos(cfg, MemoryRepositories(memory.NewStore()), nil)
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.Error(t, err)
}

func TestRouterDeps_CarriesConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.StripeWebhookSecret = "whsec_x"
	cfg.AllowedOrigins = []string{"https://a.example"}
	c, err := NewContainerWithRepos(cfg, MemoryRepositories(memory.NewStore()), nil)
	require.NoError(t, err)

	deps := c.RouterDeps()
	assert.Equal(t, "whsec_x", deps.StripeWebhookSecret)
	assert.Equal(t, []string{"https://a.example"}, deps.AllowedOrigins)
	assert.Same(t, c.Metrics, deps.Metrics)
}

func TestRedactPath(t *testing.T) {
	assert.Equal(t, "***/sa.json", redactPath(`C:\keys\sa.json`))
	assert.Equal(t, "***/sa.json", redactPath("/etc/keys/sa.json"))
	assert.Equal(t, "***", redactPath("/etc/keys/"))
	assert.Equal(t, "", redactPath(" "))
}
