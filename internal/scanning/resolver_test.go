package scanning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveIPLiteralPassesThrough(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "127.0.0.1", Resolve(ctx, "127.0.0.1"))
	assert.Equal(t, "192.0.2.55", Resolve(ctx, "192.0.2.55"))
	assert.Equal(t, "::1", Resolve(ctx, "::1"))
}

func TestResolveLocalhost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resolved := Resolve(ctx, "localhost")
	assert.NotEqual(t, ResolvedUnknown, resolved)
	assert.Contains(t, []string{"127.0.0.1", "::1"}, resolved)
}

func TestResolveFailureReturnsSentinel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assert.Equal(t, ResolvedUnknown, Resolve(ctx, "definitely-not-real.invalid"))
}
