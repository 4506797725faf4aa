package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	latest map[string]string
	calls  atomic.Int32
}

func (f *fakeRegistry) LatestVersion(_ context.Context, name string) (string, error) {
	f.calls.Add(1)
	if name == "flaky" {
		return "", errors.New("connection reset")
	}
	v, ok := f.latest[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	return v, nil
}

func TestAnalyzer_AnalyzePackage(t *testing.T) {
	a := NewAnalyzer(&fakeRegistry{latest: map[string]string{"flask": "3.0.3"}})
	ctx := context.Background()

	got := a.AnalyzePackage(ctx, "flask", "2.0.0")
	assert.Equal(t, "flask", got.Package)
	assert.Equal(t, "2.0.0", got.CurrentVersion)
	assert.Equal(t, "3.0.3", got.LatestVersion)
	assert.Equal(t, RiskHigh, got.RiskLevel)
	assert.NotEmpty(t, got.Explanation)

	for _, name := range []string{"ghost", "flaky"} {
		got = a.AnalyzePackage(ctx, name, "1.0.0")
		assert.Equal(t, NotFoundVersion, got.LatestVersion)
		assert.Equal(t, RiskUnknown, got.RiskLevel)
		assert.Equal(t, fmt.Sprintf("Package %q not found on PyPI. Please verify the package name.", name), got.Explanation)
	}
}

func TestAnalyzer_AnalyzeRequirements(t *testing.T) {
	registry := &fakeRegistry{latest: map[string]string{
		"flask":    "3.0.3",
		"requests": "2.32.3",
		"numpy":    "1.21.0",
		"rich":     "13.7.1",
	}}
	a := NewAnalyzer(registry)
	a.Concurrency = 2

	content := "flask==2.0.0\nrequests==2.25.0\n# comment\nnumpy==1.21.0\nrich==13.7.0\nghost==0.1"
	results, err := a.AnalyzeRequirements(context.Background(), content)
	require.NoError(t, err)
	require.Len(t, results, 5)

	wantOrder := []string{"flask", "requests", "numpy", "rich", "ghost"}
	wantLevels := []RiskLevel{RiskHigh, RiskMedium, RiskUpToDate, RiskLow, RiskUnknown}
	for i, r := range results {
		assert.Equal(t, wantOrder[i], r.Package)
		assert.Equal(t, wantLevels[i], r.RiskLevel, r.Package)
	}
}

func TestAnalyzer_AnalyzeRequirements_Ignore(t *testing.T) {
	registry := &fakeRegistry{latest: map[string]string{"flask": "3.0.3"}}
	a := NewAnalyzer(registry)
	a.Ignore = func(name string) bool { return name == "requests" }

	results, err := a.AnalyzeRequirements(context.Background(), "flask==3.0.3\nrequests==2.25.0")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "flask", results[0].Package)
	assert.Equal(t, int32(1), registry.calls.Load())

	_, err = a.AnalyzeRequirements(context.Background(), "requests==2.25.0")
	assert.ErrorIs(t, err, ErrNoPackages)
}

func TestAnalyzer_AnalyzeRequirements_NoPackages(t *testing.T) {
	registry := &fakeRegistry{}
	a := NewAnalyzer(registry)

	_, err := a.AnalyzeRequirements(context.Background(), "# nothing here\nnumpy")
	assert.ErrorIs(t, err, ErrNoPackages)
	assert.Zero(t, registry.calls.Load())
}
