package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/sambabib/version-autopsy/pkg/logger"
)

const (
	defaultPipRegistryURL = "https://pypi.org/pypi"
	defaultPipTimeout     = 5 * time.Second
)

// PipRegistry resolves versions against the PyPI JSON API.
type PipRegistry struct {
	RegistryURL string
	HTTPClient  *http.Client
}

// NewPipRegistry creates a PipRegistry pointed at pypi.org.
func NewPipRegistry() *PipRegistry {
	return &PipRegistry{
		RegistryURL: defaultPipRegistryURL,
		HTTPClient:  &http.Client{Timeout: defaultPipTimeout},
	}
}

// PipPackageInfo is the part of the PyPI /json response we read.
type PipPackageInfo struct {
	Info     PipInfo                         `json:"info"`
	Releases map[string][]PipReleaseFileInfo `json:"releases"`
}

// PipInfo contains metadata about the package.
type PipInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"` // latest overall version
	Yanked       bool   `json:"yanked"`
	YankedReason string `json:"yanked_reason"`
	Summary      string `json:"summary"`
}

// PipReleaseFileInfo contains information about a specific file in a release.
type PipReleaseFileInfo struct {
	Filename     string    `json:"filename"`
	Packagetype  string    `json:"packagetype"`
	UploadTime   time.Time `json:"upload_time"`
	Yanked       bool      `json:"yanked"`
	YankedReason string    `json:"yanked_reason"`
}

// LatestVersion returns the version PyPI reports in info.version. When that
// is empty or yanked, the highest stable non-yanked release is used instead.
func (r *PipRegistry) LatestVersion(ctx context.Context, name string) (string, error) {
	pkgInfo, err := r.fetch(ctx, name)
	if err != nil {
		return "", err
	}

	if pkgInfo.Info.Version != "" && !pkgInfo.Info.Yanked {
		return pkgInfo.Info.Version, nil
	}
	if latest := latestStablePipVersion(pkgInfo.Releases); latest != "" {
		logger.Debugf("Pip: info.version unusable for %s, using release %s", name, latest)
		return latest, nil
	}
	return "", fmt.Errorf("%s: no releases published", name)
}

func (r *PipRegistry) fetch(ctx context.Context, name string) (*PipPackageInfo, error) {
	base := r.RegistryURL
	if base == "" {
		base = defaultPipRegistryURL
	}
	registryURL := fmt.Sprintf("%s/%s/json", base, url.PathEscape(name))
	logger.Debugf("Pip: Fetching from PyPI: %s", registryURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, registryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", name, err)
	}

	client := r.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultPipTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s from PyPI: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", name, ErrPackageNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %s for %s", resp.Status, name)
	}

	var pkgInfo PipPackageInfo
	if err := json.NewDecoder(resp.Body).Decode(&pkgInfo); err != nil {
		return nil, fmt.Errorf("error decoding PyPI response for %s: %w", name, err)
	}
	return &pkgInfo, nil
}

// latestStablePipVersion picks the greatest release that parses as semver,
// has no prerelease tag and still has at least one file that isn't yanked.
func latestStablePipVersion(releases map[string][]PipReleaseFileInfo) string {
	var latest *semver.Version
	var latestStr string

	for vStr, files := range releases {
		usable := false
		for _, f := range files {
			if !f.Yanked {
				usable = true
				break
			}
		}
		if !usable {
			logger.Debugf("Pip: Skipping yanked/empty release %s", vStr)
			continue
		}

		v, err := semver.NewVersion(vStr)
		if err != nil {
			logger.Debugf("Pip: Could not parse version '%s': %v", vStr, err)
			continue
		}
		if v.Prerelease() != "" {
			continue
		}
		if latest == nil || v.GreaterThan(latest) {
			latest = v
			latestStr = vStr
		}
	}
	return latestStr
}
