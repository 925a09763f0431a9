package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

type Artifact struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_in_bytes"`
	Expired   bool   `json:"expired"`
}

type artifactsResponse struct {
	TotalCount int        `json:"total_count"`
	Artifacts  []Artifact `json:"artifacts"`
}

// ListRunArtifacts returns the artifacts uploaded by a workflow run.
func (c *Client) ListRunArtifacts(runID int64) ([]Artifact, error) {
	var resp artifactsResponse
	err := c.Get(fmt.Sprintf("actions/runs/%d/artifacts?per_page=100", runID), &resp)
	if err != nil {
		return nil, fmt.Errorf("list artifacts for run %d: %w", runID, err)
	}
	return resp.Artifacts, nil
}

// FindReportArtifact picks the report artifact from a run. With a name
// given it must match exactly; otherwise the first artifact whose name
// contains "report" wins.
func FindReportArtifact(artifacts []Artifact, name string) (Artifact, error) {
	for _, a := range artifacts {
		if a.Expired {
			continue
		}
		if name != "" {
			if a.Name == name {
				return a, nil
			}
			continue
		}
		if strings.Contains(strings.ToLower(a.Name), "report") {
			return a, nil
		}
	}
	if name != "" {
		return Artifact{}, fmt.Errorf("no artifact named %q in run", name)
	}
	return Artifact{}, fmt.Errorf("no report artifact found in run (use -artifact NAME)")
}

// DownloadArtifact downloads an artifact's zip archive.
// GitHub returns a 302 redirect to a short-lived archive URL.
func (c *Client) DownloadArtifact(ctx context.Context, artifactID int64) (io.ReadCloser, error) {
	// Use a separate HTTP client that doesn't follow redirects
	// automatically: the redirect target is unauthenticated and must
	// not receive the API auth header.
	httpClient, err := ghAPI.DefaultHTTPClient()
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	url := fmt.Sprintf("https://api.github.com/%s", c.repoPath(fmt.Sprintf("actions/artifacts/%d/zip", artifactID)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build artifact request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("artifact request failed: %w", err)
	}

	if resp.StatusCode == http.StatusFound || resp.StatusCode == http.StatusTemporaryRedirect {
		location := resp.Header.Get("Location")
		resp.Body.Close()
		if location == "" {
			return nil, fmt.Errorf("redirect with no Location header")
		}
		redirectReq, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, fmt.Errorf("create redirect request: %w", err)
		}
		resp, err = http.DefaultClient.Do(redirectReq)
		if err != nil {
			return nil, fmt.Errorf("follow redirect: %w", err)
		}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d downloading artifact", resp.StatusCode)
	}

	return resp.Body, nil
}
