package forgesvc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"curseapi/config"
	"curseapi/curse"

	"go.uber.org/zap"
)

// errNotFound marks a 404 from the service; callers translate it into the
// provider-level "not found" result.
var errNotFound = errors.New("not found")

// Client is a curse.Provider backed by the ForgeSVC REST API.
type Client struct {
	BaseURL    string
	APIKey     string
	UserAgent  string
	HTTPClient *http.Client
}

var _ curse.Provider = (*Client)(nil)

// NewClient creates a new ForgeSVC API client using the provided configuration.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("USERAGENT is not configured")
	}

	return &Client{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		HTTPClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}, nil
}

func (c *Client) makeRequest(path string, queryParams url.Values, target any, isBinary bool) (*http.Response, error) {
	fullURL := c.BaseURL + path
	if isBinary {
		// For binary downloads, the 'path' is expected to be the full URL already
		fullURL = path
	}

	req, err := http.NewRequest(http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if queryParams != nil {
		req.URL.RawQuery = queryParams.Encode()
	}

	req.Header.Set("User-Agent", c.UserAgent)
	if c.APIKey != "" {
		req.Header.Set("x-api-key", c.APIKey)
	}
	if !isBinary {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "application/octet-stream")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return resp, errNotFound
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		resp.Body.Close()
		return resp, fmt.Errorf("%w: %s", curse.ErrUnavailable, fullURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return resp, fmt.Errorf("api request failed: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	if target != nil && !isBinary {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return resp, fmt.Errorf("failed to decode json response: %w", err)
		}
	}

	return resp, nil // For binary, return the response so the caller can handle the body
}

// getText fetches an endpoint that responds with a raw string body.
func (c *Client) getText(path string) (string, bool, error) {
	resp, err := c.makeRequest(path, nil, nil, false)
	if errors.Is(err, errNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read response body: %w", err)
	}
	return string(body), true, nil
}

// Project implements curse.Provider.
func (c *Client) Project(id int) (*curse.Project, error) {
	var project svcProject
	_, err := c.makeRequest(fmt.Sprintf("/api/v2/addon/%d", id), nil, &project, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return project.toProject(), nil
}

// ProjectByPath implements curse.Provider. ForgeSVC cannot look projects up
// by site path.
func (c *Client) ProjectByPath(string) (*curse.Project, error) {
	return nil, nil
}

// SearchProjects implements curse.Provider.
func (c *Client) SearchProjects(query curse.SearchQuery) ([]*curse.Project, error) {
	params := url.Values{}
	params.Set("gameId", strconv.Itoa(query.GameID))
	params.Set("sectionId", strconv.Itoa(query.CategorySectionID))
	params.Set("categoryId", strconv.Itoa(query.CategoryID))
	params.Set("gameVersion", query.GameVersion)
	params.Set("index", strconv.Itoa(query.PageIndex))
	params.Set("pageSize", strconv.Itoa(query.PageSize))
	params.Set("searchFilter", query.Filter)
	params.Set("sort", strconv.Itoa(int(query.Sort)))

	var projects []svcProject
	_, err := c.makeRequest("/api/v2/addon/search", params, &projects, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}

	results := make([]*curse.Project, 0, len(projects))
	for _, p := range projects {
		results = append(results, p.toProject())
	}
	return results, nil
}

// ProjectDescription implements curse.Provider.
func (c *Client) ProjectDescription(id int) (string, bool, error) {
	description, ok, err := c.getText(fmt.Sprintf("/api/v2/addon/%d/description", id))
	if err != nil {
		return "", false, fmt.Errorf("failed to get description of project %d: %w", id, err)
	}
	return description, ok, nil
}

// Files implements curse.Provider.
func (c *Client) Files(projectID int) ([]*curse.File, error) {
	var files []svcFile
	_, err := c.makeRequest(fmt.Sprintf("/api/v2/addon/%d/files", projectID), nil, &files, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get files of project %d: %w", projectID, err)
	}

	results := make([]*curse.File, 0, len(files))
	for _, f := range files {
		results = append(results, f.toFile(projectID))
	}
	return results, nil
}

// File implements curse.Provider.
func (c *Client) File(projectID, fileID int) (*curse.File, error) {
	var file svcFile
	_, err := c.makeRequest(fmt.Sprintf("/api/v2/addon/%d/file/%d", projectID, fileID), nil, &file, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file %d of project %d: %w", fileID, projectID, err)
	}
	return file.toFile(projectID), nil
}

// FileChangelog implements curse.Provider. A file without a changelog yields
// an empty string.
func (c *Client) FileChangelog(projectID, fileID int) (string, bool, error) {
	changelog, ok, err := c.getText(fmt.Sprintf("/api/v2/addon/%d/file/%d/changelog", projectID, fileID))
	if err != nil {
		return "", false, fmt.Errorf("failed to get changelog of file %d: %w", fileID, err)
	}
	return changelog, ok, nil
}

// FileDownloadURL implements curse.Provider.
func (c *Client) FileDownloadURL(projectID, fileID int) (string, bool, error) {
	downloadURL, ok, err := c.getText(fmt.Sprintf("/api/v2/addon/%d/file/%d/download-url", projectID, fileID))
	if err != nil {
		return "", false, fmt.Errorf("failed to get download URL of file %d: %w", fileID, err)
	}
	return downloadURL, ok, nil
}

// Games implements curse.Provider.
func (c *Client) Games() ([]*curse.Game, error) {
	var games []svcGame
	_, err := c.makeRequest("/api/v2/game", nil, &games, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	results := make([]*curse.Game, 0, len(games))
	for _, g := range games {
		results = append(results, g.toGame())
	}
	return results, nil
}

// Game implements curse.Provider.
func (c *Client) Game(id int) (*curse.Game, error) {
	var game svcGame
	_, err := c.makeRequest(fmt.Sprintf("/api/v2/game/%d", id), nil, &game, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game.toGame(), nil
}

// GameVersions implements curse.Provider. ForgeSVC does not expose game
// versions; a provider that does must be registered alongside this one.
func (c *Client) GameVersions(int) ([]*curse.GameVersion, error) {
	return nil, nil
}

// GameVersion implements curse.Provider.
func (c *Client) GameVersion(int, string) (*curse.GameVersion, error) {
	return nil, nil
}

// Categories implements curse.Provider.
func (c *Client) Categories() ([]*curse.Category, error) {
	var categories []svcCategory
	_, err := c.makeRequest("/api/v2/category", nil, &categories, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return toCategories(categories), nil
}

// CategoriesIn implements curse.Provider.
func (c *Client) CategoriesIn(sectionID int) ([]*curse.Category, error) {
	var categories []svcCategory
	_, err := c.makeRequest(fmt.Sprintf("/api/v2/category/section/%d", sectionID), nil, &categories, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get categories of section %d: %w", sectionID, err)
	}
	return toCategories(categories), nil
}

// Category implements curse.Provider.
func (c *Client) Category(id int) (*curse.Category, error) {
	var category svcCategory
	_, err := c.makeRequest(fmt.Sprintf("/api/v2/category/%d", id), nil, &category, false)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	converted := category.toCategory()
	return &converted, nil
}

func toCategories(categories []svcCategory) []*curse.Category {
	results := make([]*curse.Category, 0, len(categories))
	for _, c := range categories {
		converted := c.toCategory()
		results = append(results, &converted)
	}
	return results
}

// DownloadFile downloads a file from the given URL and saves it to the
// specified destination path.
func (c *Client) DownloadFile(log *zap.SugaredLogger, destinationPath, downloadURL string) error {
	dir := filepath.Dir(destinationPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Warnw("Target directory for download does not exist, attempting to create", zap.String("directory", dir))
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create target directory '%s': %w", dir, err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check target directory '%s': %w", dir, err)
	}

	resp, err := c.makeRequest(downloadURL, nil, nil, true)
	if err != nil {
		return fmt.Errorf("failed to start download for '%s' from %s: %w", filepath.Base(destinationPath), downloadURL, err)
	}
	defer resp.Body.Close()

	outFile, err := os.Create(destinationPath)
	if err != nil {
		return fmt.Errorf("failed to create file '%s': %w", destinationPath, err)
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, resp.Body)
	if err != nil {
		// Attempt to remove partially downloaded file on error
		os.Remove(destinationPath)
		return fmt.Errorf("failed to write downloaded content to '%s': %w", destinationPath, err)
	}

	return nil
}
