package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"stencil/internal/domain"
	"stencil/internal/errors"
)

// Client talks to a forge over HTTP.
type Client struct {
	Base  string // e.g. https://gitea.example.com
	Token string
	HTTP  *http.Client
}

// New returns a client for the forge at base. token may be empty; requests
// then go out unauthenticated and the forge decides what that is worth.
func New(base, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: base, Token: token, HTTP: httpClient}
}

type createRepoRequest struct {
	Name    string `json:"name"`
	Private bool   `json:"private"`
}

type repoResponse struct {
	CloneURL string `json:"clone_url"`
	SSHURL   string `json:"ssh_url"`
}

// CreateRepo creates a repository for the authenticated user and returns its
// clone URL (SSH form preferred when the forge offers one).
func (c *Client) CreateRepo(ctx context.Context, name string, private bool) (string, error) {
	var out repoResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/user/repos", createRepoRequest{Name: name, Private: private}, &out)
	if err != nil {
		return "", err
	}
	if out.SSHURL != "" {
		return out.SSHURL, nil
	}
	if out.CloneURL != "" {
		return out.CloneURL, nil
	}
	return "", errors.New(errors.EInternal, "forge returned no clone URL")
}

// RepoExists reports whether owner/name exists on the forge.
func (c *Client) RepoExists(ctx context.Context, owner, name string) (bool, error) {
	path := "/api/v1/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(name)
	err := c.do(ctx, http.MethodGet, path, nil, nil)
	if errors.CodeOf(err) == errNotFoundCode {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type userResponse struct {
	Login string `json:"login"`
}

// CurrentUser returns the login the auth token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var out userResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/user", nil, &out); err != nil {
		return "", err
	}
	if out.Login == "" {
		return "", errors.New(errors.EInternal, "forge returned no login")
	}
	return out.Login, nil
}

// errNotFoundCode is internal to the client; 404 is an answer, not a failure.
const errNotFoundCode errors.Code = "forge_not_found"

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		body = new(bytes.Buffer)
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return err
		}
	} else {
		body = new(bytes.Buffer)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrap(errors.ENetwork, fmt.Sprintf("forge %s %s unreachable", method, path), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode/100 == 2:
		if out != nil {
			return json.NewDecoder(resp.Body).Decode(out)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errors.Newf(errNotFoundCode, "forge %s: not found", path)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Newf(errors.EAuthFailed, "forge rejected credentials: %s", resp.Status)
	case resp.StatusCode == http.StatusConflict:
		return errors.Newf(errors.ERemoteExists, "repository already exists on forge")
	default:
		return errors.Newf(errors.EInternal, "forge %s %s: %s", method, path, resp.Status)
	}
}

var _ domain.ForgeClient = (*Client)(nil)
