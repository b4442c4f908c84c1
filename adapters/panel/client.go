// Package panel talks to the Pterodactyl-style management panel REST API.
package panel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"stopwatchdog/domain"
	"stopwatchdog/helpers"
	"stopwatchdog/interfaces"
	"stopwatchdog/service"
)

const acceptHeader = "Application/vnd.pterodactyl.v1+json"

// Credentials selects which panel keys are used.
//
// ApplicationKey, when set, is used for reads (name, state) through the application API.
// Power signals always go through the client API with the server's own key from ClientKeys,
// or SharedClientKey when the server has none. Without an ApplicationKey reads use the
// client API and the same client key.
type Credentials struct {
	ApplicationKey  string
	SharedClientKey string
	ClientKeys      map[string]string
}

// ClientKey returns the client API key for serverID, or "" if none is configured.
func (c Credentials) ClientKey(serverID string) string {
	if k := c.ClientKeys[serverID]; k != "" {
		return k
	}
	return c.SharedClientKey
}

// NewClient creates an interfaces.Panel against baseURL (e.g. https://panel.example.com, no trailing slash).
// Panics on empty baseURL or nil http client; per-request timeouts come from httpClient.
func NewClient(baseURL string, creds Credentials, httpClient *http.Client) interfaces.Panel {
	return &client{
		baseURL: strings.TrimRight(helpers.StrPanic(baseURL, "adapters.panel.client.go: baseURL is required"), "/"),
		creds:   creds,
		http:    helpers.NilPanic(httpClient, "adapters.panel.client.go: http client is required"),
	}
}

type client struct {
	baseURL string
	creds   Credentials
	http    *http.Client
}

// serverResponse is the shape of GET .../servers/{id}.
type serverResponse struct {
	Attributes struct {
		Name string `json:"name"`
	} `json:"attributes"`
}

// resourcesResponse is the shape of GET .../servers/{id}/resources.
type resourcesResponse struct {
	Attributes struct {
		CurrentState string `json:"current_state"`
	} `json:"attributes"`
}

type powerRequest struct {
	Signal string `json:"signal"`
}

func (c *client) GetState(ctx context.Context, serverID string) (domain.State, error) {
	var resp resourcesResponse
	if err := c.readJSON(ctx, serverID, "/resources", &resp); err != nil {
		return "", err
	}
	return domain.ParseState(resp.Attributes.CurrentState), nil
}

func (c *client) GetName(ctx context.Context, serverID string) (string, error) {
	var resp serverResponse
	if err := c.readJSON(ctx, serverID, "", &resp); err != nil {
		return "", err
	}
	return resp.Attributes.Name, nil
}

func (c *client) ForceKill(ctx context.Context, serverID string) error {
	key := c.creds.ClientKey(serverID)
	if key == "" {
		return service.NewTransientAPIError("no client key for server "+serverID, nil)
	}
	body, err := json.Marshal(powerRequest{Signal: "kill"})
	if err != nil {
		return service.NewInternalServerError("marshal power request", err)
	}
	reqURL := c.baseURL + "/api/client/servers/" + url.PathEscape(serverID) + "/power"
	_, err = c.do(ctx, http.MethodPost, reqURL, key, body)
	return err
}

// readJSON performs a GET on the application API when an application key is configured,
// otherwise on the client API, and decodes the response into out.
func (c *client) readJSON(ctx context.Context, serverID, suffix string, out any) error {
	api, key := "application", c.creds.ApplicationKey
	if key == "" {
		api, key = "client", c.creds.ClientKey(serverID)
	}
	if key == "" {
		return service.NewTransientAPIError("no credential for server "+serverID, nil)
	}

	reqURL := c.baseURL + "/api/" + api + "/servers/" + url.PathEscape(serverID) + suffix
	body, err := c.do(ctx, http.MethodGet, reqURL, key, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return service.NewTransientAPIError("panel returned malformed JSON",
			service.NewAPIError(http.MethodGet, reqURL, http.StatusOK, body, err))
	}
	return nil
}

// do sends one request and returns the response body on 2xx. Anything else is a
// transient_api_error carrying the method, URL, status and body.
func (c *client) do(ctx context.Context, method, reqURL, key string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, service.NewTransientAPIError("build panel request", service.NewAPIError(method, reqURL, 0, nil, err))
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, service.NewTransientAPIError("panel request failed", service.NewAPIError(method, reqURL, 0, nil, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, service.NewTransientAPIError("read panel response", service.NewAPIError(method, reqURL, resp.StatusCode, nil, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, service.NewTransientAPIError(fmt.Sprintf("panel returned %d", resp.StatusCode),
			service.NewAPIError(method, reqURL, resp.StatusCode, body, nil))
	}
	return body, nil
}
