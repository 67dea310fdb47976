package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/emonshikder007/chat-app/internal/group"
	"github.com/emonshikder007/chat-app/internal/message"
	"github.com/emonshikder007/chat-app/internal/user"
	"github.com/emonshikder007/chat-app/pkg/errors"
	"github.com/google/uuid"
)

// Client implements API over plain net/http with a bearer token.
type Client struct {
	base  string
	token string
	http  *http.Client
}

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  httpClient,
	}
}

func (c *Client) PrivateHistory(ctx context.Context, peerID uuid.UUID) ([]message.MessageDTO, error) {
	var out []message.MessageDTO
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/messages/%s", peerID), nil, &out)
	return out, err
}

func (c *Client) GroupHistory(ctx context.Context, groupID uuid.UUID) ([]message.MessageDTO, error) {
	var out []message.MessageDTO
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/groups/%s/messages", groupID), nil, &out)
	return out, err
}

func (c *Client) SendPrivate(ctx context.Context, peerID uuid.UUID, cmd message.SendCommand) (*message.MessageDTO, error) {
	out := new(message.MessageDTO)
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/messages/send/%s", peerID), cmd, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendGroup(ctx context.Context, groupID uuid.UUID, cmd message.SendCommand) (*message.MessageDTO, error) {
	out := new(message.MessageDTO)
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/groups/%s/send", groupID), cmd, out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]user.UserDTO, error) {
	var out []user.UserDTO
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

func (c *Client) ListGroups(ctx context.Context) ([]group.GroupDTO, error) {
	var out []group.GroupDTO
	err := c.do(ctx, http.MethodGet, "/api/groups", nil, &out)
	return out, err
}

func (c *Client) CreateGroup(ctx context.Context, name string, members []uuid.UUID) (*group.GroupDTO, error) {
	body := map[string]any{"name": name, "members": members}
	out := new(group.GroupDTO)
	if err := c.do(ctx, http.MethodPost, "/api/groups", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddMember(ctx context.Context, groupID, userID uuid.UUID) (*group.GroupDTO, error) {
	body := map[string]any{"userId": userID}
	out := new(group.GroupDTO)
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/groups/%s/add", groupID), body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) KickMember(ctx context.Context, groupID, memberID uuid.UUID) (*group.GroupDTO, error) {
	body := map[string]any{"memberId": memberID}
	out := new(group.GroupDTO)
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/groups/%s/kick", groupID), body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteGroup(ctx context.Context, groupID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/groups/%s", groupID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Internal("failed to encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return errors.Internal("failed to build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.CodeInternal, "failed to decode response", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	}
	msg := resp.Status
	code := errors.CodeUnknown
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
		code = body.Code
	}
	if code == errors.CodeUnknown || code == "" {
		switch resp.StatusCode {
		case http.StatusBadRequest:
			code = errors.CodeInvalidArgument
		case http.StatusUnauthorized:
			code = errors.CodeUnauthenticated
		case http.StatusForbidden:
			code = errors.CodePermissionDenied
		case http.StatusNotFound:
			code = errors.CodeNotFound
		default:
			code = errors.CodeInternal
		}
	}
	return errors.New(code, msg)
}
