package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emonshikder007/chat-app/internal/message"
	appErrors "github.com/emonshikder007/chat-app/pkg/errors"
)

func Test_ClientPrivateHistory(t *testing.T) {
	peer := uuid.New()
	history := []message.MessageDTO{
		{ID: uuid.New(), SenderID: peer, Text: "hello"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/messages/"+peer.String(), r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(history)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tkn", nil)
	got, err := client.PrivateHistory(context.Background(), peer)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, history[0].ID, got[0].ID)
}

func Test_ClientSendGroup(t *testing.T) {
	groupID := uuid.New()
	echo := message.MessageDTO{ID: uuid.New(), GroupID: &groupID, Text: "hi"}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/groups/"+groupID.String()+"/send", r.URL.Path)

		var cmd message.SendCommand
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cmd))
		assert.Equal(t, "hi", cmd.Text)

		json.NewEncoder(w).Encode(echo)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tkn", nil)
	got, err := client.SendGroup(context.Background(), groupID, message.SendCommand{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, echo.ID, got.ID)
}

func Test_ClientErrorDecoding(t *testing.T) {
	t.Run("structured error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{
				"code":    "PERMISSION_DENIED",
				"message": "only the group admin can do that",
			})
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "tkn", nil)
		err := client.DeleteGroup(context.Background(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, appErrors.CodePermissionDenied, appErrors.CodeOf(err))
		assert.Equal(t, "only the group admin can do that", err.Error())
	})

	t.Run("plain error body falls back on the status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "tkn", nil)
		_, err := client.GroupHistory(context.Background(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
	})
}
