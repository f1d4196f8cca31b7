package courier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type received struct {
	kind      string
	recipient string
	caption   string
	filename  string
	fileBody  []byte
	text      string
}

func recordingServer(t *testing.T, status int) (*httptest.Server, *[]received) {
	t.Helper()
	var calls []received
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call received
		if r.Header.Get("Content-Type") == "application/json" {
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			call = received{kind: payload["kind"], recipient: payload["recipient"], text: payload["text"]}
		} else {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			call = received{
				kind:      r.FormValue("kind"),
				recipient: r.FormValue("recipient"),
				caption:   r.FormValue("caption"),
			}
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			call.filename = header.Filename
			call.fileBody, err = io.ReadAll(file)
			require.NoError(t, err)
		}
		calls = append(calls, call)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0640))
	return path
}

func TestSendText(t *testing.T) {
	server, calls := recordingServer(t, http.StatusOK)
	webhook := NewWebhook(server.URL)

	require.NoError(t, webhook.SendText(context.Background(), "operator", "olá"))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "text", call.kind)
	assert.Equal(t, "operator", call.recipient)
	assert.Equal(t, "olá", call.text)
}

func TestSendDocumentUploadsFile(t *testing.T) {
	server, calls := recordingServer(t, http.StatusOK)
	webhook := NewWebhook(server.URL)
	path := writeTempFile(t, "interview.pdf", []byte("%PDF fake"))

	require.NoError(t, webhook.SendDocument(context.Background(), "42", path, "Entrevista"))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "document", call.kind)
	assert.Equal(t, "42", call.recipient)
	assert.Equal(t, "Entrevista", call.caption)
	assert.Equal(t, "interview.pdf", call.filename)
	assert.Equal(t, []byte("%PDF fake"), call.fileBody)
}

func TestSendPhotoUploadsFile(t *testing.T) {
	server, calls := recordingServer(t, http.StatusOK)
	webhook := NewWebhook(server.URL)
	path := writeTempFile(t, "home.jpg", []byte("jpegbytes"))

	require.NoError(t, webhook.SendPhoto(context.Background(), "op", path, ""))

	require.Len(t, *calls, 1)
	assert.Equal(t, "photo", (*calls)[0].kind)
	assert.Equal(t, "home.jpg", (*calls)[0].filename)
}

func TestSendFailsOnServerError(t *testing.T) {
	server, _ := recordingServer(t, http.StatusBadGateway)
	webhook := NewWebhook(server.URL)

	err := webhook.SendText(context.Background(), "op", "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendDocumentMissingFile(t *testing.T) {
	server, calls := recordingServer(t, http.StatusOK)
	webhook := NewWebhook(server.URL)

	err := webhook.SendDocument(context.Background(), "42", "/nonexistent/file.pdf", "")
	assert.Error(t, err)
	assert.Empty(t, *calls)
}
