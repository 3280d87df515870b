package httpapi

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcessor struct {
	done chan *discordgo.Interaction
}

func (p *fakeProcessor) Complete(_ context.Context, i *discordgo.Interaction) {
	p.done <- i
}

func setupRouter(t *testing.T) (*gin.Engine, ed25519.PrivateKey, *fakeProcessor, *InteractionHandler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := &fakeProcessor{done: make(chan *discordgo.Interaction, 1)}
	h := NewInteractionHandler(p, logger)
	return NewRouter(pub, h, logger), priv, p, h
}

func signedRequest(key ed25519.PrivateKey, body string) *http.Request {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	sig := ed25519.Sign(key, []byte(ts+body))

	req, _ := http.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(sig))
	req.Header.Set("X-Signature-Timestamp", ts)
	return req
}

func TestInteractions_Ping(t *testing.T) {
	router, key, _, _ := setupRouter(t)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, signedRequest(key, `{"id":"1","type":1}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(discordgo.InteractionResponsePong), resp["type"])
}

func TestInteractions_CommandIsDeferred(t *testing.T) {
	router, key, p, h := setupRouter(t)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, signedRequest(key, `{"id":"42","type":2,"token":"tok","data":{"id":"c1","name":"help"}}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Type int `json:"type"`
		Data struct {
			Flags int `json:"flags"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int(discordgo.InteractionResponseDeferredChannelMessageWithSource), resp.Type)
	assert.Equal(t, int(discordgo.MessageFlagsEphemeral), resp.Data.Flags)

	select {
	case i := <-p.done:
		assert.Equal(t, "42", i.ID)
		assert.Equal(t, "help", i.ApplicationCommandData().Name)
	case <-time.After(time.Second):
		t.Fatal("interaction was not completed")
	}
	h.Wait()
}

func TestInteractions_BadSignature(t *testing.T) {
	router, _, _, _ := setupRouter(t)
	_, otherKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, signedRequest(otherKey, `{"id":"1","type":1}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInteractions_MissingSignature(t *testing.T) {
	router, _, _, _ := setupRouter(t)
	req, _ := http.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(`{"type":1}`))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInteractions_UnsupportedType(t *testing.T) {
	router, key, _, _ := setupRouter(t)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, signedRequest(key, `{"id":"1","type":3,"data":{"custom_id":"x","component_type":2}}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	router, _, _, _ := setupRouter(t)
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestParsePublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	key, err := ParsePublicKey(hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, pub, key)

	_, err = ParsePublicKey("zz")
	assert.Error(t, err)
	_, err = ParsePublicKey("abcd")
	assert.ErrorContains(t, err, "32 bytes")
}
