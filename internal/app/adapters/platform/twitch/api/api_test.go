package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/pkg/logger"
)

func testSession(ts *httptest.Server) *Session {
	cfg := &config.Config{API: config.API{ClientID: "someclientid"}}
	s := NewSession(logger.NopLogger{}, cfg, ts.Client())
	s.krakenURL = ts.URL + "/kraken/"
	s.usherURL = ts.URL + "/usher/"
	s.oldAPIURL = ts.URL + "/api/"
	s.statusURL = ts.URL + "/status"
	return s
}

func TestRequestHeaders(t *testing.T) {
	var gotAccept, gotClientID, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotClientID = r.Header.Get("Client-ID")
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"type":"user","name":"someuser","logo":"","_id":21,"display_name":"SomeUser","bio":"hi"}`)
	}))
	defer ts.Close()

	s := testSession(ts)
	s.SetToken("sometoken")
	user, err := s.GetUser("someuser")
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.twitchtv.v3+json", gotAccept)
	assert.Equal(t, "someclientid", gotClientID)
	assert.Equal(t, "OAuth sometoken", gotAuth)
	assert.Equal(t, "someuser", user.Name)
	assert.Equal(t, int64(21), user.ID)
}

func TestGetChannelCached(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"name":"somechannel","status":"playing","display_name":"SomeChannel","_id":42}`)
	}))
	defer ts.Close()

	s := testSession(ts)
	for i := 0; i < 3; i++ {
		channel, err := s.GetChannel("somechannel")
		require.NoError(t, err)
		assert.Equal(t, "somechannel", channel.Name)
	}
	assert.Equal(t, int32(1), calls.Load(), "lookups should be served from the cache")
}

func TestGetStreamOffline(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stream":null}`)
	}))
	defer ts.Close()

	stream, err := testSession(ts).GetStream("somechannel")
	require.NoError(t, err)
	assert.Nil(t, stream)
}

func TestGetStreams(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "somegame", r.URL.Query().Get("game"))
		assert.Equal(t, "a,b", r.URL.Query().Get("channel"))
		fmt.Fprint(w, `{"streams":[{"game":"somegame","viewers":124,"_id":1,"channel":{"name":"a"}}]}`)
	}))
	defer ts.Close()

	streams, err := testSession(ts).GetStreams("somegame", []string{"a", "b"}, 25, 0)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, 124, streams[0].Viewers)
	assert.Equal(t, "a", streams[0].Channel.Name)
}

func TestFollowedStreamsNeedsAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"streams":[]}`)
	}))
	defer ts.Close()

	_, err := testSession(ts).FollowedStreams(25, 0)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestFetchLoginUserSetsCurrentUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"type":"user","name":"loginuser","_id":7,"display_name":"LoginUser"}`)
	}))
	defer ts.Close()

	s := testSession(ts)
	_, err := s.CurrentUser()
	assert.ErrorIs(t, err, ErrNotAuthorized)

	s.SetToken("sometoken")
	user, err := s.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "loginuser", user.Name)
}

func TestAPIErrorMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"Not Found","status":404,"message":"channel does not exist"}`)
	}))
	defer ts.Close()

	_, err := testSession(ts).GetChannel("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel does not exist")
}

func TestTopGames(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"top":[{"game":{"name":"somegame","_id":3},"viewers":1000,"channels":12}]}`)
	}))
	defer ts.Close()

	games, err := testSession(ts).TopGames(10, 0)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "somegame", games[0].Name)
	assert.Equal(t, 1000, games[0].Viewers)
	assert.Equal(t, 12, games[0].Channels)
}
