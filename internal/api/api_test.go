package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/turnherald/internal/api/apierr"
	"github.com/mcoot/turnherald/internal/api/response"
	"github.com/mcoot/turnherald/internal/factory"
	"github.com/mcoot/turnherald/internal/services/blackout"
	"github.com/mcoot/turnherald/internal/testutil"
)

type APISuite struct {
	suite.Suite
	server *httptest.Server
	sink   *testutil.RecordingSink
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	s.sink = testutil.NewRecordingSink()

	app, err := factory.New(factory.Config{
		Logger:      testutil.NopLogger(),
		StorageType: factory.StorageTypeMemory,
		Mapping: map[string]string{
			"alice": "111111111111111111",
		},
		Blackout: blackout.Config{Enabled: false},
		Sink:     s.sink,
	})
	s.Require().NoError(err)

	router := NewRouter(RouterConfig{
		Logger:         testutil.NopLogger(),
		TurnProcessor:  app.TurnProcessor,
		HistoryService: app.HistoryService,
	})
	s.server = httptest.NewServer(router)
}

func (s *APISuite) TearDownTest() {
	s.server.Close()
}

func (s *APISuite) postJSON(path string, body any) *http.Response {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)
	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(payload))
	s.Require().NoError(err)
	return resp
}

func (s *APISuite) decode(resp *http.Response, into any) {
	defer func() { _ = resp.Body.Close() }()
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(into))
}

func (s *APISuite) postTurnEvent(gameID, gameName, userName string, round int) *http.Response {
	return s.postJSON("/api/v1/webhook/turn", map[string]any{
		"gameId":   gameID,
		"gameName": gameName,
		"userName": userName,
		"round":    round,
	})
}

func (s *APISuite) TestWebhookTurnJSON() {
	resp := s.postTurnEvent("g1", "Emerald Coast", "alice", 42)
	s.Equal(http.StatusOK, resp.StatusCode)

	var result response.TurnEventResponse
	s.decode(resp, &result)
	s.True(result.Advanced)
	s.True(result.Notified)

	sent := s.sink.Sent()
	s.Require().Len(sent, 1)
	s.Equal("Emerald Coast", sent[0].GameDisplayName)
	s.Equal("111111111111111111", sent[0].Player.ChatID)
	s.Equal(42, sent[0].RoundNumber)
	s.False(sent[0].IsReminder)
}

func (s *APISuite) TestWebhookTurnFormEncoded() {
	form := url.Values{}
	form.Set("gameName", "Emerald Coast")
	form.Set("userName", "alice")
	form.Set("round", "7")

	resp, err := http.Post(s.server.URL+"/api/v1/webhook/turn",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var result response.TurnEventResponse
	s.decode(resp, &result)
	s.True(result.Advanced)
	s.True(result.Notified)
}

func (s *APISuite) TestWebhookTurnStringRound() {
	// Upstream sometimes sends round as a quoted string
	resp := s.postJSON("/api/v1/webhook/turn", map[string]any{
		"gameName": "Emerald Coast",
		"userName": "alice",
		"round":    "12",
	})
	s.Equal(http.StatusOK, resp.StatusCode)

	var result response.TurnEventResponse
	s.decode(resp, &result)
	s.True(result.Advanced)
}

func (s *APISuite) TestWebhookTurnInvalidEvent() {
	resp := s.postJSON("/api/v1/webhook/turn", map[string]any{
		"gameName": "Emerald Coast",
		"round":    5,
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp apierr.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal(apierr.CodeInvalidEvent, errResp.Error.Code)
}

func (s *APISuite) TestWebhookTurnMalformedJSON() {
	resp, err := http.Post(s.server.URL+"/api/v1/webhook/turn",
		"application/json", strings.NewReader("{not json"))
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp apierr.ErrorResponse
	s.decode(resp, &errResp)
	s.Equal(apierr.CodeInvalidRequest, errResp.Error.Code)
}

func (s *APISuite) TestWebhookTurnDuplicateAbsorbed() {
	resp := s.postTurnEvent("g1", "Emerald Coast", "alice", 42)
	s.Equal(http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = s.postTurnEvent("g1", "Emerald Coast", "alice", 42)
	s.Equal(http.StatusOK, resp.StatusCode)

	var result response.TurnEventResponse
	s.decode(resp, &result)
	s.False(result.Advanced)
	s.False(result.Notified)

	s.Len(s.sink.Sent(), 1)
}

func (s *APISuite) TestListGames() {
	s.postTurnEvent("g1", "Emerald Coast", "alice", 10).Body.Close()
	s.postTurnEvent("g2", "Northern Reach", "bob", 3).Body.Close()

	resp, err := http.Get(s.server.URL + "/api/v1/games")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var list response.ActiveGamesResponse
	s.decode(resp, &list)
	s.Equal(2, list.Count)
	s.Require().Len(list.ActiveGames, 2)

	byID := map[string]response.ActiveGame{}
	for _, g := range list.ActiveGames {
		byID[g.GameID] = g
	}
	s.Equal("alice", byID["g1"].CurrentPlayerID)
	s.Equal(10, byID["g1"].RoundNumber)
	s.NotNil(byID["g1"].LastNotifiedAt)
	s.Equal("Northern Reach", byID["g2"].DisplayName)
}

func (s *APISuite) TestEndGame() {
	s.postTurnEvent("g1", "Emerald Coast", "alice", 10).Body.Close()

	req, err := http.NewRequest(http.MethodDelete, s.server.URL+"/api/v1/games/g1", nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusNoContent, resp.StatusCode)

	listResp, err := http.Get(s.server.URL + "/api/v1/games")
	s.Require().NoError(err)
	var list response.ActiveGamesResponse
	s.decode(listResp, &list)
	s.Equal(0, list.Count)
}

func (s *APISuite) TestGameHistory() {
	s.postTurnEvent("g1", "Emerald Coast", "alice", 10).Body.Close()
	s.postTurnEvent("g1", "Emerald Coast", "bob", 10).Body.Close()
	s.postTurnEvent("g1", "Emerald Coast", "alice", 11).Body.Close()

	resp, err := http.Get(s.server.URL + "/api/v1/games/g1/history")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var hist response.TurnHistoryResponse
	s.decode(resp, &hist)
	s.Equal("g1", hist.GameID)
	s.Require().Len(hist.Records, 2)
	s.Equal("alice", hist.Records[0].PlayerID)
	s.Equal(10, hist.Records[0].RoundNumber)
	s.Equal("bob", hist.Records[1].PlayerID)
}

func (s *APISuite) TestGameHistoryEmpty() {
	resp, err := http.Get(s.server.URL + "/api/v1/games/nope/history")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var hist response.TurnHistoryResponse
	s.decode(resp, &hist)
	s.Empty(hist.Records)
}

func (s *APISuite) TestHealth() {
	resp, err := http.Get(s.server.URL + "/api/v1/health")
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusOK, resp.StatusCode)

	var body map[string]string
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.Equal("ok", body["status"])
}

func (s *APISuite) TestUnknownRouteIs404() {
	resp, err := http.Get(fmt.Sprintf("%s/api/v1/nonsense", s.server.URL))
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
