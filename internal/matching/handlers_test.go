// internal/matching/handlers_test.go

package matching

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkme-app/linkme-backend/internal/auth"
	"github.com/linkme-app/linkme-backend/internal/common/utils"
)

func recommendationsRequest(t *testing.T, handler *Handler, userID int64, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/match/recommendations"+query, nil)
	if userID > 0 {
		req = req.WithContext(auth.ContextWithUserID(req.Context(), userID))
	}
	rr := httptest.NewRecorder()
	handler.GetRecommendations(rr, req)
	return rr
}

func TestGetRecommendationsHandler(t *testing.T) {
	repo := newFakeRepository()
	addUser(repo, 1, "requester")
	addUser(repo, 2, "alice")
	addUser(repo, 3, "bob")

	handler := NewHandler(NewEngine(repo, nil))

	t.Run("returns the ranked page", func(t *testing.T) {
		rr := recommendationsRequest(t, handler, 1, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var body struct {
			Success bool                    `json:"success"`
			Data    []*RecommendationRecord `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.Len(t, body.Data, 2)
		assert.Equal(t, int64(2), body.Data[0].UserID)
		assert.Equal(t, "alice", body.Data[0].Nickname)
		assert.Equal(t, 80, body.Data[0].MatchScore)
	})

	t.Run("rejects missing auth context", func(t *testing.T) {
		rr := recommendationsRequest(t, handler, 0, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage paging params fall back to defaults", func(t *testing.T) {
		rr := recommendationsRequest(t, handler, 1, "?page=banana&size=-1")
		require.Equal(t, http.StatusOK, rr.Code)

		var body utils.Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
	})

	t.Run("storage failure is a server error", func(t *testing.T) {
		broken := newFakeRepository()
		addUser(broken, 1, "requester")
		addUser(broken, 2, "candidate")
		broken.poolErr = assert.AnError

		rr := recommendationsRequest(t, NewHandler(NewEngine(broken, nil)), 1, "")
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
