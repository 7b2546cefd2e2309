package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rsilveira/licoes/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRunQuerySendsConstraintsAndMapsResponse(t *testing.T) {
	var gotPath string
	var gotReq queryRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(queryResponse{
			Documents: []documentDTO{
				{
					ID:        "licao1",
					Title:     "Lição 1",
					Category:  "Kids",
					CreatedAt: "2026-05-01T10:00:00Z",
				},
				{
					ID:          "licao2",
					Title:       "Lição Premium",
					Category:    "Juniores",
					IsPremium:   true,
					FavoritedBy: []string{"user123"},
					CreatedAt:   "2026-04-01T10:00:00Z",
				},
			},
			NextCursor: "licao2",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	client.SetToken("token-abc")

	constraints := []domain.Constraint{
		domain.Equals("categoria", "Kids"),
		domain.OrderBy("createdAt", domain.SortDesc),
	}

	page, err := client.RunQuery(context.Background(), domain.KindLessons, constraints, "", 6)
	require.NoError(t, err)

	require.Equal(t, "/v1/collections/licoes:query", gotPath)
	require.Equal(t, 6, gotReq.Limit)
	require.Empty(t, gotReq.StartAfter)
	require.Len(t, gotReq.Filters, 1)
	require.Equal(t, "categoria", gotReq.Filters[0].Field)
	require.Equal(t, "==", gotReq.Filters[0].Op)
	require.NotNil(t, gotReq.OrderBy)
	require.Equal(t, "createdAt", gotReq.OrderBy.Field)
	require.Equal(t, "desc", gotReq.OrderBy.Direction)

	require.Len(t, page.Items, 2)
	require.Equal(t, domain.Cursor("licao2"), page.Cursor)

	first, ok := page.Items[0].(*domain.Lesson)
	require.True(t, ok)
	require.Equal(t, "licao1", first.ID)
	require.Equal(t, domain.CategoryKids, first.Category)
	require.False(t, first.Premium)

	second := page.Items[1]
	require.True(t, second.IsPremium())
	require.Equal(t, []string{"user123"}, second.GetFavoritedBy())
}

func TestRunQueryRangeConstraints(t *testing.T) {
	var gotReq queryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(queryResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", nil)

	constraints := []domain.Constraint{
		domain.RangeStart("titulo", "Davi"),
		domain.RangeEnd("titulo", "Davi"),
		domain.OrderBy("createdAt", domain.SortDesc),
	}

	_, err := client.RunQuery(context.Background(), domain.KindLessons, constraints, "", 6)
	require.NoError(t, err)

	require.Len(t, gotReq.Filters, 2)
	require.Equal(t, ">=", gotReq.Filters[0].Op)
	require.Equal(t, "<=", gotReq.Filters[1].Op)
}

func TestRunQueryActivitiesCollection(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(queryResponse{
			Documents: []documentDTO{{ID: "d1", Title: "Arca", Category: "Desenhos para Colorir"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", nil)

	page, err := client.RunQuery(context.Background(), domain.KindActivities, nil, "", 6)
	require.NoError(t, err)

	require.Equal(t, "/v1/collections/atividades:query", gotPath)
	require.Len(t, page.Items, 1)
	_, ok := page.Items[0].(*domain.Activity)
	require.True(t, ok)
	require.Equal(t, domain.KindActivities, page.Items[0].GetKind())
}

func TestGetDocumentNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", nil)

	_, err := client.GetDocument(context.Background(), domain.KindLessons, "missing")
	require.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestAuthErrorsMapped(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		client := NewClient(server.URL, "k", nil)
		_, err := client.RunQuery(context.Background(), domain.KindLessons, nil, "", 6)
		require.ErrorIs(t, err, domain.ErrAuthFailed)

		server.Close()
	}
}

func TestErrorEnvelopeSurfacedInMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		var resp errorResponse
		resp.Error.Code = 500
		resp.Error.Message = "index not ready"
		resp.Error.Status = "UNAVAILABLE"
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", nil)

	_, err := client.RunQuery(context.Background(), domain.KindLessons, nil, "", 6)
	require.ErrorContains(t, err, "index not ready")
}

func TestNetworkErrorMapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, "k", nil)

	_, err := client.RunQuery(context.Background(), domain.KindLessons, nil, "", 6)
	require.ErrorIs(t, err, domain.ErrBackendUnreachable)
}

func TestAddFavoriteSendsArrayUnion(t *testing.T) {
	var gotPath, gotMethod string
	var gotReq updateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", nil)

	require.NoError(t, client.AddFavorite(context.Background(), domain.KindLessons, "licao2", "user123"))

	require.Equal(t, "/v1/collections/licoes/licao2:update", gotPath)
	require.Equal(t, http.MethodPatch, gotMethod)
	require.Equal(t, "favoritadoPor", gotReq.Field)
	require.Equal(t, []string{"user123"}, gotReq.ArrayUnion)
	require.Empty(t, gotReq.ArrayRemove)
}

func TestRemoveFavoriteSendsArrayRemove(t *testing.T) {
	var gotReq updateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", nil)

	require.NoError(t, client.RemoveFavorite(context.Background(), domain.KindLessons, "licao2", "user123"))

	require.Equal(t, []string{"user123"}, gotReq.ArrayRemove)
	require.Empty(t, gotReq.ArrayUnion)
}

func TestCountStripsOrdering(t *testing.T) {
	var gotReq countRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/collections/licoes:count", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(countResponse{Count: 17})
	}))
	defer server.Close()

	client := NewClient(server.URL, "k", nil)

	constraints := []domain.Constraint{domain.Equals("isPremium", true)}
	total, err := client.Count(context.Background(), domain.KindLessons, constraints)
	require.NoError(t, err)

	require.Equal(t, 17, total)
	require.Len(t, gotReq.Filters, 1)
}

func TestMapDocumentBadTimestampFallsBackToZero(t *testing.T) {
	item := mapDocument(documentDTO{ID: "a", Title: "T", CreatedAt: "not-a-time"}, domain.KindLessons)

	require.True(t, item.GetCreatedAt().IsZero())
}
