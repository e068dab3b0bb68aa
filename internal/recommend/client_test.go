package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumacaq/Megamoda-store/internal/models"
)

var testProduct = &models.Product{
	Name:        "Vestido Elegante",
	Description: "Vestido elegante perfecto",
	Category:    "vestidos",
}

var testCatalog = []*models.Product{
	testProduct,
	{Name: "Zapatos Elegantes", Description: "Zapatos elegantes para completar tu look", Category: "calzado"},
}

func TestRecommend_Success(t *testing.T) {
	var gotReq chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": " ¡Excelente elección! 👌 Te sugerimos Zapatos Elegantes. "}},
			},
		})
	}))
	defer server.Close()

	rec := NewOpenAIRecommender("test-key", server.URL)
	suggestion := rec.Recommend(context.Background(), testProduct, testCatalog)

	assert.Equal(t, "¡Excelente elección! 👌 Te sugerimos Zapatos Elegantes.", suggestion)
	assert.Equal(t, "gpt-4", gotReq.Model)
	assert.Equal(t, 0.7, gotReq.Temperature)
	assert.Equal(t, 150, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	// The selected product must never recommend itself.
	assert.Contains(t, gotReq.Messages[0].Content, "Zapatos Elegantes")
	assert.NotContains(t, gotReq.Messages[0].Content, "- Vestido Elegante (vestidos)")
}

func TestRecommend_ProviderErrorBecomesFallbackText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit"}}`))
	}))
	defer server.Close()

	rec := NewOpenAIRecommender("test-key", server.URL)
	suggestion := rec.Recommend(context.Background(), testProduct, testCatalog)

	assert.Contains(t, suggestion, "⚠️ Error al generar recomendación")
}

func TestRecommend_EmptyChoicesBecomesFallbackText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	rec := NewOpenAIRecommender("test-key", server.URL)
	suggestion := rec.Recommend(context.Background(), testProduct, testCatalog)

	assert.Contains(t, suggestion, "⚠️ Error al generar recomendación")
}

func TestNoopRecommender_SuggestsNothing(t *testing.T) {
	assert.Empty(t, NoopRecommender{}.Recommend(context.Background(), testProduct, testCatalog))
}
