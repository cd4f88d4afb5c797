package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeedHandler_Seed(t *testing.T) {
	t.Run("reports inserted rows", func(t *testing.T) {
		svc := new(MockBootstrapService)
		svc.On("SeedCategories", mock.Anything).Return(6, nil)
		svc.On("SeedContacts", mock.Anything).Return(3, nil)

		e := newTestEcho()
		e.POST("/seed", NewSeedHandler(svc).Seed)
		rec := doJSON(e, http.MethodPost, "/seed", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp SeedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 6, resp.Categories)
		assert.Equal(t, 3, resp.Contacts)
		svc.AssertExpectations(t)
	})

	t.Run("stops on category failure", func(t *testing.T) {
		svc := new(MockBootstrapService)
		svc.On("SeedCategories", mock.Anything).Return(0, assert.AnError)

		e := newTestEcho()
		e.POST("/seed", NewSeedHandler(svc).Seed)
		rec := doJSON(e, http.MethodPost, "/seed", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		svc.AssertNotCalled(t, "SeedContacts", mock.Anything)
	})
}
