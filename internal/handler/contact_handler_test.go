package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/service"
)

func newContactTestServer(svc *MockContactService) *echo.Echo {
	e := newTestEcho()
	h := NewContactHandler(svc)
	e.GET("/contactinfo", h.List)
	e.GET("/contactinfo/:id", h.Get)
	e.POST("/contactinfo", h.Create)
	e.PUT("/contactinfo", h.Update)
	e.DELETE("/contactinfo/:id", h.Delete)
	return e
}

func TestContactHandler_List(t *testing.T) {
	categoryID := int64(4)

	tests := []struct {
		name       string
		target     string
		filter     *model.ContactFilter
		wantStatus int
	}{
		{name: "all", target: "/contactinfo", filter: &model.ContactFilter{}, wantStatus: http.StatusOK},
		{
			name:       "by category with expand",
			target:     "/contactinfo?categoryId=4&expand=category",
			filter:     &model.ContactFilter{CategoryID: &categoryID, ExpandCategory: true},
			wantStatus: http.StatusOK,
		},
		{name: "unknown expand ignored", target: "/contactinfo?expand=owner", filter: &model.ContactFilter{}, wantStatus: http.StatusOK},
		{name: "invalid category id", target: "/contactinfo?categoryId=x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockContactService)
			if tt.filter != nil {
				svc.On("List", mock.Anything, *tt.filter).Return(service.DefaultContacts(), nil)
			}

			rec := doJSON(newContactTestServer(svc), http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var contacts []model.Contact
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
				assert.Len(t, contacts, 3)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestContactHandler_Get(t *testing.T) {
	t.Run("expanded", func(t *testing.T) {
		svc := new(MockContactService)
		contact := service.DefaultContacts()[1]
		contact.Category = &model.Category{ID: 4, Name: "School"}
		svc.On("Get", mock.Anything, int64(2), true).Return(&contact, nil)

		rec := doJSON(newContactTestServer(svc), http.MethodGet, "/contactinfo/2?expand=category", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "2005-02-02", body["birthDate"])
		assert.Equal(t, "School", body["category"].(map[string]interface{})["name"])
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockContactService)
		svc.On("Get", mock.Anything, int64(404), false).Return(nil, errors.ErrContactNotFound)

		rec := doJSON(newContactTestServer(svc), http.MethodGet, "/contactinfo/404", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "CONTACT_NOT_FOUND", decodeError(t, rec).Code)
	})
}

func TestContactHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockContactService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"name":"Dorota","email":"dorota@example.com","birthDate":"1990-06-15","categoryId":2}`,
			setupMock: func(m *MockContactService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Contact) bool {
					return c.Email == "dorota@example.com" &&
						c.CategoryID == 2 &&
						c.BirthDate != nil && c.BirthDate.Time().Equal(time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC))
				})).Return(&model.Contact{ID: 4, Email: "dorota@example.com", CategoryID: 2}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing email",
			body:       `{"name":"Dorota","categoryId":2}`,
			setupMock:  func(m *MockContactService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "missing category",
			body:       `{"email":"dorota@example.com"}`,
			setupMock:  func(m *MockContactService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "bad birth date",
			body:       `{"email":"dorota@example.com","birthDate":"15/06/1990","categoryId":2}`,
			setupMock:  func(m *MockContactService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_BODY",
		},
		{
			name: "unknown category",
			body: `{"email":"dorota@example.com","categoryId":99}`,
			setupMock: func(m *MockContactService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.ErrForeignKeyViolation)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "FOREIGN_KEY_VIOLATION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockContactService)
			tt.setupMock(svc)

			rec := doJSON(newContactTestServer(svc), http.MethodPost, "/contactinfo", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestContactHandler_Update(t *testing.T) {
	t.Run("requires id", func(t *testing.T) {
		svc := new(MockContactService)

		rec := doJSON(newContactTestServer(svc), http.MethodPut, "/contactinfo", `{"email":"a@b.c","categoryId":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(MockContactService)
		svc.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Contact) bool { return c.ID == 77 })).
			Return(nil, errors.ErrContactNotFound)

		rec := doJSON(newContactTestServer(svc), http.MethodPut, "/contactinfo", `{"id":77,"email":"a@b.c","categoryId":1}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("success", func(t *testing.T) {
		svc := new(MockContactService)
		updated := &model.Contact{ID: 1, Email: "new@company.com", CategoryID: 5}
		svc.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Contact) bool {
			return c.ID == 1 && c.CategoryID == 5
		})).Return(updated, nil)

		rec := doJSON(newContactTestServer(svc), http.MethodPut, "/contactinfo", `{"id":1,"email":"new@company.com","categoryId":5}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"email":"new@company.com"`)
	})
}

func TestContactHandler_Delete(t *testing.T) {
	svc := new(MockContactService)
	svc.On("Delete", mock.Anything, int64(3)).Return(nil)
	svc.On("Delete", mock.Anything, int64(9)).Return(errors.ErrContactNotFound)
	e := newContactTestServer(svc)

	assert.Equal(t, http.StatusOK, doJSON(e, http.MethodDelete, "/contactinfo/3", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(e, http.MethodDelete, "/contactinfo/9", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(e, http.MethodDelete, "/contactinfo/-1", "").Code)
	svc.AssertExpectations(t)
}
