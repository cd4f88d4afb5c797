package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Date
		wantErr  bool
	}{
		{name: "date only", input: `"2000-01-01"`, expected: NewDate(2000, time.January, 1)},
		{name: "rfc3339 is truncated", input: `"2005-02-02T13:45:00Z"`, expected: NewDate(2005, time.February, 2)},
		{name: "empty string", input: `""`, expected: Date{}},
		{name: "garbage", input: `"02/02/2005"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Time().Equal(d.Time()))
		})
	}

	out, err := json.Marshal(NewDate(1995, time.March, 3))
	require.NoError(t, err)
	assert.Equal(t, `"1995-03-03"`, string(out))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2000, 1, 1, 15, 4, 5, 0, time.Local)))
	assert.Equal(t, "2000-01-01", d.String())

	require.NoError(t, d.Scan([]byte("2005-02-02")))
	assert.Equal(t, "2005-02-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestContact_JSONShape(t *testing.T) {
	name := "Amadeusz"
	birth := NewDate(2000, time.January, 1)
	c := Contact{ID: 1, Name: &name, Email: "amadeusz.eusz@company.com", BirthDate: &birth, CategoryID: 1}

	out, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Amadeusz", decoded["name"])
	assert.Equal(t, "2000-01-01", decoded["birthDate"])
	assert.EqualValues(t, 1, decoded["categoryId"])
	assert.Contains(t, decoded, "sureName")
	assert.NotContains(t, decoded, "category")
}

func TestCategory_JSONOmitsParentObject(t *testing.T) {
	parent := Category{ID: 1, Name: "Business"}
	child := Category{ID: 5, Name: "Boss", ParentCategoryID: int64Ptr(1), Parent: &parent}

	out, err := json.Marshal(child)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":5,"name":"Boss","parentCategoryId":1}`, string(out))
	assert.False(t, child.IsRoot())
	assert.True(t, parent.IsRoot())
}

func TestBuildCategoryTree(t *testing.T) {
	categories := []Category{
		{ID: 1, Name: "Business"},
		{ID: 2, Name: "Private"},
		{ID: 3, Name: "Other"},
		{ID: 4, Name: "School", ParentCategoryID: int64Ptr(3)},
		{ID: 5, Name: "Boss", ParentCategoryID: int64Ptr(1)},
		{ID: 6, Name: "Employee", ParentCategoryID: int64Ptr(1)},
		{ID: 7, Name: "Orphan", ParentCategoryID: int64Ptr(99)},
	}

	roots := BuildCategoryTree(categories)

	require.Len(t, roots, 4)
	assert.Equal(t, "Business", roots[0].Name)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "Boss", roots[0].Children[0].Name)
	assert.Equal(t, "Employee", roots[0].Children[1].Name)
	assert.Empty(t, roots[1].Children)
	require.Len(t, roots[2].Children, 1)
	assert.Equal(t, "School", roots[2].Children[0].Name)
	assert.Equal(t, "Orphan", roots[3].Name)
}

func TestUser_Roles(t *testing.T) {
	u := User{Roles: []Role{{ID: 1, Name: "Admin"}, {ID: 2, Name: "Editor"}}}
	assert.Equal(t, []string{"Admin", "Editor"}, u.RoleNames())
	assert.True(t, u.HasRole("Admin"))
	assert.False(t, u.HasRole("admin"))
	assert.Empty(t, (&User{}).RoleNames())
}
