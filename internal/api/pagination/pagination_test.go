package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"artmarket/internal/domain/works"
	"artmarket/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", target, nil)
	return c, w
}

func TestColumns(t *testing.T) {
	cols, err := Columns(&works.Art{})
	require.NoError(t, err)
	assert.Equal(t, "id", cols["id"])
	assert.Equal(t, "asset_type", cols["assetType"])
	assert.NotContains(t, cols, "collections")

	cols, err = Columns(&works.Feature{})
	require.NoError(t, err)
	assert.Equal(t, "collection_id", cols["collectionId"])
}

func TestParse(t *testing.T) {
	cols := map[string]string{"id": "id", "name": "name"}
	limits := Limits{DefaultSize: 20, MaxSize: 50}

	tests := []struct {
		name   string
		target string
		want   repository.Page
		err    bool
	}{
		{name: "defaults", target: "/x", want: repository.Page{Size: 20}},
		{name: "explicit", target: "/x?page=2&size=5", want: repository.Page{Number: 2, Size: 5}},
		{name: "garbage falls back", target: "/x?page=abc&size=-3", want: repository.Page{Size: 20}},
		{name: "size capped", target: "/x?size=500", want: repository.Page{Size: 50}},
		{
			name:   "huge page clamped",
			target: "/x?page=4611686018427387904&size=2",
			want:   repository.Page{Number: math.MaxInt / 2, Size: 2},
		},
		{
			name:   "sort",
			target: "/x?sort=name,desc&sort=id",
			want: repository.Page{Size: 20, Sort: []repository.Order{
				{Column: "name", Desc: true}, {Column: "id"},
			}},
		},
		{name: "unknown sort", target: "/x?sort=nope,asc", err: true},
		{name: "bad direction", target: "/x?sort=name,sideways", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(tt.target)
			got, err := Parse(c, cols, limits)
			if tt.err {
				assert.ErrorIs(t, err, ErrBadSort)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Offset(), 0)
		})
	}
}

func TestWriteHeaders(t *testing.T) {
	c, w := testContext("/api/arts?page=1&size=2&sort=id,desc")
	WriteHeaders(c, repository.Page{Number: 1, Size: 2}, 5)

	assert.Equal(t, "5", w.Header().Get(HeaderTotalCount))
	link := w.Header().Get(HeaderLink)
	assert.Contains(t, link, `</api/arts?page=2&size=2&sort=id%2Cdesc>; rel="next"`)
	assert.Contains(t, link, `</api/arts?page=0&size=2&sort=id%2Cdesc>; rel="prev"`)
	assert.Contains(t, link, `</api/arts?page=2&size=2&sort=id%2Cdesc>; rel="last"`)
	assert.Contains(t, link, `rel="first"`)
}

func TestWriteHeadersEmpty(t *testing.T) {
	c, w := testContext("/api/arts")
	WriteHeaders(c, repository.Page{Size: 20}, 0)

	assert.Equal(t, "0", w.Header().Get(HeaderTotalCount))
	link := w.Header().Get(HeaderLink)
	assert.NotContains(t, link, `rel="next"`)
	assert.NotContains(t, link, `rel="prev"`)
}
