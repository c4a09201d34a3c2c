package pagination

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"artmarket/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/schema"
)

var ErrBadSort = errors.New("unknown sort property")

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
)

// Limits bounds the page size a client may ask for.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// Columns maps the JSON member names of model to their column names. Members
// without a column (associations) are left out.
func Columns(model interface{}) (map[string]string, error) {
	s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	out := make(map[string]string, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		out[name] = f.DBName
	}
	return out, nil
}

// Parse reads page, size and sort from the query string. Unparsable page and
// size values fall back to their defaults and page is clamped so its offset
// fits an int; an unknown sort property is an error.
func Parse(c *gin.Context, columns map[string]string, limits Limits) (repository.Page, error) {
	page := repository.Page{Size: limits.DefaultSize}

	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(c.Query("size")); err == nil && n > 0 {
		page.Size = n
	}
	if limits.MaxSize > 0 && page.Size > limits.MaxSize {
		page.Size = limits.MaxSize
	}
	// Offset must not overflow; past the last row the page is empty anyway.
	if page.Size > 0 && page.Number > math.MaxInt/page.Size {
		page.Number = math.MaxInt / page.Size
	}

	sort, err := ParseSort(c.QueryArray("sort"), columns)
	if err != nil {
		return page, err
	}
	page.Sort = sort
	return page, nil
}

// ParseSort turns "field[,asc|desc]" terms into column orders.
func ParseSort(terms []string, columns map[string]string) ([]repository.Order, error) {
	var out []repository.Order
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		parts := strings.Split(term, ",")
		field := strings.TrimSpace(parts[0])
		column, ok := columns[field]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadSort, field)
		}
		order := repository.Order{Column: column}
		if len(parts) > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[1])) {
			case "asc", "":
			case "desc":
				order.Desc = true
			default:
				return nil, fmt.Errorf("%w: direction %q", ErrBadSort, parts[1])
			}
		}
		out = append(out, order)
	}
	return out, nil
}

// WriteHeaders sets X-Total-Count and the first/prev/next/last Link header.
func WriteHeaders(c *gin.Context, page repository.Page, total int64) {
	c.Header(HeaderTotalCount, strconv.FormatInt(total, 10))

	size := page.Size
	if size < 1 {
		size = 1
	}
	last := 0
	if total > 0 {
		last = int((total - 1) / int64(size))
	}

	var links []string
	if page.Number < last {
		links = append(links, link(c.Request.URL, page.Number+1, size, "next"))
	}
	if page.Number > 0 {
		links = append(links, link(c.Request.URL, page.Number-1, size, "prev"))
	}
	links = append(links,
		link(c.Request.URL, last, size, "last"),
		link(c.Request.URL, 0, size, "first"),
	)
	c.Header(HeaderLink, strings.Join(links, ","))
}

func link(base *url.URL, page, size int, rel string) string {
	q := base.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	u := url.URL{Path: base.Path, RawQuery: q.Encode()}
	return fmt.Sprintf(`<%s>; rel="%s"`, u.String(), rel)
}
