package utils

import (
	"fmt"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Pagination is optional: a zero Size means "return everything".
type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func (p *Pagination) SetSize(querySize string) error {
	if querySize == "" {
		p.Size = 0
		return nil
	}
	size, err := strconv.Atoi(querySize)
	if err != nil || size < 0 {
		return fmt.Errorf("invalid size: %q", querySize)
	}
	p.Size = size
	return nil
}

func (p *Pagination) SetPage(queryPage string) error {
	if queryPage == "" {
		p.Page = 1
		return nil
	}
	page, err := strconv.Atoi(queryPage)
	if err != nil || page < 1 {
		return fmt.Errorf("invalid page: %q", queryPage)
	}
	p.Page = page
	return nil
}

func (p *Pagination) GetSize() int {
	return p.Size
}

func (p *Pagination) GetPage() int {
	return p.Page
}

func (p *Pagination) Enabled() bool {
	return p != nil && p.Size > 0
}

func (p *Pagination) GetOffset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

func (p *Pagination) GetLimit() int {
	return p.Size
}

func (p *Pagination) GetQueryString() string {
	return fmt.Sprintf("page=%v&size=%v", p.Page, p.Size)
}

// Next returns the pagination for the following page.
func (p *Pagination) Next() *Pagination {
	return &Pagination{Page: p.GetPage() + 1, Size: p.Size}
}

func GetPaginationFromCtx(ctx echo.Context) (*Pagination, error) {
	p := &Pagination{}

	if err := p.SetSize(ctx.QueryParam("size")); err != nil {
		return nil, err
	}
	if err := p.SetPage(ctx.QueryParam("page")); err != nil {
		return nil, err
	}
	return p, nil
}

func GetTotalPages(totalCount int, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	d := float64(totalCount) / float64(pageSize)
	return int(math.Ceil(d))
}

func GetHasMore(currPage, totalCount, pageSize int) bool {
	return currPage*pageSize < totalCount
}

// Paginate returns the [lo, hi) bounds of the requested page within n items.
func Paginate(p *Pagination, n int) (int, int) {
	if !p.Enabled() {
		return 0, n
	}
	lo := p.GetOffset()
	if lo > n {
		lo = n
	}
	hi := lo + p.GetLimit()
	if hi > n {
		hi = n
	}
	return lo, hi
}
