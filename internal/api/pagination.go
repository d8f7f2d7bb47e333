package api

import (
	"errors"  // Validation errors
	"fmt"     // Error formatting
	"math"    // Offset overflow bound
	"strconv" // String conversion
	"strings" // String manipulation

	"cashcard_system/internal/repository" // Page requests

	"github.com/gin-gonic/gin" // Gin web framework
)

// Paging defaults
const (
	DefaultPageSize = 20
	DefaultSort     = "amount"
)

// ParsePageRequest reads page, size and sort from the query string.
// sort may repeat and takes the form property[,asc|desc].
func ParsePageRequest(c *gin.Context, maxSize int) (repository.PageRequest, error) {
	req := repository.PageRequest{Page: 0, Size: DefaultPageSize}

	if p, ok := c.GetQuery("page"); ok {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return req, errors.New("page must be a non-negative integer")
		}
		req.Page = v
	}
	if s, ok := c.GetQuery("size"); ok {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return req, errors.New("size must be a positive integer")
		}
		req.Size = v
	}
	if maxSize > 0 && req.Size > maxSize {
		req.Size = maxSize // Clamp oversized pages
	}
	// page*size must stay a valid row offset
	if req.Page > math.MaxInt/req.Size {
		return req, errors.New("page is out of range")
	}

	for _, raw := range c.QueryArray("sort") {
		s, err := parseSort(raw)
		if err != nil {
			return req, err
		}
		req.Sort = append(req.Sort, s)
	}
	if len(req.Sort) == 0 {
		req.Sort = []repository.Sort{{Property: DefaultSort}}
	}
	return req, nil
}

func parseSort(raw string) (repository.Sort, error) {
	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return repository.Sort{}, fmt.Errorf("invalid sort %q", raw)
	}
	s := repository.Sort{Property: strings.TrimSpace(parts[0])}
	if !repository.IsSortable(s.Property) {
		return repository.Sort{}, fmt.Errorf("cannot sort by %q", s.Property)
	}
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
		case "desc":
			s.Descending = true
		default:
			return repository.Sort{}, fmt.Errorf("invalid sort direction %q", parts[1])
		}
	}
	return s, nil
}
