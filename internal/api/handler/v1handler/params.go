package v1handler

import (
	"forum/internal/validation"

	"github.com/gin-gonic/gin"
)

// pathID validates and parses the :id path parameter.
func pathID[T any](c *gin.Context, v *validation.Validator, parse func(string) (T, error)) (T, error) {
	raw := c.Param("id")
	if err := v.ID("id", raw).Err(); err != nil {
		var zero T

		return zero, err //nolint: wrapcheck
	}

	return parse(raw)
}

func listingQuery(c *gin.Context) validation.Listing {
	return validation.Listing{
		Search:      c.Query("search"),
		CommunityID: c.Query("communityId"),
		Page:        c.Query("page"),
		Limit:       c.Query("limit"),
		SortBy:      c.Query("sortBy"),
	}
}
