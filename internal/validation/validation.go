// Package validation checks client input before it reaches the services.
// Each Validate* method is a pure function of its input returning a Result
// that lists every problem found; Result.Err turns a failed Result into a
// BadRequest error.
package validation

import (
	"errors"
	"fmt"
	"forum/pkg/domain"
	"forum/pkg/paging"
	"forum/pkg/serrors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Problem is one failed rule.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (p Problem) String() string { return p.Field + " " + p.Message }

// Result collects the problems found in one input.
type Result struct {
	Problems []Problem `json:"problems,omitempty"`
}

// OK reports whether the input passed every rule.
func (r Result) OK() bool { return len(r.Problems) == 0 }

// Err returns nil for a passing Result and a BadRequest error listing all
// problems otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}

	msgs := make([]string, 0, len(r.Problems))
	for _, p := range r.Problems {
		msgs = append(msgs, p.String())
	}

	return serrors.With(serrors.ErrBadRequest, "%s", strings.Join(msgs, "; "))
}

func (r *Result) add(field, msgFmt string, args ...any) {
	r.Problems = append(r.Problems, Problem{Field: field, Message: fmt.Sprintf(msgFmt, args...)})
}

// Limits bound listing page sizes.
type Limits struct {
	// DefaultLimit is used when the client does not ask for a page size.
	DefaultLimit int
	// MaxLimit is the largest page size a client may ask for.
	MaxLimit int
}

// Validator holds the field rules and listing limits. It is safe for
// concurrent use.
type Validator struct {
	v      *validator.Validate
	limits Limits
}

// New returns a Validator applying limits to listings.
func New(limits Limits) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v, limits: limits}
}

// Limits returns the listing limits the validator enforces.
func (v *Validator) Limits() Limits { return v.limits }

// check runs the struct rules of in and translates failures into a Result.
func (v *Validator) check(in any) Result {
	var res Result

	err := v.v.Struct(in)
	if err == nil {
		return res
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		res.add("body", "is invalid")

		return res
	}

	for _, fe := range fieldErrs {
		res.add(fe.Field(), "%s", describe(fe))
	}

	return res
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	case "uuid":
		return "must be a valid UUID"
	case "username":
		return "can only contain letters, numbers, underscores and hyphens"
	default:
		return "is invalid"
	}
}

// Register is the registration payload.
type Register struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Image    string `json:"image"    validate:"omitempty,max=255"`
}

func (v *Validator) ValidateRegister(in Register) Result { return v.check(in) }

// Login is the login payload.
type Login struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
}

func (v *Validator) ValidateLogin(in Login) Result { return v.check(in) }

// Post is the post creation payload.
type Post struct {
	Title       string `json:"title"       validate:"required,min=3"`
	Content     string `json:"content"     validate:"required,min=10"`
	CommunityID string `json:"communityId" validate:"required,uuid"`
}

func (v *Validator) ValidatePost(in Post) Result { return v.check(in) }

// PostUpdate is the post update payload. Absent fields are left unchanged.
type PostUpdate struct {
	Title       *string `json:"title"       validate:"omitnil,min=3"`
	Content     *string `json:"content"     validate:"omitnil,min=10"`
	CommunityID *string `json:"communityId" validate:"omitnil,uuid"`
}

// ValidatePostUpdate checks the present fields and rejects an update that
// changes nothing.
func (v *Validator) ValidatePostUpdate(in PostUpdate) Result {
	res := v.check(in)
	if in.Title == nil && in.Content == nil && in.CommunityID == nil {
		res.add("body", "must change at least one of title, content or communityId")
	}

	return res
}

// Comment is the comment creation and update payload.
type Comment struct {
	Content string `json:"content" validate:"required,min=1"`
}

func (v *Validator) ValidateComment(in Comment) Result { return v.check(in) }

// Community is the community creation payload.
type Community struct {
	Name  string `json:"name"  validate:"required,min=3,max=100"`
	Order int    `json:"order"`
}

func (v *Validator) ValidateCommunity(in Community) Result { return v.check(in) }

// Listing carries the raw query string of a post listing.
type Listing struct {
	Search      string
	CommunityID string
	Page        string
	Limit       string
	SortBy      string
}

// ValidateListing applies defaults to absent parameters and parses the rest
// into a PostQuery. An empty communityId means no community filter.
func (v *Validator) ValidateListing(in Listing) (domain.PostQuery, Result) {
	var res Result

	q := domain.PostQuery{
		PostFilter: domain.PostFilter{Search: in.Search},
		Page:       1,
		Limit:      v.limits.DefaultLimit,
		SortBy:     domain.SortByLatest,
	}

	if in.CommunityID != "" {
		id, err := domain.ParseCommunityID(in.CommunityID)
		if err != nil {
			res.add("communityId", "must be a valid UUID")
		} else {
			q.CommunityID = &id
		}
	}

	if in.Page != "" {
		page, ok := positive(in.Page)
		if !ok {
			res.add("page", "must be a positive integer")
		}
		q.Page = page
	}

	if in.Limit != "" {
		limit, ok := positive(in.Limit)
		switch {
		case !ok:
			res.add("limit", "must be a positive integer")
		case limit > v.limits.MaxLimit:
			res.add("limit", "must not exceed %d", v.limits.MaxLimit)
		}
		q.Limit = limit
	}

	if res.OK() && !paging.Fits(q.Page, q.Limit) {
		res.add("page", "is too large for a page size of %d", q.Limit)
	}

	if in.SortBy != "" {
		if domain.SortBy(in.SortBy) != domain.SortByLatest {
			res.add("sortBy", "must be one of: %s", domain.SortByLatest)
		}
	}

	return q, res
}

// Pagination carries the raw page and limit of a comment listing.
type Pagination struct {
	Page  string
	Limit string
}

// ValidatePagination parses page and limit with the listing defaults.
func (v *Validator) ValidatePagination(in Pagination) (page, limit int, res Result) {
	q, res := v.ValidateListing(Listing{Page: in.Page, Limit: in.Limit})

	return q.Page, q.Limit, res
}

func positive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}

	return n, true
}

// ID checks that raw is a UUID and reports problems under field.
func (v *Validator) ID(field, raw string) Result {
	var res Result
	if err := v.v.Var(raw, "required,uuid"); err != nil {
		res.add(field, "must be a valid UUID")
	}

	return res
}
