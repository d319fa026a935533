// Package tablequery reads table view state and chart options from query
// parameters.
package tablequery

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"dwh-dashboard/internal/table"
)

// DefaultTop is the number of products charted when top is absent.
const DefaultTop = 10

var validate = validator.New()

// Params are the raw view-state parameters: q, sort, dir, page and toggle.
// toggle names a column whose sort is toggled before the snapshot.
type Params struct {
	Query  string `validate:"max=200"`
	Sort   string `validate:"max=64"`
	Dir    string `validate:"omitempty,oneof=asc desc"`
	Page   int    `validate:"min=1"`
	Toggle string `validate:"max=64"`
}

type topParam struct {
	Top string `validate:"omitempty,oneof=5 7 10 20 all"`
}

// Parse validates the view-state parameters of r.
func Parse(r *http.Request) (table.State, string, error) {
	q := r.URL.Query()

	p := Params{
		Query:  q.Get("q"),
		Sort:   strings.TrimSpace(q.Get("sort")),
		Dir:    strings.ToLower(q.Get("dir")),
		Page:   1,
		Toggle: strings.TrimSpace(q.Get("toggle")),
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return table.State{}, "", fmt.Errorf("page: %q is not a number", raw)
		}
		p.Page = page
	}

	if err := validate.Struct(p); err != nil {
		return table.State{}, "", describe(err)
	}

	state := table.State{
		Query:     p.Query,
		SortKey:   p.Sort,
		Direction: table.Asc,
		Page:      p.Page,
	}
	if p.Dir == string(table.Desc) {
		state.Direction = table.Desc
	}

	return state, p.Toggle, nil
}

// ParseTop reads the top parameter. "all" yields 0, meaning every row.
func ParseTop(r *http.Request) (int, error) {
	p := topParam{Top: strings.ToLower(r.URL.Query().Get("top"))}
	if err := validate.Struct(p); err != nil {
		return 0, describe(err)
	}

	switch p.Top {
	case "":
		return DefaultTop, nil
	case "all":
		return 0, nil
	default:
		return strconv.Atoi(p.Top)
	}
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return errors.New(strings.Join(msgs, ", "))
}
