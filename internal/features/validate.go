package features

import (
	"fmt"
	"strings"

	siteerrors "github.com/crabby-lang/website/internal/errors"
)

// IconResolver resolves an icon reference to its bytes.
type IconResolver interface {
	Open(ref string) ([]byte, error)
}

// Validate reports every problem in the list. Rendering does not depend on
// validation: a list that fails here still renders, just degenerately.
// A nil resolver skips icon checks.
func (l List) Validate(icons IconResolver) error {
	c := siteerrors.NewCollector()
	for i, d := range l {
		at := fmt.Sprintf("features[%d]", i)
		if strings.TrimSpace(d.Title) == "" {
			c.Add(siteerrors.NewValidationError(siteerrors.CodeEmptyTitle, "title is empty").WithPath(at))
		}
		if strings.TrimSpace(d.Description) == "" {
			c.Add(siteerrors.NewValidationError(siteerrors.CodeEmptyDescription, "description is empty").WithPath(at))
		}
		if icons == nil {
			continue
		}
		if _, err := icons.Open(d.Icon); err != nil {
			c.Add(fmt.Errorf("%s: %w", at, err))
		}
	}
	return c.Err()
}
