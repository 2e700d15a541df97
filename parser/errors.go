package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ParseError is a single entry of the parse error log.
type ParseError struct {
	Line int
	Col  int
	Code string
	// Vars holds the values the error message refers to, such as the tag
	// name that caused it.
	Vars map[string]string
}

func (e *ParseError) Error() string {
	if len(e.Vars) == 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Code)
	}
	keys := make([]string, 0, len(e.Vars))
	for k := range e.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vars := make([]string, 0, len(keys))
	for _, k := range keys {
		vars = append(vars, k+"="+e.Vars[k])
	}
	return fmt.Sprintf("%d:%d: %s (%s)", e.Line, e.Col, e.Code, strings.Join(vars, ", "))
}

// errReprocessLimit is raised when a token keeps being handed back to the
// dispatcher. The algorithm guarantees this never happens.
var errReprocessLimit = errors.New("reprocess chain did not terminate")

// AsParseError returns the ParseError behind err, if there is one.
func AsParseError(err error) (*ParseError, bool) {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
