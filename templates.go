package regform

import (
	"io/fs"

	"github.com/goliatone/go-regform/pkg/view"
)

// EmbeddedTemplates exposes the built-in form templates so callers can reuse
// or extend them without importing the view package directly.
func EmbeddedTemplates() fs.FS {
	return view.TemplatesFS()
}
