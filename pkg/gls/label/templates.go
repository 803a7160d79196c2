package label

import (
	"embed"
	"io/fs"
)

// DefaultCollection is the name of the built-in template collection.
const DefaultCollection = "gls"

// StandardTemplate is the namespaced path of the standard label template.
const StandardTemplate = "gls/standard_label.txt"

//go:embed templates/*.txt
var templatesFS embed.FS

func builtinTemplates() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		// The embedded tree always contains templates/.
		panic(err)
	}
	return sub
}
