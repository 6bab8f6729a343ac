// Package output serializes extraction results.
package output

import (
	json "github.com/json-iterator/go"
	"github.com/ukaji3/vsdxstruct-go/pkg/vsdxstruct/models"
)

// api keeps markup readable: text markup is HTML and must not be escaped
// a second time.
var api = json.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// ToJSON serializes a document.
func ToJSON(doc *models.DocumentData, pretty bool) ([]byte, error) {
	return marshal(doc, pretty)
}

// PageToJSON serializes a single page.
func PageToJSON(page *models.PageData, pretty bool) ([]byte, error) {
	return marshal(page, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return api.MarshalIndent(v, "", "  ")
	}
	return api.Marshal(v)
}
