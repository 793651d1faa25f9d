package http

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chancat87/dufs"
)

//go:embed assets/index.html
var indexHTML string

//go:embed assets/index.css
var indexCSS string

const (
	stylePlaceholder = "__STYLE__"
	dataPlaceholder  = "__DATA__"
)

// RenderIndex interpolates the listing payload and the stylesheet into the
// index template. The template carries each placeholder exactly once; the
// substitutions are literal and order-independent.
func RenderIndex(data dufs.IndexData) ([]byte, error) {
	if data.Paths == nil {
		data.Paths = []dufs.PathItem{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal index data: %w", err)
	}

	page := strings.Replace(indexHTML, stylePlaceholder, "<style>\n"+indexCSS+"</style>", 1)
	page = strings.Replace(page, dataPlaceholder, string(payload), 1)
	return []byte(page), nil
}
