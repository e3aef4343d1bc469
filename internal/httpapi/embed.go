package httpapi

import _ "embed"

//go:embed static/index.html
var indexHTML string
