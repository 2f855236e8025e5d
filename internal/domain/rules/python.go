package rules

import (
	"regexp"
	"strings"
)

// Scope: the app.run( call site only. The development server's
// no-argument, debug-enabled, and localhost-bound forms are rewritten
// to bind the wildcard address and read the port from the environment
// with the Flask-conventional default; the debug-enabled form gets an
// explicit debug=False.
var flaskRunPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`app\.run\(\)`),
		`app.run(host="0.0.0.0", port=int(os.environ.get("PORT", 5000)))`},
	{regexp.MustCompile(`app\.run\(debug=True\)`),
		`app.run(host="0.0.0.0", port=int(os.environ.get("PORT", 5000)), debug=False)`},
	{regexp.MustCompile(`app\.run\(host=['"]localhost['"]\)`),
		`app.run(host="0.0.0.0", port=int(os.environ.get("PORT", 5000)))`},
}

// RewriteFlaskRun normalizes the first matching run call form.
func RewriteFlaskRun(content string) (string, bool) {
	for _, p := range flaskRunPatterns {
		if p.re.MatchString(content) {
			out := p.re.ReplaceAllString(content, p.replacement)
			return out, out != content
		}
	}
	return content, false
}

const uvicornRunReplacement = `uvicorn.run(app, host="0.0.0.0", port=int(os.environ.get("PORT", 8000)))`

var uvicornRunPattern = regexp.MustCompile(`uvicorn\.run\([^)]*\)`)

// RewriteUvicornRun rewrites a uvicorn.run call to the deployable form
// with the FastAPI-conventional default port. Already-normalized calls
// are left alone, which keeps the rewrite idempotent even though the
// replacement itself contains parentheses.
func RewriteUvicornRun(content string) (string, bool) {
	if !strings.Contains(content, "uvicorn.run(") {
		return content, false
	}
	if strings.Contains(content, `uvicorn.run(app, host="0.0.0.0"`) {
		return content, false
	}
	out := uvicornRunPattern.ReplaceAllString(content, uvicornRunReplacement)
	return out, out != content
}

// EnsureOSImport injects "import os" at file top, only when the content
// reads PORT from the environment and the import is missing.
func EnsureOSImport(content string) (string, bool) {
	if !strings.Contains(content, `os.environ.get("PORT"`) && !strings.Contains(content, `os.environ.get("DEBUG"`) {
		return content, false
	}
	if strings.Contains(content, "import os") {
		return content, false
	}
	return "import os\n" + content, true
}

// HardenDjangoSettings rewrites an empty ALLOWED_HOSTS allow-list to the
// wildcard list and an unconditional DEBUG = True to an environment read
// with a safe default. Scope: those two exact assignments only.
func HardenDjangoSettings(content string) (string, bool) {
	out := content

	out = strings.ReplaceAll(out,
		"ALLOWED_HOSTS = []",
		`ALLOWED_HOSTS = ["*"]  # `+Sentinel)

	out = strings.ReplaceAll(out,
		"DEBUG = True",
		`DEBUG = os.environ.get("DEBUG", "False").lower() == "true"`)

	return out, out != content
}

const pythonBootstrapBlock = `

# ` + Sentinel + `
if __name__ == "__main__":
    import os
    port = int(os.environ.get("PORT", 8000))
    print(f"Starting server on port {port}")
`

// AppendPythonBootstrap appends a basic startup block to a Python entry
// file that has a main guard but no recognizable server start call.
// Sentinel-guarded.
func AppendPythonBootstrap(content string) (string, bool) {
	if !strings.Contains(content, `__name__ == "__main__"`) {
		return content, false
	}
	if strings.Contains(content, "app.run(") ||
		strings.Contains(content, "uvicorn.run(") ||
		strings.Contains(content, ".serve_forever()") {
		return content, false
	}
	if HasSentinel(content, Sentinel) {
		return content, false
	}
	return content + pythonBootstrapBlock, true
}
