package rules

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Scope: the .listen( call site only. A bare numeric listen call is
// rewritten to read the port from the environment with the original
// literal as fallback and to bind to the wildcard address. An env-read
// listen call missing the host argument gets the host added. Numeric
// literals elsewhere in the file are never touched.
var nodeListenPatterns = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\.listen\(\s*(\d+)\s*\)`), `.listen(process.env.PORT || ${1}, "0.0.0.0")`},
	{regexp.MustCompile(`\.listen\(\s*process\.env\.PORT\s*\|\|\s*(\d+)\s*\)`), `.listen(process.env.PORT || ${1}, "0.0.0.0")`},
}

// RewriteNodeListen normalizes the first matching listen call form.
func RewriteNodeListen(content string) (string, bool) {
	for _, p := range nodeListenPatterns {
		if p.re.MatchString(content) {
			out := p.re.ReplaceAllString(content, p.replacement)
			return out, out != content
		}
	}
	return content, false
}

const nodeListenerBlock = `

// ` + Sentinel + `
const PORT = process.env.PORT || 3000;
app.listen(PORT, "0.0.0.0", () => {
  console.log(` + "`Server running on port ${PORT}`" + `);
});
`

// AppendNodeListener appends a synthesized listener block when the file
// constructs a server but never listens. Sentinel-guarded.
func AppendNodeListener(content string) (string, bool) {
	if strings.Contains(content, ".listen(") || !strings.Contains(content, "createServer") {
		return content, false
	}
	if HasSentinel(content, Sentinel) {
		return content, false
	}
	return content + nodeListenerBlock, true
}

// EnsureNodeStartScript adds a start script to a package.json document
// when none is declared. entry is the resolved entry file; the caller
// picks the first existing candidate. The manifest is re-marshalled
// with two-space indentation; key values pass through unchanged but
// keys are re-serialized in sorted order.
func EnsureNodeStartScript(content, entry string) (string, bool) {
	var manifest map[string]any
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return content, false
	}

	scripts, _ := manifest["scripts"].(map[string]any)
	if scripts == nil {
		scripts = map[string]any{}
	}
	if _, ok := scripts["start"]; ok {
		return content, false
	}
	scripts["start"] = "node " + entry
	manifest["scripts"] = scripts

	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return content, false
	}
	return string(out) + "\n", true
}
