package rules

import (
	"regexp"
	"sort"
	"strings"
)

// Scope: host/bind/listen assignment contexts only, the key and
// operator immediately followed by the loopback literal, optionally
// quoted. Matching is case-insensitive. Loopback literals anywhere
// else in the file (URLs, comments, test data) are untouched.
var loopbackBindings = regexp.MustCompile(`(?i)(host|bind|listen)(\s*[=:]\s*["']?)(localhost|127\.0\.0\.1)(["']?)`)

// RebindLoopback replaces a loopback bind address with the wildcard
// address in assignment contexts.
func RebindLoopback(content string) (string, bool) {
	out := loopbackBindings.ReplaceAllString(content, `${1}${2}0.0.0.0${4}`)
	return out, out != content
}

// EnvFileContent is the environment file synthesized when a project
// declares none.
const EnvFileContent = `# Environment configuration - ` + Sentinel + `
NODE_ENV=production
DEBUG=false
PORT=8000
HOST=0.0.0.0
`

// NotesHeader opens the configuration guide; it doubles as the sentinel
// the engine checks before regenerating the guide.
const NotesHeader = "# Deployment Configuration Notes"

// NotesContent renders the hardcoded-configuration guide from issue
// descriptions. Pure; the engine decides whether to write it.
func NotesContent(findings []string) string {
	var b strings.Builder
	b.WriteString(NotesHeader + "\n\n")
	b.WriteString("## Hardcoded Values Detected\n")
	b.WriteString("The following files contain hardcoded values that should be moved to environment variables:\n\n")
	for _, f := range findings {
		b.WriteString("- " + f + "\n")
	}
	b.WriteString(`
## Recommended Actions
1. Move hardcoded values to environment variables
2. Use process.env.VARIABLE_NAME (Node.js) or os.environ.get('VARIABLE_NAME') (Python)
3. Update configuration files to use environment variables

## Environment Variables to Set
- DATABASE_URL
- SECRET_KEY
- API_KEYS
- PORT
- HOST
`)
	return b.String()
}

// AppendAdvisory appends namespaced advisory lines to an unstructured
// key/value file. This is the catch-all for file types with no
// dedicated rule. Sentinel-guarded.
func AppendAdvisory(content string, entries map[string]string) (string, bool) {
	if HasSentinel(content, ConfigSentinel) {
		return content, false
	}
	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n" + ConfigSentinel + "\n")
	for _, key := range sortedKeys(entries) {
		b.WriteString("preflight." + key + "=" + entries[key] + "\n")
	}
	return b.String(), true
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HTAccessContent is the rewrite configuration created for PHP projects
// that lack one.
const HTAccessContent = `# ` + Sentinel + `
RewriteEngine On
RewriteCond %{REQUEST_FILENAME} !-d
RewriteCond %{REQUEST_FILENAME} !-f
RewriteRule ^(.+)$ index.php [QSA,L]
`
