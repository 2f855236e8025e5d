package domain

import (
	"fmt"
	"strings"
)

// Recommend derives advisory text from the analyzed stack, issues and
// configuration hints. Pure: it never mutates the report.
func Recommend(report *AnalysisReport) []string {
	var recs []string

	switch report.Stack.Primary {
	case StackNodeJS:
		recs = append(recs, "Consider using PM2 for process management in production")
		if hasFramework(report.Stack, "express") {
			recs = append(recs, "Ensure Express app binds to 0.0.0.0 for external access")
		}
	case StackPython:
		recs = append(recs, "Consider using Gunicorn or uWSGI for production deployment")
		if hasFramework(report.Stack, "django") {
			recs = append(recs, "Set DEBUG=False and configure ALLOWED_HOSTS for production")
		} else if hasFramework(report.Stack, "flask") {
			recs = append(recs, "Use a production WSGI server instead of Flask's development server")
		}
	}

	seenHardcoded := false
	for _, issue := range report.Issues {
		switch issue.Kind {
		case IssueHardcodedConfig:
			if !seenHardcoded {
				recs = append(recs, "Move hardcoded configurations to environment variables")
				seenHardcoded = true
			}
		case IssueMissingEnv:
			recs = append(recs, "Create environment configuration files for different deployment stages")
		}
	}

	if len(report.Configuration.DatabaseHints) > 0 {
		names := make([]string, len(report.Configuration.DatabaseHints))
		for i, db := range report.Configuration.DatabaseHints {
			names[i] = string(db)
		}
		recs = append(recs, "Ensure database services are available: "+strings.Join(names, ", "))
	}

	if len(report.Configuration.PortHints) > 0 {
		ports := make([]string, len(report.Configuration.PortHints))
		for i, p := range report.Configuration.PortHints {
			ports[i] = fmt.Sprintf("%d", p)
		}
		recs = append(recs, "Configure port binding for detected ports: "+strings.Join(ports, ", "))
	}

	recs = append(recs,
		"Add health check endpoints for monitoring",
		"Implement logging for debugging deployment issues",
		"Set up error handling for production environment",
		"Consider adding Docker support for consistent deployments",
	)

	return recs
}

func hasFramework(stack Stack, name string) bool {
	for _, f := range stack.Frameworks {
		if f == name {
			return true
		}
	}
	return false
}
