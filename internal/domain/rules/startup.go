package rules

// Startup script contents per stack and framework. All carry the
// sentinel so the engine can tell its own scripts from user ones.

const NodeStartScript = `#!/bin/bash
# Node.js application startup script - ` + Sentinel + `

echo "Starting Node.js application..."

if [ ! -d "node_modules" ]; then
    echo "Installing dependencies..."
    npm install
fi

echo "Starting server..."
npm start
`

const DjangoStartScript = `#!/bin/bash
# Django application startup script - ` + Sentinel + `

echo "Starting Django application..."

if [ -f "requirements.txt" ]; then
    echo "Installing dependencies..."
    pip install -r requirements.txt
fi

echo "Running migrations..."
python manage.py migrate --noinput

echo "Collecting static files..."
python manage.py collectstatic --noinput

echo "Starting server..."
python manage.py runserver 0.0.0.0:8000
`

const FlaskStartScript = `#!/bin/bash
# Flask application startup script - ` + Sentinel + `

echo "Starting Flask application..."

if [ -f "requirements.txt" ]; then
    echo "Installing dependencies..."
    pip install -r requirements.txt
fi

echo "Starting server..."
python app.py
`

const PythonStartScript = `#!/bin/bash
# Python application startup script - ` + Sentinel + `

echo "Starting Python application..."

if [ -f "requirements.txt" ]; then
    echo "Installing dependencies..."
    pip install -r requirements.txt
fi

if [ -f "main.py" ]; then
    python main.py
elif [ -f "app.py" ]; then
    python app.py
elif [ -f "server.py" ]; then
    python server.py
else
    echo "No main application file found"
    exit 1
fi
`

// PythonRunScript is created when a Python project has no recognizable
// entry file at all.
const PythonRunScript = `#!/usr/bin/env python3
# Basic run script - ` + Sentinel + `

import os
import sys
from pathlib import Path


def find_main_module():
    candidates = ["app.py", "main.py", "server.py", "wsgi.py"]
    for candidate in candidates:
        if Path(candidate).exists():
            return candidate.replace(".py", "")
    return None


def main():
    print("Starting application...")
    os.environ.setdefault("HOST", "0.0.0.0")
    os.environ.setdefault("PORT", "8000")

    main_module = find_main_module()
    if main_module is None:
        print("No main application module found")
        sys.exit(1)
    try:
        __import__(main_module)
        print(f"Started {main_module}")
    except Exception as e:
        print(f"Failed to start {main_module}: {e}")
        sys.exit(1)


if __name__ == "__main__":
    main()
`
