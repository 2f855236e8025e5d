package web

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// reportFileName matches the file the analyze command writes.
const reportFileName = "preflight-report.json"

type credentialsRequest struct {
	Domain   string `json:"domain"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleHealthz(c *gin.Context) {
	respondOK(c, gin.H{"service": "preflight"})
}

// handleGetConfig returns the stored configuration with the password
// hash removed. A project without configuration yields an empty object.
func (s *Server) handleGetConfig(c *gin.Context) {
	values, err := s.store.Load(s.projectDir)
	if err != nil {
		s.log.Error("failed to load configuration", zap.Error(err))
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	safe := gin.H{}
	for k, v := range values {
		if k == "password" {
			continue
		}
		safe[k] = v
	}
	respondOK(c, gin.H{"config": safe})
}

func (s *Server) handleSaveConfig(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Domain = strings.TrimSpace(req.Domain)
	req.Username = strings.TrimSpace(req.Username)

	if req.Domain == "" || req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "missing required field")
		return
	}
	if !validDomain(req.Domain) {
		respondError(c, http.StatusBadRequest, "invalid domain format")
		return
	}
	if !validUsername(req.Username) {
		respondError(c, http.StatusBadRequest, "invalid username format (3-20 alphanumeric characters)")
		return
	}
	if !validPassword(req.Password) {
		respondError(c, http.StatusBadRequest, "password must be at least 8 characters long")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	values := map[string]string{
		"domain":         req.Domain,
		"username":       req.Username,
		"password":       string(hash),
		"deploymentTime": time.Now().Format(time.RFC3339),
		"configuredBy":   "web_interface",
	}
	if err := s.store.Setup(s.projectDir, values); err != nil {
		s.log.Error("failed to save configuration", zap.Error(err))
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("configuration saved",
		zap.String("domain", req.Domain), zap.String("username", req.Username))
	respondOK(c, gin.H{"message": "configuration saved successfully"})
}

// handleTestConnection validates credential format only. No network
// call is made against the target.
func (s *Server) handleTestConnection(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Domain = strings.TrimSpace(req.Domain)
	req.Username = strings.TrimSpace(req.Username)

	if req.Domain == "" || req.Username == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "missing credentials")
		return
	}
	if !validDomain(req.Domain) || !validUsername(req.Username) || !validPassword(req.Password) {
		respondError(c, http.StatusBadRequest, "invalid credentials format")
		return
	}
	respondOK(c, gin.H{"message": "connection test successful"})
}

// handleStatus reports which deployment artifacts exist in the project
// directory and inlines the analysis report when one is readable.
func (s *Server) handleStatus(c *gin.Context) {
	status := gin.H{
		"project_directory_exists": exists(s.projectDir),
		"config_files_exist":       s.configFilesExist(),
		"analysis_report_exists":   exists(filepath.Join(s.projectDir, reportFileName)),
	}

	if data, err := os.ReadFile(filepath.Join(s.projectDir, reportFileName)); err == nil {
		var report map[string]any
		if json.Unmarshal(data, &report) == nil {
			status["analysis_report"] = report
		}
	}

	respondOK(c, gin.H{"status": status})
}

func (s *Server) configFilesExist() bool {
	for _, name := range []string{"preflight.json", ".preflight.env", "config.json", ".env"} {
		if exists(filepath.Join(s.projectDir, name)) {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
