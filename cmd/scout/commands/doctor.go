package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tripscout/scout/internal/config"
	"github.com/tripscout/scout/internal/output"
)

type credentialStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type doctorReport struct {
	Credentials []credentialStatus `json:"credentials"`
	Currency    string             `json:"currency"`
	Locale      string             `json:"locale"`
	ListenAddr  string             `json:"listen_addr"`
	Healthy     bool               `json:"healthy"`
	Summary     string             `json:"summary"`
}

func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			creds := []credentialStatus{
				{Name: "serpapi", Status: status(cfg.SerpAPIKey != "")},
				{Name: "openai", Status: status(cfg.OpenAIKey != "")},
				{Name: "jwt", Status: status(cfg.JWTSecret != "")},
			}

			var issues []string
			if cfg.SerpAPIKey == "" {
				issues = append(issues, "serpapi: set SERPAPI_API_KEY to enable search")
			}
			if cfg.OpenAIKey == "" {
				issues = append(issues, "openai: set OPENAI_API_KEY to enable trip planning")
			}
			if cfg.JWTSecret == "" {
				issues = append(issues, "jwt: SCOUT_JWT_SECRET unset, API auth disabled")
			}

			healthy := cfg.SerpAPIKey != ""
			summary := fmt.Sprintf("search %s, planner %s", status(healthy), status(cfg.OpenAIKey != ""))
			if len(issues) > 0 {
				summary += " | issues: " + strings.Join(issues, "; ")
			}

			return output.JSON(doctorReport{
				Credentials: creds,
				Currency:    cfg.Currency,
				Locale:      cfg.GL + "-" + cfg.HL,
				ListenAddr:  cfg.ListenAddr,
				Healthy:     healthy,
				Summary:     summary,
			})
		},
	}
	return cmd
}

func status(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}
