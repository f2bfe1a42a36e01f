package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/util/prerequisites"
)

// cdkAppFile tells the CDK CLI how to run the app.
const cdkAppFile = "cdk.json"

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkTools probes PATH for the given tools.
	checkTools = prerequisites.Check

	// loadConfigUnvalidated reads a config without validating it.
	loadConfigUnvalidated = config.LoadWithoutValidation
)

// DoctorStatus is the doctor report.
type DoctorStatus struct {
	ConfigPath  string                      `json:"configPath,omitempty"`
	ConfigValid bool                        `json:"configValid"`
	ConfigError string                      `json:"configError,omitempty"`
	CDKApp      bool                        `json:"cdkApp"`
	CDKAppPath  string                      `json:"cdkAppPath"`
	Tools       []prerequisites.CheckResult `json:"tools"`
}

// Healthy reports whether synthesis can run: config valid and every required tool present.
func (s *DoctorStatus) Healthy() bool {
	if !s.ConfigValid {
		return false
	}
	for _, r := range s.Tools {
		if r.Tool.Required && !r.Found {
			return false
		}
	}
	return true
}

// Doctor checks local prerequisites: required tools, cdk.json and config validity.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	status := &DoctorStatus{}

	assetImage := true
	cfg, err := diagnoseConfig(configPath, status)
	if err == nil {
		assetImage = cfg.Service.Image.IsAsset()
	}

	appDir := "."
	if status.ConfigPath != "" {
		appDir = filepath.Dir(status.ConfigPath)
	}
	status.CDKAppPath = filepath.Join(appDir, cdkAppFile)
	status.CDKApp = fileExists(status.CDKAppPath)

	status.Tools = checkTools(ctx, prerequisites.ForSynth(assetImage, true)).Results

	switch {
	case jsonOutput:
		if err := printJSON(status); err != nil {
			return err
		}
	default:
		fmt.Print(renderDoctor(status, isInteractiveTTY()))
	}

	if !status.Healthy() {
		return errors.New("doctor found problems")
	}
	return nil
}

// diagnoseConfig records config discovery and validation into status.
func diagnoseConfig(configPath string, status *DoctorStatus) (*config.Config, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		status.ConfigError = err.Error()
		return nil, err
	}
	status.ConfigPath = path

	cfg, err := loadConfigUnvalidated(path)
	if err != nil {
		status.ConfigError = err.Error()
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		status.ConfigError = err.Error()
		return cfg, nil
	}
	status.ConfigValid = true
	return cfg, nil
}

func renderDoctor(s *DoctorStatus, styled bool) string {
	paint := func(render func(...string) string, text string) string {
		if styled {
			return render(text)
		}
		return text
	}
	ok := paint(okStyle.Render, "[OK]")
	fail := paint(failStyle.Render, "[!!]")
	warn := paint(warnStyle.Render, "[??]")

	var b strings.Builder
	b.WriteString(paint(titleStyle.Render, "ecsdeploy doctor"))
	b.WriteString("\n\n")

	b.WriteString(paint(sectionStyle.Render, "Configuration"))
	b.WriteString("\n")
	switch {
	case s.ConfigValid:
		fmt.Fprintf(&b, "  %s %s\n", ok, s.ConfigPath)
	case s.ConfigPath != "":
		fmt.Fprintf(&b, "  %s %s\n", fail, s.ConfigPath)
		for _, line := range strings.Split(s.ConfigError, "\n") {
			fmt.Fprintf(&b, "       %s\n", paint(dimStyle.Render, line))
		}
	default:
		fmt.Fprintf(&b, "  %s %s\n", fail, s.ConfigError)
	}
	if s.CDKApp {
		fmt.Fprintf(&b, "  %s %s\n", ok, s.CDKAppPath)
	} else {
		fmt.Fprintf(&b, "  %s %s not found; the CDK CLI cannot run the app\n", warn, s.CDKAppPath)
	}

	b.WriteString("\n")
	b.WriteString(paint(sectionStyle.Render, "Tools"))
	b.WriteString("\n")
	for _, r := range s.Tools {
		switch {
		case r.Found:
			version := r.Version
			if version == "" {
				version = r.Path
			}
			fmt.Fprintf(&b, "  %s %-8s %s\n", ok, r.Tool.Name, paint(dimStyle.Render, version))
		case r.Tool.Required:
			fmt.Fprintf(&b, "  %s %-8s missing: %s (%s)\n", fail, r.Tool.Name, r.Tool.Description, r.Tool.InstallURL)
		default:
			fmt.Fprintf(&b, "  %s %-8s optional: %s\n", warn, r.Tool.Name, r.Tool.Description)
		}
	}

	return b.String()
}
