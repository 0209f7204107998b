package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/portsight/portsight/internal/config"
	apperrors "github.com/portsight/portsight/internal/errors"
	"github.com/portsight/portsight/internal/logging"
	"github.com/portsight/portsight/internal/output"
	"github.com/portsight/portsight/internal/portspec"
	"github.com/portsight/portsight/internal/profiles"
	"github.com/portsight/portsight/internal/scanning"
)

var (
	scanTargets       string
	scanTargetFile    string
	scanPorts         string
	scanProfile       string
	scanTimeout       time.Duration
	scanConcurrency   int
	scanJSON          bool
	scanOutput        string
	scanServicesOut   string
	scanServiceScheme string
)

// scanCmd represents the scan command.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan targets for reachable TCP ports",
	Long: `Scan one or more targets for reachable TCP ports using a full
connect scan. Each port is classified as open, closed, filtered, or
error; open ports get a best-effort banner read.

Targets come from --targets, --target-file, or both. Ports come from a
named profile (recon, core, full) or an explicit --ports specification
that overrides the profile.`,
	Example: `  portsight scan --targets 192.168.1.10
  portsight scan --targets "web1.example.com,web2.example.com" --ports "22,80,443"
  portsight scan --target-file targets.txt --profile full --timeout 1s
  portsight scan --targets 10.0.0.5 --json --output report.json
  portsight scan --targets 10.0.0.5 --services-out services.txt`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanTargets, "targets", "", "Comma-separated list of targets (IPs or hostnames)")
	scanCmd.Flags().StringVar(&scanTargetFile, "target-file", "", "File with one target per line ('#' comments allowed)")
	scanCmd.Flags().StringVar(&scanPorts, "ports", "", "Port specification, e.g. '22,80,4000-4010' (overrides --profile)")
	scanCmd.Flags().StringVar(&scanProfile, "profile", "", "Port profile: recon, core, or full")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0, "Per-probe timeout (default from config, 2s)")
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", 0, "Maximum in-flight probes per target (default from config, 100)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Emit the JSON report instead of text")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Write the JSON report to this file")
	scanCmd.Flags().StringVar(&scanServicesOut, "services-out", "", "Write the de-duplicated service URL list to this file")
	scanCmd.Flags().StringVar(&scanServiceScheme, "service-scheme", "", "Force http or https for exported service URLs")
}

func runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	targets, err := gatherTargets()
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return apperrors.ErrNoTargets()
	}

	ports, err := resolvePorts(cfg)
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		return apperrors.ErrNoPorts()
	}

	engineCfg := cfg.EngineConfig()
	if cmd.Flags().Changed("timeout") {
		engineCfg.Timeout = scanTimeout
	}
	if cmd.Flags().Changed("concurrency") {
		engineCfg.Concurrency = scanConcurrency
	}

	// Interrupt cancels in-flight probes and discards partial reports.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanID := uuid.New().String()
	log := logging.Default().WithFields("scan_id", scanID)

	orchestrator := scanning.NewOrchestrator(engineCfg, log)
	reports, err := orchestrator.Run(ctx, targets, ports)
	if err != nil {
		return apperrors.WrapScanError(apperrors.CodeCanceled, "scan canceled", err)
	}

	if err := renderReports(cfg, scanID, reports); err != nil {
		return err
	}

	if scanServicesOut != "" {
		scheme := scanServiceScheme
		if scheme == "" {
			scheme = cfg.Output.ServiceScheme
		}
		urls := output.ServiceURLs(reports, scheme)
		if err := output.WriteServiceList(scanServicesOut, urls); err != nil {
			return err
		}
		log.Info("service list written", "path", scanServicesOut, "services", len(urls))
	}

	return nil
}

// resolvePorts picks the port list: an explicit --ports specification
// wins, then the --profile flag, then the configured default profile.
func resolvePorts(cfg *config.Config) ([]int, error) {
	if scanPorts != "" {
		return portspec.Parse(scanPorts)
	}

	name := scanProfile
	if name == "" {
		name = cfg.Scanning.DefaultProfile
	}
	profile, ok := profiles.Get(name)
	if !ok {
		return nil, apperrors.NewConfigFieldError(apperrors.CodeValidation,
			"unknown port profile", "profile", name)
	}
	return profile.Ports, nil
}

func renderReports(cfg *config.Config, scanID string, reports []scanning.TargetReport) error {
	wantJSON := scanJSON || scanOutput != "" || cfg.Output.Format == "json"
	if !wantJSON {
		output.WriteText(os.Stdout, reports)
		return nil
	}

	env := output.NewEnvelope(version, scanID, reports)
	if scanOutput != "" {
		data, err := output.MarshalJSONEnvelope(env)
		if err != nil {
			return err
		}
		return output.WriteFileAtomic(scanOutput, append(data, '\n'))
	}
	return output.WriteJSON(os.Stdout, env)
}
