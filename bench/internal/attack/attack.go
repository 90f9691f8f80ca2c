package attack

import (
	"crypto/tls"
	"fmt"
	"os"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

type Config struct {
	BaseURL            string
	Codes              []string
	Rate               int
	Duration           time.Duration
	CreateRatio        float64
	Type               string
	InsecureSkipVerify bool
	Connections        int
	MaxWorkers         int
}

func Run(cfg *Config) error {
	var targeter vegeta.Targeter

	switch cfg.Type {
	case "create":
		targeter = CreateTargeter(cfg.BaseURL)
	case "redirect":
		if len(cfg.Codes) == 0 {
			return fmt.Errorf("redirect attack requires seeded codes")
		}
		targeter = RedirectTargeter(cfg.BaseURL, cfg.Codes)
	case "mixed":
		if len(cfg.Codes) == 0 {
			return fmt.Errorf("mixed attack requires seeded codes")
		}
		targeter = MixedTargeter(cfg.BaseURL, cfg.Codes, cfg.CreateRatio)
	default:
		return fmt.Errorf("unknown attack type: %s", cfg.Type)
	}

	opts := []func(*vegeta.Attacker){
		vegeta.Redirects(-1),
		vegeta.KeepAlive(true),
		vegeta.Connections(cfg.Connections),
		vegeta.Timeout(5 * time.Second),
		vegeta.MaxBody(0),
		vegeta.HTTP2(false),
		vegeta.TLSConfig(&tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}),
	}
	if cfg.MaxWorkers > 0 {
		opts = append(opts, vegeta.MaxWorkers(uint64(cfg.MaxWorkers)))
	}
	attacker := vegeta.NewAttacker(opts...)

	rate := vegeta.Rate{Freq: cfg.Rate, Per: time.Second}

	fmt.Printf("Starting %s attack: rate=%d/s duration=%s\n", cfg.Type, cfg.Rate, cfg.Duration)

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, cfg.Duration, cfg.Type) {
		metrics.Add(res)
	}
	metrics.Close()

	reporter := vegeta.NewTextReporter(&metrics)
	return reporter.Report(os.Stdout)
}
