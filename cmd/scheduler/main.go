/*
Copyright 2026 The KubeNexus Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/kube-nexus/custom-scheduler/internal/driver"
)

func main() {
	klog.InitFlags(nil)

	var cfg driver.Config
	var tickPeriod time.Duration

	cmd := &cobra.Command{
		Use:   "custom-scheduler",
		Short: "Decision-core scheduler: one pod per node, priority preemption, gang scheduling.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.TickPeriod = tickPeriod

			d, err := driver.New(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			return d.Run(ctx)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.SchedulerName, "scheduler-name", "custom-scheduler", "scheduler-name claim pods must carry to be visible to this scheduler")
	flags.StringVar(&cfg.Namespace, "namespace", "", "namespace the process runs in (informational; scheduling is cluster-wide)")
	flags.StringVar(&cfg.Kubeconfig, "kubeconfig", "", "path to a kubeconfig file; empty uses the in-cluster config")
	flags.DurationVar(&tickPeriod, "tick-period", driver.DefaultTickPeriod, "interval between scheduling ticks")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", ":9090", "address to serve /metrics on; empty disables it")

	klog.InfoS("custom-scheduler command ready", "version", "v0.1.0")
	if err := cmd.Execute(); err != nil {
		klog.ErrorS(err, "custom-scheduler command failed")
		os.Exit(1)
	}
	klog.InfoS("custom-scheduler command completed")
}

// signalContext returns a context cancelled on SIGINT/SIGTERM, so the driver
// shuts down cleanly and the process exits 0.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}
