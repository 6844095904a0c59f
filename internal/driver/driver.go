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

package driver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"

	"github.com/kube-nexus/custom-scheduler/internal/engine"
	"github.com/kube-nexus/custom-scheduler/internal/metrics"
)

// Driver owns the cluster API client and runs the poll-decide-apply loop. It
// is the sole mutator of cluster state from this process; two instances
// must not run concurrently against the same cluster without external
// leader election.
type Driver struct {
	cfg     Config
	client  kubernetes.Interface
	cron    *cron.Cron
	startup *zap.Logger
}

// New builds a Driver from cfg, constructing a Kubernetes client from
// Kubeconfig if set, or the in-cluster config otherwise.
func New(cfg Config) (*Driver, error) {
	if cfg.TickPeriod == 0 {
		cfg.TickPeriod = DefaultTickPeriod
	}

	restConfig, err := loadRESTConfig(cfg.Kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("loading kubeconfig: %w", err)
	}

	client, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("building clientset: %w", err)
	}

	startup, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("building startup logger: %w", err)
	}

	return &Driver{
		cfg:     cfg,
		client:  client,
		cron:    cron.New(),
		startup: startup,
	}, nil
}

func loadRESTConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	return rest.InClusterConfig()
}

// Run starts the metrics server (if configured) and the tick loop, blocking
// until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	d.startup.Info("custom-scheduler starting",
		zap.String("scheduler_name", d.cfg.SchedulerName),
		zap.String("namespace", d.cfg.Namespace),
		zap.Duration("tick_period", d.cfg.TickPeriod),
	)

	if d.cfg.MetricsAddr != "" {
		go d.serveMetrics()
	}

	spec := fmt.Sprintf("@every %s", d.cfg.TickPeriod)
	_, err := d.cron.AddFunc(spec, func() {
		d.tick(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling tick: %w", err)
	}

	d.cron.Start()
	defer d.cron.Stop()

	<-ctx.Done()
	d.startup.Info("custom-scheduler shutting down")
	return nil
}

func (d *Driver) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	klog.InfoS("serving metrics", "addr", d.cfg.MetricsAddr)
	if err := http.ListenAndServe(d.cfg.MetricsAddr, mux); err != nil {
		klog.ErrorS(err, "metrics server exited")
	}
}

// tick runs exactly one scheduling cycle: build a Snapshot, invoke the
// engine, apply the resulting Plan. The engine itself is stateless and
// tick-agnostic; cancellation mid-application is safe, the next tick
// re-derives any still-pending work.
func (d *Driver) tick(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.TickDuration.Observe(time.Since(start).Seconds())
	}()

	snap, err := BuildSnapshot(ctx, d.client, d.cfg.SchedulerName)
	if err != nil {
		klog.ErrorS(err, "failed to build snapshot, skipping tick")
		return
	}

	plan := engine.Schedule(snap)
	observeGangMetrics(snap, plan)
	if len(plan.Actions) == 0 {
		return
	}

	ApplyPlan(ctx, d.client, plan)
}
